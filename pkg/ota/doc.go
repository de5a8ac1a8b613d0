// Package ota receives firmware images over HTTP.
//
// A Listener accepts `POST /update` on its own port. Requests authenticate
// with HTTP basic auth against a bcrypt password hash. The image is
// streamed into a staging directory and renamed into place once complete,
// so a failed transfer never replaces a previously staged image.
//
// Lifecycle callbacks (start, progress, end, error) are not invoked on the
// HTTP goroutine. They are queued and delivered when the owner calls
// Handle from its control loop, which keeps the callbacks on the same
// goroutine as everything else the owner does.
//
// Failures are classified like the device's update channel has always
// reported them: "Auth Failed", "Begin Failed", "Connect Failed",
// "Receive Failed" and "End Failed".
package ota
