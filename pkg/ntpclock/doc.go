// Package ntpclock is the clock's network time client.
//
// A Client keeps a locally ticking UTC clock: every successful Update
// measures the offset to a time server and re-anchors the clock, and between
// updates time advances on the monotonic clock. Hours, Minutes and Seconds
// read the local wall time after applying the daylight-saving and standard
// rules set with SetRule.
//
// Before the first successful Update the clock counts from the Unix epoch, so
// the display shows a free-running time rather than nothing.
package ntpclock
