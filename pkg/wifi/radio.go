package wifi

import "net"

// Network is one entry of a scan result.
type Network struct {
	SSID string

	// Signal is the signal quality in percent.
	Signal int

	// Secure is true when the network requires a passphrase.
	Secure bool
}

// Radio is the wireless hardware.
type Radio interface {
	// Connect starts associating with a network and returns without waiting.
	Connect(ssid, passphrase string) error

	// Connected reports whether the station link is up.
	Connected() bool

	// Disconnect drops the station link.
	Disconnect() error

	// StartAP hosts an access point and returns the device address on it.
	// An empty passphrase makes the network open.
	StartAP(ssid, passphrase string) (net.IP, error)

	// StopAP stops hosting the access point.
	StopAP() error

	// Scan lists visible networks.
	Scan() ([]Network, error)

	// LocalIP returns the station address, or nil when not connected.
	LocalIP() net.IP
}
