package discovery

import (
	"errors"
	"net"
	"time"
)

// Service parameters.
const (
	ServiceType    = "_http._tcp"
	Domain         = "local."
	InstancePrefix = "netclock-"
	DefaultPort    = 80

	// MaxInstanceNameLen is the DNS label limit.
	MaxInstanceNameLen = 63

	// DefaultTTL is the record TTL when none is configured.
	DefaultTTL = 120 * time.Second
)

// TXT record keys.
const (
	TXTKeyID       = "id"
	TXTKeyTimezone = "tz"
	TXTKeyVersion  = "ver"
)

// Errors.
var (
	ErrInstanceNameTooLong = errors.New("instance name too long")
	ErrNotAdvertising      = errors.New("not advertising")
	ErrMissingRequired     = errors.New("missing required TXT record")
)

// ServiceInfo is what a clock advertises.
type ServiceInfo struct {
	// ShortID is the 4-character suffix of the instance name.
	ShortID string

	// DeviceID is the full device identifier.
	DeviceID string

	TimezoneIndex int
	Version       string

	// Port of the status page. Zero means DefaultPort.
	Port int
}

// ClockService is a clock found on the network.
type ClockService struct {
	Instance  string
	Host      string
	Port      int
	Addresses []net.IP

	DeviceID      string
	TimezoneIndex int
	Version       string
}

// URL returns the status page URL of the first address, or "" when none is
// known.
func (c *ClockService) URL() string {
	if len(c.Addresses) == 0 {
		return ""
	}
	return StatusURL(c.Addresses[0], c.Port)
}
