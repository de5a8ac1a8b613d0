package discovery

import (
	"context"
	"log/slog"
	"time"
)

// Advertiser registers the clock's status page on the network.
type Advertiser interface {
	// Advertise starts advertising info, replacing any previous registration.
	Advertise(ctx context.Context, info *ServiceInfo) error

	// Update replaces the TXT records of the running registration.
	Update(info *ServiceInfo) error

	// Stop withdraws the registration. Stopping twice is a no-op.
	Stop() error
}

// AdvertiserConfig configures advertiser behavior.
type AdvertiserConfig struct {
	// Interface restricts advertising to one network interface.
	// Empty string means all interfaces.
	Interface string

	// TTL is the DNS record TTL.
	TTL time.Duration

	Logger *slog.Logger
}

// DefaultAdvertiserConfig returns the default advertiser configuration.
func DefaultAdvertiserConfig() AdvertiserConfig {
	return AdvertiserConfig{TTL: DefaultTTL}
}

// NoopAdvertiser advertises nothing.
type NoopAdvertiser struct{}

func (NoopAdvertiser) Advertise(context.Context, *ServiceInfo) error { return nil }
func (NoopAdvertiser) Update(*ServiceInfo) error                     { return nil }
func (NoopAdvertiser) Stop() error                                   { return nil }

var _ Advertiser = NoopAdvertiser{}
