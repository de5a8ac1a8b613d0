package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/enbility/zeroconf/v3"
)

// MDNSAdvertiser implements Advertiser using zeroconf.
type MDNSAdvertiser struct {
	config AdvertiserConfig
	logger *slog.Logger

	mu     sync.Mutex
	server *zeroconf.Server
	info   *ServiceInfo
}

var _ Advertiser = (*MDNSAdvertiser)(nil)

// NewMDNSAdvertiser creates a new mDNS advertiser.
func NewMDNSAdvertiser(config AdvertiserConfig) *MDNSAdvertiser {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &MDNSAdvertiser{config: config, logger: logger}
}

// interfaces returns the interfaces to advertise on; nil means all.
func interfaces(name string) []net.Interface {
	if name == "" {
		return nil
	}
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return nil
	}
	return []net.Interface{*iface}
}

func (a *MDNSAdvertiser) Advertise(ctx context.Context, info *ServiceInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}

	instance := InstanceName(info.ShortID)
	if err := ValidateInstanceName(instance); err != nil {
		return err
	}

	port := info.Port
	if port == 0 {
		port = DefaultPort
	}

	var opts []zeroconf.ServerOption
	if a.config.TTL > 0 {
		opts = append(opts, zeroconf.TTL(uint32(a.config.TTL.Seconds())))
	}

	server, err := zeroconf.Register(
		instance,
		ServiceType,
		Domain,
		port,
		TXTRecordsToStrings(EncodeTXT(info)),
		interfaces(a.config.Interface),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to register %s: %w", instance, err)
	}

	a.server = server
	copied := *info
	a.info = &copied
	a.logger.Info("mdns registered", "instance", instance, "service", ServiceType, "port", port)
	return nil
}

func (a *MDNSAdvertiser) Update(info *ServiceInfo) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server == nil {
		return ErrNotAdvertising
	}
	a.server.SetText(TXTRecordsToStrings(EncodeTXT(info)))
	copied := *info
	a.info = &copied
	return nil
}

func (a *MDNSAdvertiser) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
		a.logger.Info("mdns withdrawn")
	}
	a.info = nil
	return nil
}

// Current returns what is being advertised, or nil.
func (a *MDNSAdvertiser) Current() *ServiceInfo {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.info == nil {
		return nil
	}
	copied := *a.info
	return &copied
}

// MDNSBrowser finds clocks on the network.
type MDNSBrowser struct {
	// Interface restricts browsing to one network interface.
	Interface string
}

// Browse emits every clock found until ctx is done. Addresses seen on
// several interfaces are merged into one entry; an updated entry is emitted
// again.
func (b *MDNSBrowser) Browse(ctx context.Context) (<-chan *ClockService, error) {
	out := make(chan *ClockService)
	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	var opts []zeroconf.ClientOption
	if ifaces := interfaces(b.Interface); ifaces != nil {
		opts = append(opts, zeroconf.SelectIfaces(ifaces))
	}

	go func() {
		defer close(out)

		services := make(map[string]*ClockService)
		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				svc := entryToClock(entry)
				if svc == nil {
					continue
				}
				if existing, found := services[svc.Instance]; found {
					merged := mergeAddresses(existing.Addresses, svc.Addresses)
					if len(merged) == len(existing.Addresses) {
						continue
					}
					svc.Addresses = merged
				}
				services[svc.Instance] = svc
				emitted := *svc
				select {
				case out <- &emitted:
				case <-ctx.Done():
					return
				}

			case entry, ok := <-removed:
				if !ok {
					continue
				}
				delete(services, entry.Instance)

			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		_ = zeroconf.Browse(ctx, ServiceType, Domain, entries, removed, opts...)
	}()

	return out, nil
}

// entryToClock converts a zeroconf entry, or returns nil for services that
// are not clocks.
func entryToClock(entry *zeroconf.ServiceEntry) *ClockService {
	if len(entry.Instance) <= len(InstancePrefix) || entry.Instance[:len(InstancePrefix)] != InstancePrefix {
		return nil
	}
	svc := &ClockService{
		Instance: entry.Instance,
		Host:     entry.HostName,
		Port:     entry.Port,
	}
	if err := DecodeTXT(StringsToTXTRecords(entry.Text), svc); err != nil {
		return nil
	}
	svc.Addresses = append(svc.Addresses, entry.AddrIPv4...)
	svc.Addresses = append(svc.Addresses, entry.AddrIPv6...)
	return svc
}

func mergeAddresses(have, add []net.IP) []net.IP {
	out := append([]net.IP(nil), have...)
	for _, ip := range add {
		dup := false
		for _, h := range out {
			if h.Equal(ip) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, ip)
		}
	}
	return out
}
