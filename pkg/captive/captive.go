package captive

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/miekg/dns"
)

// DefaultAddr is the listen address of the responder.
const DefaultAddr = ":53"

// TTL of every answer, in seconds.
const TTL = 60

// ErrAlreadyRunning is returned by Start on a running responder.
var ErrAlreadyRunning = errors.New("captive dns already running")

// Responder is a UDP DNS server resolving every A question to one address.
type Responder struct {
	mu     sync.Mutex
	addr   string
	ip     net.IP
	server *dns.Server
	logger *slog.Logger
}

// New creates a responder answering with ip on addr. An empty addr uses
// DefaultAddr.
func New(addr string, ip net.IP, logger *slog.Logger) *Responder {
	if addr == "" {
		addr = DefaultAddr
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Responder{addr: addr, ip: ip, logger: logger}
}

// Start binds the UDP socket and serves in the background.
func (r *Responder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.server != nil {
		return ErrAlreadyRunning
	}

	pc, err := net.ListenPacket("udp", r.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", r.addr, err)
	}

	started := make(chan struct{})
	srv := &dns.Server{
		PacketConn:        pc,
		Handler:           r,
		NotifyStartedFunc: func() { close(started) },
	}
	r.server = srv

	go func() {
		if err := srv.ActivateAndServe(); err != nil {
			r.logger.Warn("captive dns stopped", "error", err)
		}
	}()

	select {
	case <-started:
	case <-time.After(time.Second):
	}

	r.logger.Info("captive dns up", "addr", pc.LocalAddr().String(), "answer", r.ip)
	return nil
}

// Addr returns the bound address, or "" when stopped.
func (r *Responder) Addr() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.server == nil || r.server.PacketConn == nil {
		return ""
	}
	return r.server.PacketConn.LocalAddr().String()
}

// Stop shuts the responder down. Stopping a stopped responder is a no-op.
func (r *Responder) Stop() error {
	r.mu.Lock()
	srv := r.server
	r.server = nil
	r.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown()
}

// ServeDNS implements dns.Handler.
func (r *Responder) ServeDNS(w dns.ResponseWriter, req *dns.Msg) {
	if err := w.WriteMsg(Reply(req, r.ip)); err != nil {
		r.logger.Debug("captive dns write failed", "error", err)
	}
}

// Reply builds the answer to req: an A record with ip for every A question,
// nothing for other types.
func Reply(req *dns.Msg, ip net.IP) *dns.Msg {
	m := new(dns.Msg)
	m.SetReply(req)
	m.Authoritative = true

	v4 := ip.To4()
	for _, q := range req.Question {
		if q.Qtype != dns.TypeA || q.Qclass != dns.ClassINET || v4 == nil {
			continue
		}
		m.Answer = append(m.Answer, &dns.A{
			Hdr: dns.RR_Header{
				Name:   q.Name,
				Rrtype: dns.TypeA,
				Class:  dns.ClassINET,
				Ttl:    TTL,
			},
			A: v4,
		})
	}
	return m
}
