package wifi

import (
	"errors"
	"net"
	"sort"
	"sync"
)

// Sim radio addresses.
var (
	SimAPAddress      = net.IPv4(192, 168, 4, 1)
	SimStationAddress = net.IPv4(192, 168, 1, 50)
)

// ErrRadioBusy is returned by SimRadio when the AP and station are both requested.
var ErrRadioBusy = errors.New("radio busy")

// SimNetwork is a network reachable by a SimRadio.
type SimNetwork struct {
	Passphrase string
	Signal     int
}

// SimRadio is an in-memory radio. Association completes after
// AssociatePolls calls to Connected when the passphrase matches.
type SimRadio struct {
	mu             sync.Mutex
	networks       map[string]SimNetwork
	AssociatePolls int

	target   string
	pass     string
	polls    int
	linked   bool
	apActive bool
	apSSID   string
}

var _ Radio = (*SimRadio)(nil)

// NewSimRadio creates a radio with no reachable networks.
func NewSimRadio() *SimRadio {
	return &SimRadio{networks: make(map[string]SimNetwork), AssociatePolls: 1}
}

// AddNetwork makes a network reachable.
func (s *SimRadio) AddNetwork(ssid, passphrase string, signal int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.networks[ssid] = SimNetwork{Passphrase: passphrase, Signal: signal}
}

// DropLink takes the station link down.
func (s *SimRadio) DropLink() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.linked = false
	s.target = ""
}

// APSSID returns the hosted network name, or "" when no AP is up.
func (s *SimRadio) APSSID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.apActive {
		return ""
	}
	return s.apSSID
}

func (s *SimRadio) Connect(ssid, passphrase string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.apActive {
		return ErrRadioBusy
	}
	s.target, s.pass = ssid, passphrase
	s.polls = 0
	s.linked = false
	return nil
}

func (s *SimRadio) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.linked {
		return true
	}
	n, ok := s.networks[s.target]
	if s.target == "" || !ok || n.Passphrase != s.pass {
		return false
	}
	s.polls++
	if s.polls >= s.AssociatePolls {
		s.linked = true
	}
	return s.linked
}

func (s *SimRadio) Disconnect() error {
	s.DropLink()
	return nil
}

func (s *SimRadio) StartAP(ssid, passphrase string) (net.IP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.linked = false
	s.target = ""
	s.apActive = true
	s.apSSID = ssid
	return SimAPAddress, nil
}

func (s *SimRadio) StopAP() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apActive = false
	return nil
}

func (s *SimRadio) Scan() ([]Network, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	nets := make([]Network, 0, len(s.networks))
	for ssid, n := range s.networks {
		nets = append(nets, Network{SSID: ssid, Signal: n.Signal, Secure: n.Passphrase != ""})
	}
	sort.Slice(nets, func(i, j int) bool { return nets[i].Signal > nets[j].Signal })
	return nets, nil
}

func (s *SimRadio) LocalIP() net.IP {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.linked {
		return nil
	}
	return SimStationAddress
}
