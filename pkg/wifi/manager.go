package wifi

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/netclock/netclock-go/pkg/softtimer"
)

// Defaults for association polling.
const (
	DefaultAttempts = 30
	DefaultInterval = 500 * time.Millisecond
)

// Manager errors.
var (
	ErrAssociationTimeout = errors.New("association timed out")
	ErrNoSSID             = errors.New("no network name configured")
	ErrInvalidConfig      = errors.New("invalid wifi config")
)

// Config configures a Manager.
type Config struct {
	// Attempts is the number of link polls before association gives up.
	Attempts int

	// Interval is the blocking wait between polls.
	Interval time.Duration

	// Sleep performs the wait. Defaults to softtimer.Sleep.
	Sleep softtimer.Sleeper

	// Logger receives state transitions. Nil discards.
	Logger *slog.Logger
}

// DefaultConfig returns the default association policy.
func DefaultConfig() Config {
	return Config{
		Attempts: DefaultAttempts,
		Interval: DefaultInterval,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Attempts <= 0 {
		return fmt.Errorf("%w: attempts must be positive", ErrInvalidConfig)
	}
	if c.Interval < 0 {
		return fmt.Errorf("%w: negative interval", ErrInvalidConfig)
	}
	return nil
}

// StateHandler is called on every state transition.
type StateHandler func(from, to State)

// Manager tracks the connectivity state and drives the radio.
type Manager struct {
	mu       sync.Mutex
	radio    Radio
	config   Config
	state    State
	apIP     net.IP
	handlers []StateHandler
	logger   *slog.Logger
}

// NewManager creates a manager in StateUnconfigured.
func NewManager(radio Radio, config Config) *Manager {
	if config.Attempts <= 0 {
		config.Attempts = DefaultAttempts
	}
	if config.Sleep == nil {
		config.Sleep = softtimer.Sleep
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		radio:  radio,
		config: config,
		state:  StateUnconfigured,
		logger: logger,
	}
}

// OnStateChange registers a transition handler.
func (m *Manager) OnStateChange(h StateHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = append(m.handlers, h)
}

// State returns the current state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Connect associates with ssid, polling the radio up to Attempts times with a
// blocking Interval wait between polls. onAttempt, if set, is called after
// each wait with the 1-based attempt number. On exhaustion the radio is
// disconnected and ErrAssociationTimeout is returned. A failed Connect leaves
// the manager in StateStationConnecting until the caller starts the access
// point or shuts down.
func (m *Manager) Connect(ssid, passphrase string, onAttempt func(attempt int)) error {
	if ssid == "" {
		return ErrNoSSID
	}

	m.setState(StateStationConnecting)
	m.logger.Info("associating", "ssid", ssid)

	if err := m.radio.Connect(ssid, passphrase); err != nil {
		return fmt.Errorf("connect %q: %w", ssid, err)
	}

	for attempt := 1; attempt <= m.config.Attempts; attempt++ {
		if m.radio.Connected() {
			break
		}
		m.config.Sleep(m.config.Interval)
		if onAttempt != nil {
			onAttempt(attempt)
		}
	}

	if !m.radio.Connected() {
		if err := m.radio.Disconnect(); err != nil {
			m.logger.Warn("disconnect after timeout failed", "error", err)
		}
		m.logger.Warn("association timed out", "ssid", ssid, "attempts", m.config.Attempts)
		return ErrAssociationTimeout
	}

	m.setState(StateStationConnected)
	m.logger.Info("associated", "ssid", ssid, "ip", m.radio.LocalIP())
	return nil
}

// StartAP hosts the configuration network and returns its address.
func (m *Manager) StartAP(ssid, passphrase string) (net.IP, error) {
	ip, err := m.radio.StartAP(ssid, passphrase)
	if err != nil {
		return nil, fmt.Errorf("start access point %q: %w", ssid, err)
	}

	m.mu.Lock()
	m.apIP = ip
	m.mu.Unlock()

	m.setState(StateAPActive)
	m.logger.Info("access point up", "ssid", ssid, "ip", ip)
	return ip, nil
}

// CheckLink polls the radio while connected and moves to StateStationLost
// when the link is gone. It returns false once the link is lost.
func (m *Manager) CheckLink() bool {
	switch m.State() {
	case StateStationConnected:
	case StateStationLost:
		return false
	default:
		return true
	}

	if m.radio.Connected() {
		return true
	}
	m.setState(StateStationLost)
	m.logger.Warn("link lost")
	return false
}

// Scan lists visible networks.
func (m *Manager) Scan() ([]Network, error) {
	nets, err := m.radio.Scan()
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return nets, nil
}

// LocalIP returns the address of the device in its current mode.
func (m *Manager) LocalIP() net.IP {
	m.mu.Lock()
	state, apIP := m.state, m.apIP
	m.mu.Unlock()

	if state == StateAPActive {
		return apIP
	}
	return m.radio.LocalIP()
}

// Shutdown releases the radio and returns to StateUnconfigured.
func (m *Manager) Shutdown() error {
	var err error
	switch m.State() {
	case StateAPActive:
		err = m.radio.StopAP()
	case StateStationConnected, StateStationConnecting, StateStationLost:
		err = m.radio.Disconnect()
	}
	m.setState(StateUnconfigured)
	return err
}

func (m *Manager) setState(to State) {
	m.mu.Lock()
	from := m.state
	if from == to {
		m.mu.Unlock()
		return
	}
	m.state = to
	handlers := append([]StateHandler(nil), m.handlers...)
	m.mu.Unlock()

	m.logger.Debug("wifi state", "from", from, "to", to)
	for _, h := range handlers {
		h(from, to)
	}
}
