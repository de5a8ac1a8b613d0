package wifi

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// DefaultInterface is the wireless device used when none is configured.
const DefaultInterface = "wlan0"

const hotspotConnection = "netclock-ap"

// Runner executes a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		return out, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(exitErr.Stderr)))
	}
	return out, err
}

// NMCLIRadio drives NetworkManager via nmcli.
type NMCLIRadio struct {
	// Interface is the wireless device, e.g. "wlan0".
	Interface string

	// Timeout bounds every nmcli invocation.
	Timeout time.Duration

	run Runner
}

var _ Radio = (*NMCLIRadio)(nil)

// NewNMCLIRadio creates a radio on iface. A nil runner uses ExecRunner.
func NewNMCLIRadio(iface string, run Runner) *NMCLIRadio {
	if iface == "" {
		iface = DefaultInterface
	}
	if run == nil {
		run = ExecRunner
	}
	return &NMCLIRadio{Interface: iface, Timeout: 15 * time.Second, run: run}
}

func (r *NMCLIRadio) nmcli(args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.Timeout)
	defer cancel()
	return r.run(ctx, "nmcli", args...)
}

// Connect requests activation without waiting for it to complete.
func (r *NMCLIRadio) Connect(ssid, passphrase string) error {
	args := []string{"--wait", "0", "dev", "wifi", "connect", ssid}
	if passphrase != "" {
		args = append(args, "password", passphrase)
	}
	args = append(args, "ifname", r.Interface)
	_, err := r.nmcli(args...)
	return err
}

func (r *NMCLIRadio) Connected() bool {
	out, err := r.nmcli("-t", "-f", "DEVICE,STATE", "dev")
	if err != nil {
		return false
	}
	for _, fields := range parseTerse(string(out)) {
		if len(fields) >= 2 && fields[0] == r.Interface {
			return fields[1] == "connected"
		}
	}
	return false
}

func (r *NMCLIRadio) Disconnect() error {
	_, err := r.nmcli("dev", "disconnect", r.Interface)
	return err
}

func (r *NMCLIRadio) StartAP(ssid, passphrase string) (net.IP, error) {
	args := []string{"dev", "wifi", "hotspot", "ifname", r.Interface, "con-name", hotspotConnection, "ssid", ssid}
	if passphrase != "" {
		args = append(args, "password", passphrase)
	}
	if _, err := r.nmcli(args...); err != nil {
		return nil, err
	}
	ip := r.address()
	if ip == nil {
		return nil, fmt.Errorf("no address on %s", r.Interface)
	}
	return ip, nil
}

func (r *NMCLIRadio) StopAP() error {
	_, err := r.nmcli("con", "down", hotspotConnection)
	return err
}

func (r *NMCLIRadio) Scan() ([]Network, error) {
	out, err := r.nmcli("-t", "-f", "SSID,SIGNAL,SECURITY", "dev", "wifi", "list", "ifname", r.Interface)
	if err != nil {
		return nil, err
	}
	return parseScan(string(out)), nil
}

func (r *NMCLIRadio) LocalIP() net.IP {
	if !r.Connected() {
		return nil
	}
	return r.address()
}

func (r *NMCLIRadio) address() net.IP {
	out, err := r.nmcli("-t", "-f", "IP4.ADDRESS", "dev", "show", r.Interface)
	if err != nil {
		return nil
	}
	for _, fields := range parseTerse(string(out)) {
		if len(fields) < 2 || !strings.HasPrefix(fields[0], "IP4.ADDRESS") {
			continue
		}
		addr, _, _ := strings.Cut(fields[1], "/")
		if ip := net.ParseIP(addr); ip != nil {
			return ip
		}
	}
	return nil
}

// parseScan parses `nmcli -t -f SSID,SIGNAL,SECURITY dev wifi list`. Hidden
// networks are skipped and duplicates keep the strongest signal.
func parseScan(output string) []Network {
	var nets []Network
	seen := make(map[string]int)

	for _, fields := range parseTerse(output) {
		if len(fields) < 3 || fields[0] == "" {
			continue
		}
		signal, _ := strconv.Atoi(fields[1])
		sec := strings.TrimSpace(fields[2])
		n := Network{
			SSID:   fields[0],
			Signal: signal,
			Secure: sec != "" && sec != "--",
		}
		if i, ok := seen[n.SSID]; ok {
			if n.Signal > nets[i].Signal {
				nets[i] = n
			}
			continue
		}
		seen[n.SSID] = len(nets)
		nets = append(nets, n)
	}
	return nets
}

// parseTerse splits nmcli terse output into fields. Literal colons in values
// are escaped as \:.
func parseTerse(output string) [][]string {
	var rows [][]string

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		const placeholder = "\x00"
		escaped := strings.ReplaceAll(line, `\:`, placeholder)
		parts := strings.Split(escaped, ":")
		for i := range parts {
			parts[i] = strings.ReplaceAll(parts[i], placeholder, ":")
		}
		rows = append(rows, parts)
	}
	return rows
}
