// Package discovery advertises the clock on the local network.
//
// In Station mode the status page is registered as a DNS-SD service:
//
//	service:  _http._tcp.local.
//	instance: netclock-<short id>, e.g. netclock-1A2B
//	TXT:      id=<device id> tz=<timezone index> ver=<firmware version>
//
// MDNSBrowser finds other clocks advertising the same service, and the QR
// helpers encode the status URL and the configuration network join string.
package discovery
