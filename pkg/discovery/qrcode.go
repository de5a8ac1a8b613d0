package discovery

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultQRSize is the PNG edge length in pixels.
const DefaultQRSize = 256

// StatusURL returns the URL of the status page at ip:port.
func StatusURL(ip net.IP, port int) string {
	host := ip.String()
	if ip.To4() == nil {
		host = "[" + host + "]"
	}
	if port == 0 || port == DefaultPort {
		return "http://" + host + "/"
	}
	return "http://" + host + ":" + strconv.Itoa(port) + "/"
}

// WiFiJoinPayload returns the "WIFI:" string phones scan to join a network.
// An empty passphrase denotes an open network.
func WiFiJoinPayload(ssid, passphrase string) string {
	esc := strings.NewReplacer(`\`, `\\`, `;`, `\;`, `,`, `\,`, `:`, `\:`, `"`, `\"`)
	if passphrase == "" {
		return fmt.Sprintf("WIFI:T:nopass;S:%s;;", esc.Replace(ssid))
	}
	return fmt.Sprintf("WIFI:T:WPA;S:%s;P:%s;;", esc.Replace(ssid), esc.Replace(passphrase))
}

// QRPNG encodes content as a PNG image of size pixels.
func QRPNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

// QRText renders content as a QR code made of block characters for a
// terminal.
func QRText(content string) (string, error) {
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	return qr.ToSmallString(false), nil
}
