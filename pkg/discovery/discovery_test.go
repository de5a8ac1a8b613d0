package discovery

import (
	"bytes"
	"context"
	"net"
	"testing"

	"github.com/enbility/zeroconf/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTXT(t *testing.T) {
	info := &ServiceInfo{ShortID: "1A2B", DeviceID: "abc", TimezoneIndex: 4, Version: "1.2.0"}

	txt := TXTRecordsToStrings(EncodeTXT(info))

	assert.Equal(t, []string{"id=abc", "tz=4", "ver=1.2.0"}, txt)
}

func TestDecodeTXTRoundTrip(t *testing.T) {
	info := &ServiceInfo{DeviceID: "abc", TimezoneIndex: 9}
	var svc ClockService

	require.NoError(t, DecodeTXT(StringsToTXTRecords(TXTRecordsToStrings(EncodeTXT(info))), &svc))

	assert.Equal(t, "abc", svc.DeviceID)
	assert.Equal(t, 9, svc.TimezoneIndex)
	assert.Empty(t, svc.Version)
}

func TestDecodeTXTErrors(t *testing.T) {
	var svc ClockService
	assert.ErrorIs(t, DecodeTXT(TXTRecordMap{"tz": "1"}, &svc), ErrMissingRequired)
	assert.Error(t, DecodeTXT(TXTRecordMap{"id": "x", "tz": "east"}, &svc))
}

func TestStringsToTXTRecords(t *testing.T) {
	txt := StringsToTXTRecords([]string{"id=a=b", "flag", "", "=x"})
	assert.Equal(t, TXTRecordMap{"id": "a=b", "flag": ""}, txt)
}

func TestInstanceName(t *testing.T) {
	assert.Equal(t, "netclock-1A2B", InstanceName("1A2B"))
	assert.NoError(t, ValidateInstanceName(InstanceName("1A2B")))
	assert.Error(t, ValidateInstanceName(""))
	assert.ErrorIs(t, ValidateInstanceName(string(make([]byte, 64))), ErrInstanceNameTooLong)
}

func TestEntryToClock(t *testing.T) {
	entry := &zeroconf.ServiceEntry{ServiceRecord: zeroconf.ServiceRecord{Instance: "netclock-1A2B", Service: ServiceType, Domain: Domain}}
	entry.HostName = "clock.local."
	entry.Port = 80
	entry.Text = []string{"id=dev-1", "tz=7", "ver=1.0"}
	entry.AddrIPv4 = []net.IP{net.IPv4(192, 168, 1, 50)}

	svc := entryToClock(entry)
	require.NotNil(t, svc)
	assert.Equal(t, "dev-1", svc.DeviceID)
	assert.Equal(t, 7, svc.TimezoneIndex)
	assert.Equal(t, "http://192.168.1.50/", svc.URL())

	other := &zeroconf.ServiceEntry{ServiceRecord: zeroconf.ServiceRecord{Instance: "printer", Service: ServiceType, Domain: Domain}}
	assert.Nil(t, entryToClock(other))
}

func TestMergeAddresses(t *testing.T) {
	a := net.IPv4(10, 0, 0, 1)
	b := net.ParseIP("fe80::1")
	got := mergeAddresses([]net.IP{a}, []net.IP{a, b})
	assert.Len(t, got, 2)
}

func TestStatusURL(t *testing.T) {
	assert.Equal(t, "http://10.0.0.5/", StatusURL(net.IPv4(10, 0, 0, 5), 80))
	assert.Equal(t, "http://10.0.0.5:8080/", StatusURL(net.IPv4(10, 0, 0, 5), 8080))
	assert.Equal(t, "http://[fe80::1]/", StatusURL(net.ParseIP("fe80::1"), 0))
}

func TestWiFiJoinPayload(t *testing.T) {
	assert.Equal(t, "WIFI:T:nopass;S:NetClock-1A2B;;", WiFiJoinPayload("NetClock-1A2B", ""))
	assert.Equal(t, `WIFI:T:WPA;S:My\;Net;P:p\:w;;`, WiFiJoinPayload("My;Net", "p:w"))
}

func TestQRPNG(t *testing.T) {
	png, err := QRPNG("http://10.0.0.5/", 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	txt, err := QRText("WIFI:T:nopass;S:NetClock-1A2B;;")
	require.NoError(t, err)
	assert.NotEmpty(t, txt)
}

func TestMDNSAdvertiserUpdateRequiresAdvertise(t *testing.T) {
	adv := NewMDNSAdvertiser(DefaultAdvertiserConfig())

	assert.ErrorIs(t, adv.Update(&ServiceInfo{ShortID: "1A2B"}), ErrNotAdvertising)
	assert.NoError(t, adv.Stop())
	assert.Nil(t, adv.Current())
}

func TestMDNSAdvertiserCancelledContext(t *testing.T) {
	adv := NewMDNSAdvertiser(DefaultAdvertiserConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, adv.Advertise(ctx, &ServiceInfo{ShortID: "1A2B"}), context.Canceled)
}

func TestMDNSAdvertiserRegisters(t *testing.T) {
	if testing.Short() {
		t.Skip("requires multicast networking")
	}
	adv := NewMDNSAdvertiser(DefaultAdvertiserConfig())
	defer adv.Stop()

	info := &ServiceInfo{ShortID: "1A2B", DeviceID: "dev", TimezoneIndex: 0, Port: 18080}
	if err := adv.Advertise(context.Background(), info); err != nil {
		t.Skipf("mdns unavailable: %v", err)
	}

	require.NoError(t, adv.Update(&ServiceInfo{ShortID: "1A2B", DeviceID: "dev", TimezoneIndex: 3, Port: 18080}))
	assert.Equal(t, 3, adv.Current().TimezoneIndex)
	require.NoError(t, adv.Stop())
	assert.Nil(t, adv.Current())
}
