package discovery

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// TXTRecordMap is a map of TXT record key-value pairs.
type TXTRecordMap map[string]string

// InstanceName returns the service instance name for a short device ID.
func InstanceName(shortID string) string {
	return InstancePrefix + shortID
}

// EncodeTXT creates the TXT records for info.
func EncodeTXT(info *ServiceInfo) TXTRecordMap {
	txt := TXTRecordMap{
		TXTKeyID:       info.DeviceID,
		TXTKeyTimezone: strconv.Itoa(info.TimezoneIndex),
	}
	if info.Version != "" {
		txt[TXTKeyVersion] = info.Version
	}
	return txt
}

// DecodeTXT fills the TXT-derived fields of svc.
func DecodeTXT(txt TXTRecordMap, svc *ClockService) error {
	id, ok := txt[TXTKeyID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyID)
	}
	svc.DeviceID = id

	if tz, ok := txt[TXTKeyTimezone]; ok {
		n, err := strconv.Atoi(tz)
		if err != nil {
			return fmt.Errorf("invalid %s record %q", TXTKeyTimezone, tz)
		}
		svc.TimezoneIndex = n
	}
	svc.Version = txt[TXTKeyVersion]
	return nil
}

// TXTRecordsToStrings converts a TXTRecordMap to sorted "key=value" strings.
func TXTRecordsToStrings(txt TXTRecordMap) []string {
	result := make([]string, 0, len(txt))
	for k, v := range txt {
		result = append(result, k+"="+v)
	}
	sort.Strings(result)
	return result
}

// StringsToTXTRecords parses "key=value" strings into a TXTRecordMap.
func StringsToTXTRecords(strs []string) TXTRecordMap {
	txt := make(TXTRecordMap)
	for _, s := range strs {
		k, v, found := strings.Cut(s, "=")
		if k == "" {
			continue
		}
		if !found {
			// Key without value (boolean flag)
			v = ""
		}
		txt[k] = v
	}
	return txt
}

// ValidateInstanceName checks if an instance name is valid for mDNS.
func ValidateInstanceName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInstanceNameTooLong)
	}
	if len(name) > MaxInstanceNameLen {
		return ErrInstanceNameTooLong
	}
	return nil
}
