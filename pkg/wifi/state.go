package wifi

// State is the connectivity state of the device.
type State uint8

const (
	// StateUnconfigured is the state before any connection attempt.
	StateUnconfigured State = iota

	// StateAPActive indicates the device is hosting its configuration network.
	StateAPActive

	// StateStationConnecting indicates association is in progress.
	StateStationConnecting

	// StateStationConnected indicates the device joined the configured network.
	StateStationConnected

	// StateStationLost indicates a previously connected link went down.
	StateStationLost
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "UNCONFIGURED"
	case StateAPActive:
		return "AP_ACTIVE"
	case StateStationConnecting:
		return "STATION_CONNECTING"
	case StateStationConnected:
		return "STATION_CONNECTED"
	case StateStationLost:
		return "STATION_LOST"
	default:
		return "UNKNOWN"
	}
}
