package eventlog

import (
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Records are flat: an event map holding at most one payload map. The decode
// limits reject anything deeper or wider before it is allocated, so a
// corrupted journal cannot exhaust memory on the device.
const (
	maxRecordDepth = 4
	maxRecordItems = 16
)

var (
	recordEnc = mustEncMode(cbor.EncOptions{
		Sort:          cbor.SortCoreDeterministic,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	})
	recordDec = mustDecMode(cbor.DecOptions{
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		IndefLength:      cbor.IndefLengthForbidden,
		MaxNestedLevels:  maxRecordDepth,
		MaxArrayElements: maxRecordItems,
		MaxMapPairs:      maxRecordItems,
	})
)

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	em, err := opts.EncMode()
	if err != nil {
		panic("eventlog: record encoder: " + err.Error())
	}
	return em
}

func mustDecMode(opts cbor.DecOptions) cbor.DecMode {
	dm, err := opts.DecMode()
	if err != nil {
		panic("eventlog: record decoder: " + err.Error())
	}
	return dm
}

// EncodeEvent returns the journal record for event.
func EncodeEvent(event Event) ([]byte, error) {
	return recordEnc.Marshal(event)
}

// DecodeEvent parses a single journal record. Duplicate keys and records
// nested or sized beyond a flat event are rejected.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := recordDec.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	return event, nil
}

// NewEncoder appends journal records to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return recordEnc.NewEncoder(w)
}

// NewDecoder reads consecutive journal records from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return recordDec.NewDecoder(r)
}

// Event is one journal record.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp is the wall-clock time the event was recorded.
	Timestamp time.Time `cbor:"1,keyasint"`

	// BootID identifies the boot (one per controller restart).
	BootID string `cbor:"2,keyasint"`

	// DeviceID is the persistent device identifier.
	DeviceID string `cbor:"3,keyasint,omitempty"`

	// Category classifies the event.
	Category Category `cbor:"4,keyasint"`

	// Type-specific payload (one of these will be set).
	StateChange *StateChangeEvent `cbor:"10,keyasint,omitempty"`
	Sync        *SyncEvent        `cbor:"11,keyasint,omitempty"`
	Config      *ConfigEvent      `cbor:"12,keyasint,omitempty"`
	Update      *UpdateEvent      `cbor:"13,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"14,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryState is a mode or link state transition.
	CategoryState Category = 0
	// CategorySync is a time synchronization attempt.
	CategorySync Category = 1
	// CategoryConfig is a write of the persisted configuration.
	CategoryConfig Category = 2
	// CategoryUpdate is a firmware update lifecycle event.
	CategoryUpdate Category = 3
	// CategoryError is an error that did not fit another category.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryState:
		return "STATE"
	case CategorySync:
		return "SYNC"
	case CategoryConfig:
		return "CONFIG"
	case CategoryUpdate:
		return "UPDATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory maps a name as returned by String back to a Category.
func ParseCategory(name string) (Category, bool) {
	for c := CategoryState; c <= CategoryError; c++ {
		if c.String() == name {
			return c, true
		}
	}
	return 0, false
}

// StateEntity identifies which state machine changed.
type StateEntity uint8

const (
	// StateEntityMode is the controller operating mode.
	StateEntityMode StateEntity = 0
	// StateEntityLink is the wireless connectivity state.
	StateEntityLink StateEntity = 1
)

// String returns the entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityMode:
		return "MODE"
	case StateEntityLink:
		return "LINK"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent is a transition of a state machine.
type StateChangeEvent struct {
	Entity   StateEntity `cbor:"1,keyasint"`
	OldState string      `cbor:"2,keyasint"`
	NewState string      `cbor:"3,keyasint"`
	Reason   string      `cbor:"4,keyasint,omitempty"`
}

// SyncEvent is one time synchronization attempt.
type SyncEvent struct {
	Trigger string `cbor:"1,keyasint"`
	Success bool   `cbor:"2,keyasint"`
	Server  string `cbor:"3,keyasint,omitempty"`

	// Uptime is the monotonic time of the attempt.
	Uptime time.Duration `cbor:"4,keyasint"`
}

// ConfigEvent is a persisted configuration change.
type ConfigEvent struct {
	// Action is "save", "settings" or "reset".
	Action        string `cbor:"1,keyasint"`
	SSID          string `cbor:"2,keyasint,omitempty"`
	TimezoneIndex int    `cbor:"3,keyasint"`
	SyncServer    string `cbor:"4,keyasint,omitempty"`
	Brightness    int    `cbor:"5,keyasint"`
}

// UpdateEvent is a firmware update lifecycle event.
type UpdateEvent struct {
	// Stage is "start", "progress", "end" or "error".
	Stage   string `cbor:"1,keyasint"`
	Target  string `cbor:"2,keyasint,omitempty"`
	Percent int    `cbor:"3,keyasint,omitempty"`
	Error   string `cbor:"4,keyasint,omitempty"`
}

// ErrorEventData is an error report.
type ErrorEventData struct {
	Component string `cbor:"1,keyasint"`
	Message   string `cbor:"2,keyasint"`
}
