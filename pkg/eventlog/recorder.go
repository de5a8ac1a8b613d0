package eventlog

import "time"

// Recorder stamps events with the boot and device identity before passing
// them to a Logger.
type Recorder struct {
	logger   Logger
	bootID   string
	deviceID string
	now      func() time.Time
}

// NewRecorder creates a recorder. A nil logger discards events.
func NewRecorder(logger Logger, bootID, deviceID string) *Recorder {
	if logger == nil {
		logger = NoopLogger{}
	}
	return &Recorder{logger: logger, bootID: bootID, deviceID: deviceID, now: time.Now}
}

// SetClock replaces the timestamp source.
func (r *Recorder) SetClock(now func() time.Time) {
	r.now = now
}

// SetDeviceID sets the device identity once it is known.
func (r *Recorder) SetDeviceID(id string) {
	r.deviceID = id
}

// BootID returns the boot identity.
func (r *Recorder) BootID() string {
	return r.bootID
}

func (r *Recorder) record(e Event) {
	e.Timestamp = r.now()
	e.BootID = r.bootID
	e.DeviceID = r.deviceID
	r.logger.Log(e)
}

// State records a state transition.
func (r *Recorder) State(entity StateEntity, from, to, reason string) {
	r.record(Event{
		Category:    CategoryState,
		StateChange: &StateChangeEvent{Entity: entity, OldState: from, NewState: to, Reason: reason},
	})
}

// Sync records a sync attempt.
func (r *Recorder) Sync(trigger, server string, success bool, uptime time.Duration) {
	r.record(Event{
		Category: CategorySync,
		Sync:     &SyncEvent{Trigger: trigger, Success: success, Server: server, Uptime: uptime},
	})
}

// Config records a configuration write.
func (r *Recorder) Config(c ConfigEvent) {
	r.record(Event{Category: CategoryConfig, Config: &c})
}

// Update records a firmware update event.
func (r *Recorder) Update(u UpdateEvent) {
	r.record(Event{Category: CategoryUpdate, Update: &u})
}

// Error records an error from component.
func (r *Recorder) Error(component string, err error) {
	if err == nil {
		return
	}
	r.record(Event{
		Category: CategoryError,
		Error:    &ErrorEventData{Component: component, Message: err.Error()},
	})
}
