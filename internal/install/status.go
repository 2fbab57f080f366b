package install

// EventKind distinguishes progress reports from failures.
type EventKind int

const (
	// EventStatus reports progress.
	EventStatus EventKind = iota
	// EventError reports a failure the procedure recovered from enough to describe.
	EventError
)

// Stage names the phase of the install procedure that produced an event.
type Stage string

const (
	StageStarting    Stage = "starting"
	StageDownloading Stage = "downloading"
	StageVerifying   Stage = "verifying"
	StageAddons      Stage = "addons"
	StageProfile     Stage = "profile"
	StageDone        Stage = "done"
)

// StatusEvent is a single message on the status channel.
// Error events carry the underlying error in Err; Message is what the user sees.
type StatusEvent struct {
	Kind    EventKind
	Stage   Stage
	Message string
	Payload any
	Err     error
}

// NewStatus builds a progress event.
func NewStatus(stage Stage, message string, payload any) StatusEvent {
	return StatusEvent{Kind: EventStatus, Stage: stage, Message: message, Payload: payload}
}

// NewError builds a failure event.
func NewError(stage Stage, message string, err error) StatusEvent {
	return StatusEvent{Kind: EventError, Stage: stage, Message: message, Err: err}
}

// IsError reports whether the event is a failure.
func (e StatusEvent) IsError() bool {
	return e.Kind == EventError
}

// Sink receives status events in emission order.
type Sink interface {
	Emit(event StatusEvent)
}

// SinkFunc adapts a function into a Sink.
type SinkFunc func(StatusEvent)

// Emit calls f(event).
func (f SinkFunc) Emit(event StatusEvent) {
	f(event)
}

// Discard drops every event.
var Discard Sink = SinkFunc(func(StatusEvent) {})
