package messages

// Background task and presentation loop messages.
const (
	AsyncTaskFailed      = "Background task failed"
	AsyncTaskPanicFmt    = "task %s panicked: %v"
	AsyncClosurePanicked = "Presentation closure panicked"
	AsyncLoopAlreadyRan  = "presentation loop already ran"
	AsyncTaskStarted     = "Background task started"
	AsyncTaskFinished    = "Background task finished"
)
