package models

// BatchStatus represents the lifecycle state of a batch run.
type BatchStatus string

const (
	// BatchStatusIdle means no batch has been started yet.
	BatchStatusIdle BatchStatus = "Idle"

	// BatchStatusRunning means the worker is processing files.
	BatchStatusRunning BatchStatus = "Running"

	// BatchStatusStopping means a stop was requested and the worker is
	// winding down at the next loop boundary.
	BatchStatusStopping BatchStatus = "Stopping"

	// BatchStatusStopped means the batch terminated early on user request.
	BatchStatusStopped BatchStatus = "Stopped"

	// BatchStatusFinished means every file in the batch was visited.
	BatchStatusFinished BatchStatus = "Finished"

	// BatchStatusErrored means a fatal configuration error aborted the
	// batch before any file was processed.
	BatchStatusErrored BatchStatus = "Errored"
)

// String returns the string representation of BatchStatus.
func (bs BatchStatus) String() string {
	return string(bs)
}

// IsActive returns true if the batch is still in flight.
func (bs BatchStatus) IsActive() bool {
	return bs == BatchStatusRunning || bs == BatchStatusStopping
}

// IsFinished returns true if the batch reached a terminal state.
func (bs BatchStatus) IsFinished() bool {
	return bs == BatchStatusStopped || bs == BatchStatusFinished || bs == BatchStatusErrored
}
