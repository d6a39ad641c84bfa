package model

// StepStatus represents the status of a single validation step
type StepStatus string

const (
	// StepStatusPending means the step is queued but not started
	StepStatusPending StepStatus = "Pending"

	// StepStatusRunning means the step is in progress
	StepStatusRunning StepStatus = "Running"

	// StepStatusPassed means the step finished successfully
	StepStatusPassed StepStatus = "Passed"

	// StepStatusFailed means the step failed with an error
	StepStatusFailed StepStatus = "Failed"

	// StepStatusSkipped means the step was skipped by configuration
	StepStatusSkipped StepStatus = "Skipped"
)

// String returns the string representation of StepStatus
func (ss StepStatus) String() string {
	return string(ss)
}

// IsActive returns true if the step is currently running
func (ss StepStatus) IsActive() bool {
	return ss == StepStatusRunning
}

// IsFinished returns true if the step is in a terminal state (passed, failed, or skipped)
func (ss StepStatus) IsFinished() bool {
	return ss == StepStatusPassed || ss == StepStatusFailed || ss == StepStatusSkipped
}
