package model

import "time"

// StepResult records the outcome of one validation step
type StepResult struct {
	Name       string
	Status     StepStatus
	LastError  string // last error message if any
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration returns how long the step took, zero if it never finished
func (r StepResult) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Report collects the results of a full validation run
type Report struct {
	Steps []StepResult
}

// Add appends a step result to the report
func (rp *Report) Add(r StepResult) {
	rp.Steps = append(rp.Steps, r)
}

// Failed returns true if any step in the report failed
func (rp *Report) Failed() bool {
	for _, s := range rp.Steps {
		if s.Status == StepStatusFailed {
			return true
		}
	}
	return false
}
