package fixtures

import (
	"time"

	"github.com/google/uuid"
)

// Status is the outcome of a single fixture.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Check names the assertion a failure belongs to.
type Check string

const (
	CheckSelection Check = "selection"
	CheckHint      Check = "hint"
	CheckRoundTrip Check = "round_trip"
)

// Failure describes one failed check.
type Failure struct {
	Check   Check  `json:"check" yaml:"check"`
	Message string `json:"message" yaml:"message"`
	Code    string `json:"code,omitempty" yaml:"code,omitempty"`
}

// Result is the outcome of running one fixture.
type Result struct {
	Name     string    `json:"name" yaml:"name"`
	Path     string    `json:"path" yaml:"path"`
	Status   Status    `json:"status" yaml:"status"`
	Snapshot string    `json:"snapshot,omitempty" yaml:"snapshot,omitempty"`
	Expected string    `json:"expected,omitempty" yaml:"expected,omitempty"`
	Failures []Failure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Report summarises a fixture run.
type Report struct {
	RunID      uuid.UUID `json:"run_id" yaml:"run_id"`
	Dir        string    `json:"dir" yaml:"dir"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
	Passed     int       `json:"passed" yaml:"passed"`
	Failed     int       `json:"failed" yaml:"failed"`
	Skipped    int       `json:"skipped" yaml:"skipped"`
	Results    []Result  `json:"results" yaml:"results"`
}

// OK reports whether no fixture failed.
func (r Report) OK() bool {
	return r.Failed == 0
}

func (r *Report) add(result Result) {
	switch result.Status {
	case StatusPassed:
		r.Passed++
	case StatusFailed:
		r.Failed++
	case StatusSkipped:
		r.Skipped++
	}
	r.Results = append(r.Results, result)
}
