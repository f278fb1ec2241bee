package harness

import "github.com/google/uuid"

// QueryOutcome records the execution of one suite entry.
type QueryOutcome struct {
	// Query is the catalog slug that ran.
	Query string `json:"query"`

	// Rows is the number of rows the query returned.
	Rows int `json:"rows"`

	// Checks is the number of checks evaluated against the result.
	Checks int `json:"checks"`

	// Failures is the number of checks that failed.
	Failures int `json:"failures"`
}

// Result is the outcome of one conformance suite run.
type Result struct {
	// RunID uniquely identifies this run.
	// UUIDv7, so IDs from repeated runs sort by start time.
	RunID string `json:"run_id"`

	// Suite is the name of the executed suite.
	Suite string `json:"suite"`

	// Pass indicates overall success.
	// True if every check in every query passed.
	Pass bool `json:"pass"`

	// Queries records each executed catalog query in suite order.
	Queries []QueryOutcome `json:"queries"`

	// Errors contains check failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result for the named suite.
// Used as the starting point for suite execution.
func NewResult(suite string) *Result {
	return &Result{
		RunID:   uuid.Must(uuid.NewV7()).String(),
		Suite:   suite,
		Pass:    true,
		Queries: []QueryOutcome{},
		Errors:  []string{},
	}
}

// AddError adds a check failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddOutcome appends a query outcome.
func (r *Result) AddOutcome(o QueryOutcome) {
	r.Queries = append(r.Queries, o)
}
