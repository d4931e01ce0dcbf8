// Package doctor implements the health checks run by "fitlog doctor".
package doctor

import "context"

// Status represents the result status of a check item.
type Status int

const (
	StatusPass Status = iota
	StatusWarn
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// MarshalText renders the status by name in JSON output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CheckItem represents a single line item within a check result.
type CheckItem struct {
	Label  string `json:"label"`
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Result represents the outcome of a check containing multiple items.
type Result struct {
	Name  string      `json:"name"`
	Items []CheckItem `json:"items"`
}

func (r *Result) add(item CheckItem) {
	r.Items = append(r.Items, item)
}

// Check defines the interface for a doctor check.
type Check interface {
	Name() string
	Run(ctx context.Context) Result
}

// RunAll executes checks in order and returns their results.
func RunAll(ctx context.Context, checks []Check) []Result {
	results := make([]Result, 0, len(checks))
	for _, check := range checks {
		results = append(results, check.Run(ctx))
	}
	return results
}

// Counts tallies check items by status.
type Counts struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

// Healthy reports whether no item failed.
func (c Counts) Healthy() bool {
	return c.Failed == 0
}

// Summary counts items across all results.
func Summary(results []Result) Counts {
	var c Counts
	for _, r := range results {
		for _, item := range r.Items {
			switch item.Status {
			case StatusPass:
				c.Passed++
			case StatusWarn:
				c.Warned++
			case StatusFail:
				c.Failed++
			}
		}
	}
	return c
}
