package health

import (
	"fmt"
	"strings"
	"time"
)

// Status represents the health status of a dependency.
//
// Statuses are ordered by severity; Summarize relies on that order.
type Status int

const (
	// StatusHealthy indicates the dependency is functioning normally.
	StatusHealthy Status = iota
	// StatusUnknown indicates the status could not be computed, which does
	// not necessarily mean the dependency is broken.
	StatusUnknown
	// StatusDegraded indicates the dependency works but with issues, e.g.
	// high latency.
	StatusDegraded
	// StatusCritical indicates the dependency is broken.
	StatusCritical
)

var statusNames = [...]string{"HEALTHY", "UNKNOWN", "DEGRADED", "CRITICAL"}

// String returns the string representation of the status.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// ParseStatus parses a status name, ignoring case.
func ParseStatus(name string) (Status, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range statusNames {
		if n == name {
			return Status(i), nil
		}
	}
	return StatusUnknown, fmt.Errorf("unknown status %q", name)
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Result is the outcome of one probe invocation.
type Result struct {
	Status Status `json:"status" yaml:"status"`

	// Text is free-form detail. It may be empty.
	Text string `json:"statusText" yaml:"statusText"`
}

// OK returns a healthy result with no detail.
func OK() Result {
	return Result{Status: StatusHealthy}
}

// Healthy creates a healthy result.
func Healthy(text string) Result {
	return Result{Status: StatusHealthy, Text: text}
}

// Unknown creates a result for a status that could not be computed.
func Unknown(text string) Result {
	return Result{Status: StatusUnknown, Text: text}
}

// Degraded creates a degraded result.
func Degraded(text string) Result {
	return Result{Status: StatusDegraded, Text: text}
}

// Critical creates a critical result.
func Critical(text string) Result {
	return Result{Status: StatusCritical, Text: text}
}

// Tweet pairs a dependency with its latest result and how long the probe
// invocation that produced it took.
type Tweet struct {
	Dependency      Dependency `json:"dependency" yaml:"dependency"`
	Result          Result     `json:"result" yaml:"result"`
	ExecutionTimeMs int64      `json:"executionTimeMs" yaml:"executionTimeMs"`
}

// ExecutionTime returns ExecutionTimeMs as a duration.
func (t Tweet) ExecutionTime() time.Duration {
	return time.Duration(t.ExecutionTimeMs) * time.Millisecond
}

// Summarize returns the most severe status among tweets, or StatusHealthy
// when there are none.
func Summarize(tweets []Tweet) Status {
	worst := StatusHealthy
	for _, t := range tweets {
		if t.Result.Status > worst {
			worst = t.Result.Status
		}
	}
	return worst
}
