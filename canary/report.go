package canary

import (
	"strings"

	"github.com/jonwraymond/canary/health"
)

// UnknownService is the service name used when none is configured.
const UnknownService = "unknown-service"

// Outcome says whether a report could be produced. It is independent of the
// health of the dependencies.
type Outcome string

const (
	// OutcomeOK means the tweets were collected.
	OutcomeOK Outcome = "OK"
	// OutcomeError means producing the report failed.
	OutcomeError Outcome = "ERROR"
	// OutcomeForbidden means the caller failed the shared-secret check.
	OutcomeForbidden Outcome = "FORBIDDEN"
)

// Report is the health of one service's dependencies.
type Report struct {
	ServiceName string         `json:"serviceName" yaml:"serviceName"`
	Result      Outcome        `json:"result" yaml:"result"`
	Tweets      []health.Tweet `json:"tweets" yaml:"tweets"`
}

func newReport(service string, outcome Outcome, tweets []health.Tweet) Report {
	if strings.TrimSpace(service) == "" {
		service = UnknownService
	}
	if tweets == nil {
		tweets = []health.Tweet{}
	}
	return Report{ServiceName: service, Result: outcome, Tweets: tweets}
}

// OK creates a successful report.
func OK(service string, tweets []health.Tweet) Report {
	return newReport(service, OutcomeOK, tweets)
}

// Error creates a report for a failed collection. It carries no tweets.
func Error(service string) Report {
	return newReport(service, OutcomeError, nil)
}

// Forbidden creates a report for a rejected caller. It carries no tweets.
func Forbidden(service string) Report {
	return newReport(service, OutcomeForbidden, nil)
}

// Overall returns the worst status among the report's tweets.
func (r Report) Overall() health.Status {
	return health.Summarize(r.Tweets)
}
