// Package canary wraps collected health tweets in a service-level report.
//
// A Report names the service, says whether the report could be produced
// (OK, ERROR or FORBIDDEN) and, when OK, carries every tweet in
// registration order. Access can be restricted with a shared secret checked
// by a Gate. The package serves no endpoint; callers decide how reports are
// delivered.
package canary
