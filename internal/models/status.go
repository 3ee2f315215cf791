package models

import "time"

// Status is the overall health value carried by a snapshot.
type Status string

const (
	StatusActive   Status = "active"
	StatusNoEvents Status = "no_events"
	StatusError    Status = "error"
)

// ErrorEntry is one aggregated processing error with the instant it was
// first observed.
type ErrorEntry struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"ts"`
}

// StatusSnapshot is the single composed record summarizing one processing
// cycle. It is built fresh every cycle and never mutated afterwards.
type StatusSnapshot struct {
	Status          Status       `json:"status"`
	EventCount      int          `json:"event_count"`
	ErrorCount      int          `json:"error_count"`
	Errors          []ErrorEntry `json:"errors,omitempty"`
	Stats           FetchStats   `json:"metrics"`
	AIEnabled       bool         `json:"ai_enabled"`
	RunID           string       `json:"run_id"`
	Trigger         string       `json:"last_run_trigger"`
	IntervalSeconds int          `json:"interval_seconds"`
	Timestamp       time.Time    `json:"last_run_iso"`
}
