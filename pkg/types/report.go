package types

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// OutcomeStatus is the result of processing one row or resource
type OutcomeStatus string

const (
	OutcomeApplied OutcomeStatus = "applied"
	OutcomeFailed  OutcomeStatus = "failed"
	OutcomeSkipped OutcomeStatus = "skipped"
)

// Outcome describes what a run did with one row or resource
type Outcome struct {
	Row      int           `json:"row,omitempty" yaml:"row,omitempty"`
	Entity   string        `json:"entity" yaml:"entity"`
	EntityID string        `json:"entity_id,omitempty" yaml:"entity_id,omitempty"`
	Action   string        `json:"action" yaml:"action"`
	Status   OutcomeStatus `json:"status" yaml:"status"`
	Message  string        `json:"message,omitempty" yaml:"message,omitempty"`
	URL      string        `json:"url,omitempty" yaml:"url,omitempty"`
}

// Report summarizes a sync or delete run
type Report struct {
	RunID      string    `json:"run_id" yaml:"run_id"`
	Operation  string    `json:"operation" yaml:"operation"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
	Outcomes   []Outcome `json:"outcomes" yaml:"outcomes"`
}

// ReportCounts tallies outcomes by status
type ReportCounts struct {
	Applied int `json:"applied" yaml:"applied"`
	Failed  int `json:"failed" yaml:"failed"`
	Skipped int `json:"skipped" yaml:"skipped"`
}

// NewReport starts a report for the named operation
func NewReport(operation string) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Operation: operation,
		StartedAt: time.Now(),
		Outcomes:  []Outcome{},
	}
}

// Add appends an outcome
func (r *Report) Add(outcome Outcome) {
	r.Outcomes = append(r.Outcomes, outcome)
}

// Finish stamps the completion time
func (r *Report) Finish() *Report {
	r.FinishedAt = time.Now()
	return r
}

// Counts tallies the outcomes
func (r *Report) Counts() ReportCounts {
	var counts ReportCounts
	for _, outcome := range r.Outcomes {
		switch outcome.Status {
		case OutcomeApplied:
			counts.Applied++
		case OutcomeFailed:
			counts.Failed++
		case OutcomeSkipped:
			counts.Skipped++
		}
	}
	return counts
}

// Warnings returns the messages of skipped outcomes
func (r *Report) Warnings() []string {
	var warnings []string
	for _, outcome := range r.Outcomes {
		if outcome.Status == OutcomeSkipped {
			warnings = append(warnings, outcome.Message)
		}
	}
	return warnings
}

// Err combines every failed outcome into one error, or nil
func (r *Report) Err() error {
	var err error
	for _, outcome := range r.Outcomes {
		if outcome.Status != OutcomeFailed {
			continue
		}
		err = multierr.Append(err, fmt.Errorf("%s %s: %w", outcome.Action, outcome.Entity, errors.New(outcome.Message)))
	}
	return err
}
