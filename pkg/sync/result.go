package sync

import (
	"time"

	"github.com/google/uuid"
)

// Outcome classifies how a phase (or a whole run) ended.
type Outcome string

const (
	// OutcomeOK means every selected record was written.
	OutcomeOK Outcome = "ok"
	// OutcomePartial means the phase completed but some batches failed.
	OutcomePartial Outcome = "partial"
	// OutcomeFailed means the phase could not read its inputs and wrote nothing.
	OutcomeFailed Outcome = "failed"
)

// PhaseResult reports what one sync phase did. Callers can assert on
// degraded-but-completed runs instead of scraping logs.
type PhaseResult struct {
	Entity        string
	Outcome       Outcome
	Selected      int // records change detection picked for upsert
	Skipped       int // unchanged records left untouched
	Upserted      int
	FailedBatches int
	Duration      time.Duration
	Errs          []error
}

func (r *PhaseResult) finish(start time.Time) PhaseResult {
	r.Duration = time.Since(start)
	if r.Outcome == "" {
		if r.FailedBatches > 0 || len(r.Errs) > 0 {
			r.Outcome = OutcomePartial
		} else {
			r.Outcome = OutcomeOK
		}
	}
	return *r
}

// RunReport aggregates the results of all phases of a single run.
type RunReport struct {
	RunID     uuid.UUID
	StartedAt time.Time
	Duration  time.Duration
	Phases    []PhaseResult
}

func (r *RunReport) add(res PhaseResult) {
	r.Phases = append(r.Phases, res)
}

// Outcome returns the worst outcome across all phases.
func (r *RunReport) Outcome() Outcome {
	out := OutcomeOK
	for _, p := range r.Phases {
		switch p.Outcome {
		case OutcomeFailed:
			return OutcomeFailed
		case OutcomePartial:
			out = OutcomePartial
		}
	}
	return out
}

// Phase returns the result for the named entity, if present.
func (r *RunReport) Phase(entity string) (PhaseResult, bool) {
	for _, p := range r.Phases {
		if p.Entity == entity {
			return p, true
		}
	}
	return PhaseResult{}, false
}
