package nav

import (
	"sync/atomic"
	"time"

	"github.com/ShreyashPatil123/Panther-update-sub001/internal/model"
)

// Metrics tracks navigator runtime counters. All methods are safe on a
// nil receiver so callers can leave metrics unwired.
type Metrics struct {
	RunsStarted atomic.Int64
	RunsActive  atomic.Int64

	RunsSucceeded atomic.Int64
	RunsPartial   atomic.Int64
	RunsFailed    atomic.Int64

	FocusAttempts  atomic.Int64
	FocusFailures  atomic.Int64
	CharsTyped     atomic.Int64
	CharsSkipped   atomic.Int64
	ConfirmMisses  atomic.Int64
	RunLatencySum  atomic.Int64 // nanoseconds sum for averaging
	RunLatencyDone atomic.Int64
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordRunStarted marks a run entering the pipeline.
func (m *Metrics) RecordRunStarted() {
	if m == nil {
		return
	}
	m.RunsStarted.Add(1)
	m.RunsActive.Add(1)
}

// RecordRunFinished records the terminal status and total latency of a run.
func (m *Metrics) RecordRunFinished(status model.NavStatus, latency time.Duration) {
	if m == nil {
		return
	}
	m.RunsActive.Add(-1)
	m.RunLatencySum.Add(latency.Nanoseconds())
	m.RunLatencyDone.Add(1)
	switch status {
	case model.StatusSuccess:
		m.RunsSucceeded.Add(1)
	case model.StatusPartial:
		m.RunsPartial.Add(1)
	default:
		m.RunsFailed.Add(1)
	}
}

// RecordFocus counts one chain pass: every attempt, plus a failure when
// no strategy acquired focus.
func (m *Metrics) RecordFocus(res FocusResult) {
	if m == nil {
		return
	}
	m.FocusAttempts.Add(int64(len(res.Attempts)))
	if !res.Acquired {
		m.FocusFailures.Add(1)
	}
}

// RecordInjection counts typed and skipped characters for one run.
func (m *Metrics) RecordInjection(typed, skipped int) {
	if m == nil {
		return
	}
	m.CharsTyped.Add(int64(typed))
	m.CharsSkipped.Add(int64(skipped))
}

// RecordConfirmMiss counts a confirmation that hit its deadline.
func (m *Metrics) RecordConfirmMiss() {
	if m == nil {
		return
	}
	m.ConfirmMisses.Add(1)
}

// Snapshot returns a point-in-time copy of all counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	done := m.RunLatencyDone.Load()
	avg := int64(0)
	if done > 0 {
		avg = time.Duration(m.RunLatencySum.Load() / done).Milliseconds()
	}
	succeeded := m.RunsSucceeded.Load()
	finished := succeeded + m.RunsPartial.Load() + m.RunsFailed.Load()
	rate := 1.0
	if finished > 0 {
		rate = float64(succeeded) / float64(finished)
	}
	return MetricsSnapshot{
		RunsStarted:     m.RunsStarted.Load(),
		RunsActive:      m.RunsActive.Load(),
		RunsSucceeded:   succeeded,
		RunsPartial:     m.RunsPartial.Load(),
		RunsFailed:      m.RunsFailed.Load(),
		SuccessRate:     rate,
		FocusAttempts:   m.FocusAttempts.Load(),
		FocusFailures:   m.FocusFailures.Load(),
		CharsTyped:      m.CharsTyped.Load(),
		CharsSkipped:    m.CharsSkipped.Load(),
		ConfirmMisses:   m.ConfirmMisses.Load(),
		AvgRunLatencyMs: avg,
	}
}

// MetricsSnapshot is a point-in-time copy of navigator counters.
type MetricsSnapshot struct {
	RunsStarted     int64   `yaml:"runs_started" json:"runs_started"`
	RunsActive      int64   `yaml:"runs_active" json:"runs_active"`
	RunsSucceeded   int64   `yaml:"runs_succeeded" json:"runs_succeeded"`
	RunsPartial     int64   `yaml:"runs_partial" json:"runs_partial"`
	RunsFailed      int64   `yaml:"runs_failed" json:"runs_failed"`
	SuccessRate     float64 `yaml:"success_rate" json:"success_rate"`
	FocusAttempts   int64   `yaml:"focus_attempts" json:"focus_attempts"`
	FocusFailures   int64   `yaml:"focus_failures" json:"focus_failures"`
	CharsTyped      int64   `yaml:"chars_typed" json:"chars_typed"`
	CharsSkipped    int64   `yaml:"chars_skipped" json:"chars_skipped"`
	ConfirmMisses   int64   `yaml:"confirm_misses" json:"confirm_misses"`
	AvgRunLatencyMs int64   `yaml:"avg_run_latency_ms" json:"avg_run_latency_ms"`
}
