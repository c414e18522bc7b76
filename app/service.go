package app

import (
	"context"
	"fmt"
	"time"

	"soilqc/domain/core"
	"soilqc/domain/series"
	"soilqc/internal/apperr"
	"soilqc/internal/engine"
	"soilqc/internal/obslog"
)

// Request bundles a single run's inputs, mirroring the teacher's
// AuditableHypothesisRequest idiom: the caller-facing identity (RunID) is
// carried alongside the payload rather than threaded separately.
type Request struct {
	RunID   core.RunID
	Series  *series.Series
	Options series.Options
}

// Result is a single run's output: the flagged series plus its audit
// trail, following the teacher's Request/Result/RunID/RuntimeMs shape.
type Result struct {
	RunID       core.RunID
	Series      *series.Series
	Diagnostics *RunDiagnostics
	RuntimeMs   int64
	Success     bool
}

// Service is the public facade over internal/engine: it adds run
// identity and structured logging around the pure detector pipeline, the
// same separation of concerns the teacher draws between its app services
// and its domain/ports layers.
type Service struct {
	log    *obslog.Logger
	engine *engine.Engine
}

// NewService wires a Service from a logger, creating its own Engine.
func NewService(log *obslog.Logger) *Service {
	return &Service{log: log, engine: engine.New(log)}
}

// Run clones req.Series, runs the detector pipeline to completion, and
// returns the flagged clone. The caller's series is never mutated in
// place (spec.md's `run` operation is described as returning a result,
// not mutating its argument) even though internal/engine itself mutates
// its given series for efficiency — Service is the boundary that makes
// the public operation value-semantics.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	if req.Series == nil {
		return nil, apperr.New("INVALID_REQUEST", "series is required")
	}

	runID := req.RunID
	if runID == "" {
		runID = core.NewRunID()
	}

	start := time.Now()
	s.log.Info("run %s: starting (%d records, variable=%s)", runID, req.Series.Len(), req.Series.Variable)

	out := req.Series.Clone()
	if err := s.engine.Run(ctx, out, req.Options); err != nil {
		s.log.Error("run %s: failed: %v", runID, err)
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	var diag *RunDiagnostics
	if req.Options.WithInternals {
		d := computeDiagnostics(out)
		diag = &d
		out.EnableInternals()
		out.Internals.Diagnostics = d
	}

	runtimeMs := time.Since(start).Milliseconds()
	s.log.Info("run %s: completed in %dms", runID, runtimeMs)

	return &Result{
		RunID:       runID,
		Series:      out,
		Diagnostics: diag,
		RuntimeMs:   runtimeMs,
		Success:     true,
	}, nil
}
