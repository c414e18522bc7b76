// Package engine orchestrates the QC detectors over a domain/series.Series
// in the fixed dependency order spec.md §4.11 requires: C01-D03 may run
// concurrently (they are commutative and read-only on value/ancillaries),
// then D04 through G run strictly in sequence. It is fronted by
// app.Service, which adds logging and run identity.
package engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"soilqc/adapters/detectors"
	"soilqc/domain/core"
	"soilqc/domain/series"
	"soilqc/domain/thresholds"
	"soilqc/internal/apperr"
	"soilqc/internal/obslog"
	"soilqc/internal/savgol"
)

// Engine runs the detector pipeline.
type Engine struct {
	log *obslog.Logger
}

// New creates an Engine that logs to the given logger.
func New(log *obslog.Logger) *Engine {
	return &Engine{log: log}
}

// Run mutates s.QFlag in place per spec.md §4.11 and returns an error
// only when the primary variable has no thresholds row. opts.Names
// restricts which detectors run. The engine stores series.Flag bit values
// and does not read FlagNumbers.
func (e *Engine) Run(ctx context.Context, s *series.Series, opts series.Options) error {
	bounds, ok := thresholds.Lookup(s.Variable)
	if !ok {
		return apperr.Wrap("UNSUPPORTED_VARIABLE", core.ErrFormat,
			fmt.Sprintf("primary variable %q is not in the thresholds table", s.Variable))
	}

	if s.Variable != series.VarSoilMoisture {
		e.log.Debug("primary variable %q is not soil_moisture: restricting to C01/C02", s.Variable)
		if opts.Wants(series.C01) || opts.Wants(series.C02) {
			detectors.ThresholdC01C02(s, bounds)
		}
		return nil
	}

	if opts.WithInternals {
		s.EnableInternals()
	}

	var deriv1, deriv2 []float64
	needsDerivatives := opts.Wants(series.D06) || opts.Wants(series.D07) ||
		opts.Wants(series.D08) || opts.Wants(series.D10)
	if needsDerivatives {
		deriv1, deriv2 = savgol.Derivatives(s.Values)
		if s.Internals != nil {
			s.Internals.Deriv1 = deriv1
			s.Internals.Deriv2 = deriv2
		}
	}

	if err := e.runThresholdStage(ctx, s, opts, bounds); err != nil {
		return err
	}

	if opts.Wants(series.D04) {
		e.log.Debug("running D04")
		detectors.D04(s, opts.DepthFrom)
	}
	if opts.Wants(series.D05) {
		e.log.Debug("running D05")
		detectors.D05(s, opts.DepthFrom)
	}
	if opts.Wants(series.D06) {
		e.log.Debug("running D06")
		detectors.D06(s, deriv2)
	}
	if opts.Wants(series.D07) || opts.Wants(series.D08) {
		e.log.Debug("running D07/D08")
		detectors.BreakFlags(s, deriv1, deriv2)
	}
	if opts.Wants(series.D09) {
		e.log.Debug("running D09")
		detectors.LowPlateau(s)
	}
	if opts.Wants(series.D10) {
		e.log.Debug("running D10")
		detectors.SaturatedPlateau(s, deriv1)
	}
	if opts.Wants(series.G) {
		e.log.Debug("running G")
		detectors.Good(s)
	}

	if !opts.WithInternals {
		s.DropInternals()
	}
	return nil
}

// runThresholdStage fans C01/C02/C03/D01/D02/D03 out across goroutines.
// Each reads only s.Values/s.Ancillary, which never change during the
// stage, but every detector writes through AddFlag's read-modify-write on
// s.QFlag[i] — sharing that slice across goroutines would race even
// though the bits themselves are disjoint. Following the teacher's
// sense-engine fan-out, each goroutine instead flags into its own scratch
// view and the results are merged back onto s.QFlag sequentially once
// every goroutine has finished (spec.md §5).
func (e *Engine) runThresholdStage(ctx context.Context, s *series.Series, opts series.Options, bounds thresholds.Bounds) error {
	g, _ := errgroup.WithContext(ctx)

	var scratches []*series.Series
	spawn := func(run func(scratch *series.Series)) {
		scratch := s.ScratchView()
		scratches = append(scratches, scratch)
		g.Go(func() error {
			run(scratch)
			return nil
		})
	}

	if opts.Wants(series.C01) || opts.Wants(series.C02) {
		spawn(func(scratch *series.Series) { detectors.ThresholdC01C02(scratch, bounds) })
	}
	if opts.Wants(series.C03) {
		spawn(func(scratch *series.Series) { detectors.C03(scratch, opts.SaturationPoint) })
	}
	if opts.Wants(series.D01) {
		spawn(func(scratch *series.Series) { detectors.D01(scratch) })
	}
	if opts.Wants(series.D02) {
		spawn(func(scratch *series.Series) { detectors.D02(scratch) })
	}
	if opts.Wants(series.D03) {
		spawn(func(scratch *series.Series) { detectors.D03(scratch) })
	}

	if err := g.Wait(); err != nil {
		return err
	}
	for _, scratch := range scratches {
		s.MergeFlags(scratch)
	}
	return nil
}
