// Package optimizer improves on the leveling heuristic with a bounded local
// search over task shifts.
//
// Starting from the shifts chosen by leveling.Level, each round visits every
// non-critical task in order and tries a handful of evenly spaced shifts
// between zero and its slack, keeping all other committed shifts fixed. A
// candidate is committed only when it lowers the best known peak labor load.
// The search stops after a round without improvement or after the configured
// number of rounds. It is a greedy search; the result is never worse than the
// heuristic but is not a global optimum.
package optimizer

import (
	"context"
	"math"

	"github.com/specialistvlad/cpmgrid/internal/cpm"
	"github.com/specialistvlad/cpmgrid/internal/ctxlog"
	"github.com/specialistvlad/cpmgrid/internal/leveling"
	"golang.org/x/sync/errgroup"
)

const (
	minSteps = 2
	maxSteps = 5
	// tolerance is the smallest peak reduction that counts as improvement.
	tolerance = 1e-6
)

// Result is an optimized leveling result.
type Result struct {
	leveling.Result `yaml:",inline"`
	// Iterations is the number of search rounds executed.
	Iterations int `json:"iterations" yaml:"iterations"`
	// Peak is the peak daily labor load of the optimized profile.
	Peak float64 `json:"peak_load" yaml:"peak_load"`
	// BaselinePeak is the peak of the leveling heuristic.
	BaselinePeak float64 `json:"baseline_peak_load" yaml:"baseline_peak_load"`
}

// search holds the state of one Optimize call.
type search struct {
	opts        *options
	base        []leveling.Task
	adjustments map[string]float64
	bestPeak    float64
}

// Optimize searches for task shifts that lower the peak labor load of res.
// It returns an error only when ctx is cancelled.
func Optimize(ctx context.Context, res *cpm.Result, opts ...Option) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	o := newOptions(opts)

	baseline := leveling.Level(ctx, res, leveling.WithLaborGroups(o.laborGroups...))
	s := &search{
		opts:        o,
		base:        leveling.Prepare(res, o.laborGroups),
		adjustments: baseline.Shifts(),
		bestPeak:    baseline.PeakLoad(),
	}

	var movable []leveling.Task
	for _, t := range s.base {
		if !t.Critical && t.Slack > 0 {
			movable = append(movable, t)
		}
	}

	iterations := 0
	for iterations < o.maxIterations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		iterations++

		improved := false
		for _, t := range movable {
			ok, err := s.improve(ctx, t)
			if err != nil {
				return nil, err
			}
			improved = improved || ok
		}

		logger.Debug("Optimizer round finished.", "iteration", iterations, "improved", improved, "peak_load", s.bestPeak)
		if !improved {
			break
		}
	}

	tasks := leveling.Apply(s.base, s.adjustments)
	result := &Result{
		Result: leveling.Result{
			Tasks:    tasks,
			Profile:  leveling.BuildProfile(tasks),
			Warnings: leveling.ProfileWarnings(tasks),
		},
		Iterations:   iterations,
		BaselinePeak: baseline.PeakLoad(),
	}
	result.Peak = result.Profile.Peak()

	logger.Debug("Optimization finished.", "iterations", iterations, "baseline_peak", result.BaselinePeak, "peak_load", result.Peak)
	return result, nil
}

// Candidates returns the shifts tried for a task with the given slack:
// between two and five evenly spaced values from 0 to slack inclusive.
func Candidates(slack float64) []float64 {
	steps := int(math.Min(math.Max(math.Floor(slack)+1, minSteps), maxSteps))

	out := make([]float64, steps)
	for i := range out {
		out[i] = slack * float64(i) / float64(steps-1)
	}
	return out
}

// improve tries every candidate shift of t and commits the best one if it
// lowers the peak. It reports whether a shift was committed.
func (s *search) improve(ctx context.Context, t leveling.Task) (bool, error) {
	candidates := Candidates(t.Slack)
	peaks, err := s.evaluate(ctx, t, candidates)
	if err != nil {
		return false, err
	}

	found := false
	bestShift := s.adjustments[t.TaskID]
	for i, peak := range peaks {
		if peak < s.bestPeak-tolerance {
			s.bestPeak = peak
			bestShift = candidates[i]
			found = true
		}
	}
	if found {
		s.adjustments[t.TaskID] = bestShift
		ctxlog.FromContext(ctx).Debug("Committed shift.", "task_id", t.TaskID, "shift", bestShift, "peak_load", s.bestPeak)
	}
	return found, nil
}

// evaluate returns the peak load for each candidate shift of one task, all
// other shifts held at their committed values.
func (s *search) evaluate(ctx context.Context, t leveling.Task, candidates []float64) ([]float64, error) {
	peaks := make([]float64, len(candidates))

	if !s.opts.parallel {
		for i, c := range candidates {
			peaks[i] = s.peakWith(t, c)
		}
		return peaks, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			peaks[i] = s.peakWith(t, c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return peaks, nil
}

// peakWith rebuilds the schedule with t shifted by shift and returns its peak
// load. A shift that pushes t's labor out of the profile scores +Inf. It only
// reads shared state.
func (s *search) peakWith(t leveling.Task, shift float64) float64 {
	moved := t
	moved.NewEarlyStart += shift
	moved.NewEarlyFinish += shift
	if leveling.Profiled(t) && !leveling.Profiled(moved) {
		return math.Inf(1)
	}

	adjusted := make(map[string]float64, len(s.adjustments)+1)
	for id, v := range s.adjustments {
		adjusted[id] = v
	}
	adjusted[t.TaskID] = shift
	return leveling.BuildProfile(leveling.Apply(s.base, adjusted)).Peak()
}
