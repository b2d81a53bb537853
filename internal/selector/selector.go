// Package selector picks the next sample to show for a profile.
//
// With enough history it looks for the most neutral unseen sample: one whose
// average distance to the accepted samples is close to its average distance
// to the rejected ones. Such samples say the most about how the user feels,
// since they are neither obviously likeable nor obviously not. Scoring a
// candidate costs up to 40 oracle calls, so the scan stops early once the
// best candidate is unlikely to be beaten.
package selector

import (
	"math"

	"github.com/ehrlich-b/nameswipe/internal/logger"
	"github.com/ehrlich-b/nameswipe/internal/profile"
)

// MinHistory is how many accepted and how many rejected samples a profile
// needs before neutrality is trusted over a random pick.
const MinHistory = 5

// Selector is the entry point used by the rest of the app.
type Selector struct {
	scorer *Scorer
	search *Search
	random RandomSource
}

// Option configures a Selector.
type Option func(*Selector)

// WithLegacyCategorySampling reproduces the first release's category sampling.
// See Scorer.LegacyCategorySampling.
func WithLegacyCategorySampling() Option {
	return func(s *Selector) {
		s.scorer.LegacyCategorySampling = true
	}
}

func New(oracle Oracle, random RandomSource, opts ...Option) *Selector {
	scorer := NewScorer(oracle, random)
	s := &Selector{
		scorer: scorer,
		search: NewSearch(scorer, random),
		random: random,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next returns the sample to present next. It never modifies p.
func (s *Selector) Next(p profile.Profile, pool []string) (string, error) {
	res, err := s.Select(p, pool)
	if err != nil {
		return "", err
	}
	return res.Sample, nil
}

// Select is Next with the search details attached.
func (s *Selector) Select(p profile.Profile, pool []string) (Result, error) {
	if len(p.Accepted) < MinHistory || len(p.Rejected) < MinHistory {
		sample, err := pickFrom(s.random, pool)
		if err != nil {
			return Result{}, err
		}
		logger.Debug("selector: random pick, not enough history",
			"accepted", len(p.Accepted), "rejected", len(p.Rejected))
		return Result{Sample: sample, Outcome: OutcomeLowData, Neutrality: math.Inf(1)}, nil
	}

	res, err := s.search.Run(p.Accepted, p.Rejected, pool)
	if err != nil {
		return Result{}, err
	}
	logger.Debug("selector: neutral search done",
		"outcome", res.Outcome, "scored", res.Scored, "pool", len(pool), "neutrality", res.Neutrality)
	return res, nil
}
