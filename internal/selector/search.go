package selector

import "math"

// StopZ is the one-sided z bound for early stopping. At or below it there is
// under ~5% chance, assuming normally distributed neutrality, that an
// unexamined candidate beats the current best.
const StopZ = -1.64

// Outcome says how a selection ended.
type Outcome int

const (
	// OutcomeEarlyStop means the best candidate passed the z bound mid-scan.
	OutcomeEarlyStop Outcome = iota
	// OutcomeExhausted means the whole pool was scanned.
	OutcomeExhausted
	// OutcomeNoCandidates means every pool entry was already judged, so a
	// random pool entry was returned.
	OutcomeNoCandidates
	// OutcomeLowData means history was too short and a random pool entry
	// was returned without scoring.
	OutcomeLowData
)

func (o Outcome) String() string {
	switch o {
	case OutcomeEarlyStop:
		return "early_stop"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeNoCandidates:
		return "no_candidates"
	case OutcomeLowData:
		return "low_data"
	default:
		return "unknown"
	}
}

// Result is the pick plus what the search saw on the way.
type Result struct {
	Sample     string
	Outcome    Outcome
	Scored     int     // candidates scored
	Neutrality float64 // neutrality of Sample; +Inf when nothing was scored
}

// Search scans a pool for the most neutral unseen candidate, stopping as
// soon as the best so far is statistically unlikely to be beaten.
type Search struct {
	scorer *Scorer
	random RandomSource
}

func NewSearch(scorer *Scorer, random RandomSource) *Search {
	return &Search{scorer: scorer, random: random}
}

// Run returns the chosen candidate. accepted and rejected must be non-empty
// and are only read.
func (s *Search) Run(accepted, rejected, pool []string) (Result, error) {
	if len(pool) == 0 {
		return Result{}, ErrEmptyPool
	}

	seen := make(map[string]struct{}, len(accepted)+len(rejected))
	for _, a := range accepted {
		seen[a] = struct{}{}
	}
	for _, r := range rejected {
		seen[r] = struct{}{}
	}

	examined := 1
	var sum, sumSq float64
	best := Result{Neutrality: math.Inf(1)}
	found := false

	for _, candidate := range pool {
		if _, ok := seen[candidate]; ok {
			continue
		}

		neutrality, err := s.scorer.Score(candidate, accepted, rejected)
		if err != nil {
			return Result{}, err
		}
		best.Scored = examined
		sum += neutrality
		sumSq += neutrality * neutrality

		n := float64(examined)
		mean := sum / n
		// E[X^2] - mean^2; rounding can push it slightly below zero.
		variance := math.Max(sumSq/n-mean*mean, 0)
		stdDev := math.Sqrt(variance)

		// The first unseen candidate is the fallback even if its score
		// never compares below +Inf.
		if !found || neutrality < best.Neutrality {
			found = true
			best.Sample = candidate
			best.Neutrality = neutrality
		}

		// Zero spread carries no evidence either way; keep scanning.
		if stdDev > 0 {
			z := (best.Neutrality - mean) / (stdDev / math.Sqrt(n))
			if z <= StopZ {
				best.Outcome = OutcomeEarlyStop
				return best, nil
			}
		}
		examined++
	}

	if best.Scored == 0 {
		sample, err := pickFrom(s.random, pool)
		if err != nil {
			return Result{}, err
		}
		return Result{Sample: sample, Outcome: OutcomeNoCandidates, Neutrality: math.Inf(1)}, nil
	}

	best.Outcome = OutcomeExhausted
	return best, nil
}
