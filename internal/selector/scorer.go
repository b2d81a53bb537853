package selector

import (
	"fmt"
	"math"
	"strings"
)

// MaxReferenceDraws caps how many references are compared per category.
const MaxReferenceDraws = 20

// Oracle measures how far apart two snippets are in meaning. 0 means
// identical; larger is more dissimilar. Results must be deterministic for
// identical inputs within one process.
type Oracle interface {
	Distance(a, b string) (float64, error)
}

// Scorer computes the neutrality of a candidate relative to the rejected and
// accepted histories.
type Scorer struct {
	oracle Oracle
	random RandomSource

	// LegacyCategorySampling draws the accepted category's references from
	// the rejected history, while still using the accepted history's size for
	// the draw count and the divisor. This matches the behaviour of the first
	// release of the app and exists only for parity checks.
	LegacyCategorySampling bool
}

func NewScorer(oracle Oracle, random RandomSource) *Scorer {
	return &Scorer{oracle: oracle, random: random}
}

// Score returns |avg(rejected) - avg(accepted)|, where each average is the
// sum of length-adjusted distances over at most MaxReferenceDraws random
// references divided by the full size of that category. Both histories must
// be non-empty.
func (s *Scorer) Score(candidate string, accepted, rejected []string) (float64, error) {
	rejectedAvg, err := s.categoryDistance(candidate, rejected, len(rejected))
	if err != nil {
		return 0, err
	}

	acceptedFrom := accepted
	if s.LegacyCategorySampling {
		acceptedFrom = rejected
	}
	acceptedAvg, err := s.categoryDistance(candidate, acceptedFrom, len(accepted))
	if err != nil {
		return 0, err
	}

	return math.Abs(rejectedAvg - acceptedAvg), nil
}

// categoryDistance draws min(size, MaxReferenceDraws) references from refs and
// averages their adjusted distance to candidate over size.
func (s *Scorer) categoryDistance(candidate string, refs []string, size int) (float64, error) {
	if size == 0 || len(refs) == 0 {
		return 0, nil
	}
	var sum float64
	for _, i := range s.draw(len(refs), min(size, MaxReferenceDraws)) {
		ref := refs[i]
		d, err := s.oracle.Distance(ref, candidate)
		if err != nil {
			return 0, &OracleError{Reference: ref, Candidate: candidate, Err: err}
		}
		if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return 0, &OracleError{Reference: ref, Candidate: candidate, Err: ErrInvalidDistance}
		}
		sum += d / float64(wordCount(ref))
		if math.IsInf(sum, 0) {
			return 0, &OracleError{Reference: ref, Candidate: candidate, Err: fmt.Errorf("%w: sum overflows", ErrInvalidDistance)}
		}
	}
	return sum / float64(size), nil
}

// draw returns k indices into a slice of length n, without replacement while
// k <= n. Only legacy sampling can ask for more than n; the overflow is drawn
// with replacement.
func (s *Scorer) draw(n, k int) []int {
	if k <= n {
		return s.random.Sample(n, k)
	}
	idx := s.random.Sample(n, n)
	for len(idx) < k {
		idx = append(idx, s.random.Pick(n))
	}
	return idx
}

// wordCount approximates a reference's length in words by its interior
// whitespace separators, floored at 1. Longer references therefore
// contribute smaller increments.
func wordCount(s string) int {
	return max(len(strings.Fields(s))-1, 1)
}
