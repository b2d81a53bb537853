package selector

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// stubOracle returns dist[candidate] for references starting with "liked"
// and rejectedDist for every other reference. Two-word references keep the
// word-count divisor at 1, so a candidate's neutrality is
// |rejectedDist - dist[candidate]| when both histories have equal size.
type stubOracle struct {
	dist         map[string]float64
	rejectedDist float64
	err          error
	calls        int
	queried      []string
}

func (o *stubOracle) Distance(ref, candidate string) (float64, error) {
	o.calls++
	o.queried = append(o.queried, candidate)
	if o.err != nil {
		return 0, o.err
	}
	if strings.HasPrefix(ref, "liked ") {
		return o.dist[candidate], nil
	}
	return o.rejectedDist, nil
}

func (o *stubOracle) queriedFor(candidate string) int {
	n := 0
	for _, q := range o.queried {
		if q == candidate {
			n++
		}
	}
	return n
}

// hashOracle is deterministic but irregular, for property checks.
type hashOracle struct{}

func (hashOracle) Distance(a, b string) (float64, error) {
	h := fnv.New32a()
	h.Write([]byte(a))
	h.Write([]byte{0})
	h.Write([]byte(b))
	return float64(h.Sum32()%1000) / 500, nil
}

func refs(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s %d", prefix, i)
	}
	return out
}

func liked(n int) []string    { return refs("liked", n) }
func disliked(n int) []string { return refs("disliked", n) }
