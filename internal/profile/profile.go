// Package profile holds a name and pronoun set together with the swipe
// history recorded against it.
package profile

import (
	"slices"
	"time"
)

// Profile is one name/pronoun configuration. Values are snapshots: methods
// that record history return a new Profile and leave the receiver untouched.
type Profile struct {
	ID             string
	Name           string
	Subjective     string // "he", "she", "they"
	Objective      string // "him", "her", "them"
	Possessive     string // "his", "her", "their"
	Favorite       bool
	PositiveSwipes int
	NegativeSwipes int
	Accepted       []string
	Rejected       []string
	CreatedAt      time.Time
}

// SwipeRatio is the share of positive swipes scaled to 0-100. A profile with
// no swipes reports 0.
func (p Profile) SwipeRatio() int {
	total := p.PositiveSwipes + p.NegativeSwipes
	if total == 0 {
		return 0
	}
	return int(100 * float64(p.PositiveSwipes) / float64(total))
}

// PronounChain formats the pronouns the usual way, e.g. "he/him/his".
func (p Profile) PronounChain() string {
	return p.Subjective + "/" + p.Objective + "/" + p.Possessive
}

// Plural reports whether samples should use plural verb agreement.
func (p Profile) Plural() bool {
	return p.Subjective == "they"
}

// Seen reports whether sample was already judged either way.
func (p Profile) Seen(sample string) bool {
	return slices.Contains(p.Accepted, sample) || slices.Contains(p.Rejected, sample)
}

// Judge returns a copy of p with sample appended to the accepted or rejected
// history and the matching swipe counter incremented.
func (p Profile) Judge(sample string, accepted bool) Profile {
	next := p
	next.Accepted = slices.Clone(p.Accepted)
	next.Rejected = slices.Clone(p.Rejected)
	if accepted {
		next.PositiveSwipes++
		next.Accepted = append(next.Accepted, sample)
	} else {
		next.NegativeSwipes++
		next.Rejected = append(next.Rejected, sample)
	}
	return next
}

// ToggleFavorite returns a copy of p with Favorite flipped.
func (p Profile) ToggleFavorite() Profile {
	next := p
	next.Favorite = !p.Favorite
	return next
}
