// Package pronoun fills sample templates with a profile's name and pronouns.
//
// Templates mark substitutions with codes: ;name, ;he (subjective), ;him
// (objective) and ;his (possessive).
package pronoun

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ehrlich-b/nameswipe/internal/profile"
)

// Render substitutes the profile into sample and capitalizes the first
// letter. Codes are replaced one after another in this order, so a value
// containing a later code is itself substituted.
func Render(sample string, p profile.Profile) string {
	out := sample
	for _, r := range []struct{ code, value string }{
		{";him", p.Objective},
		{";he", p.Subjective},
		{";his", p.Possessive},
		{";name", p.Name},
	} {
		out = strings.ReplaceAll(out, r.code, r.value)
	}
	return capitalizeFirst(out)
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
