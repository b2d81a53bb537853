package profile

import (
	"fmt"
	"strings"
)

// ParsePronouns splits a chain like "she/her/her" into its three parts.
func ParsePronouns(chain string) (subjective, objective, possessive string, err error) {
	parts := strings.Split(strings.TrimSpace(chain), "/")
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("pronouns must look like subjective/objective/possessive, got %q", chain)
	}
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
		if parts[i] == "" {
			return "", "", "", fmt.Errorf("empty pronoun in %q", chain)
		}
	}
	return parts[0], parts[1], parts[2], nil
}

// New builds a profile from a name and a pronoun chain.
func New(name, chain string) (Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Profile{}, fmt.Errorf("name is required")
	}
	subj, obj, poss, err := ParsePronouns(chain)
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		Name:       name,
		Subjective: subj,
		Objective:  obj,
		Possessive: poss,
	}, nil
}
