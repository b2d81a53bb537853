// Package samples loads the sample templates shown to the user, grouped by
// context (the tone or setting the sample is written in).
package samples

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultContext is used when a requested context does not exist.
const DefaultContext = "casual"

//go:embed library.yaml
var builtin []byte

// Entry is one sample template with singular and plural verb agreement.
type Entry struct {
	Singular string `yaml:"singular"`
	Plural   string `yaml:"plural"`
}

// Library is every sample, keyed by context name.
type Library struct {
	Contexts map[string][]Entry `yaml:"contexts"`
}

// Default returns the library compiled into the binary.
func Default() (*Library, error) {
	return parse(builtin)
}

// Load reads a library from a YAML file.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read samples yaml: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Library, error) {
	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("parse samples yaml: %w", err)
	}
	if len(lib.Contexts) == 0 {
		return nil, fmt.Errorf("samples yaml has no contexts")
	}
	normalized := make(map[string][]Entry, len(lib.Contexts))
	for name, entries := range lib.Contexts {
		key := strings.ToLower(strings.TrimSpace(name))
		for i, e := range entries {
			if strings.TrimSpace(e.Singular) == "" {
				return nil, fmt.Errorf("context %q entry %d has no singular text", name, i)
			}
		}
		normalized[key] = append(normalized[key], entries...)
	}
	lib.Contexts = normalized
	return &lib, nil
}

// ContextNames lists the contexts in alphabetical order.
func (l *Library) ContextNames() []string {
	names := make([]string, 0, len(l.Contexts))
	for name := range l.Contexts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether context names a context in the library.
func (l *Library) Has(context string) bool {
	_, ok := l.Contexts[strings.ToLower(strings.TrimSpace(context))]
	return ok
}

// Resolve maps a requested context to one that exists, falling back to
// DefaultContext and then to the first context by name.
func (l *Library) Resolve(context string) string {
	key := strings.ToLower(strings.TrimSpace(context))
	if _, ok := l.Contexts[key]; ok {
		return key
	}
	if _, ok := l.Contexts[DefaultContext]; ok {
		return DefaultContext
	}
	return l.ContextNames()[0]
}

// Pool returns the candidate templates for a context. Plural picks the
// plural variant where one is given.
func (l *Library) Pool(context string, plural bool) []string {
	entries := l.Contexts[l.Resolve(context)]
	pool := make([]string, 0, len(entries))
	for _, e := range entries {
		if plural && e.Plural != "" {
			pool = append(pool, e.Plural)
		} else {
			pool = append(pool, e.Singular)
		}
	}
	return pool
}

// All returns every distinct template across contexts and variants.
func (l *Library) All() []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range l.ContextNames() {
		for _, e := range l.Contexts[name] {
			for _, t := range []string{e.Singular, e.Plural} {
				if t != "" && !seen[t] {
					seen[t] = true
					out = append(out, t)
				}
			}
		}
	}
	return out
}
