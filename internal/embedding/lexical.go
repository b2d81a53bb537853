package embedding

import (
	"hash/fnv"
	"strings"
	"unicode"
)

const lexicalDims = 512

// Lexical is an offline embedder that hashes word unigrams and bigrams into
// a fixed-size vector. It knows nothing about meaning beyond shared words,
// but needs no model server.
type Lexical struct{}

func NewLexical() *Lexical { return &Lexical{} }

func (l *Lexical) Dims() int    { return lexicalDims }
func (l *Lexical) Name() string { return "lexical-512" }

func (l *Lexical) Embed(texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	for i, t := range texts {
		vecs[i] = lexicalVector(t)
	}
	return vecs, nil
}

func lexicalVector(text string) []float32 {
	v := make([]float32, lexicalDims)
	words := tokenize(text)
	for i, w := range words {
		v[bucket(w)] += 1
		if i > 0 {
			v[bucket(words[i-1]+" "+w)] += 0.5
		}
	}
	return Normalize(v)
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\'' && r != ';'
	})
}

func bucket(s string) int {
	h := fnv.New32a()
	h.Write([]byte(s))
	return int(h.Sum32() % lexicalDims)
}
