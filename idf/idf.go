// Package idf accumulates document frequencies over a token corpus and
// serves smoothed inverse document frequency values, optionally folding
// inflected forms together with Snowball stemming.
package idf

import (
	"math"
	"strings"

	"github.com/kljensen/snowball"
)

// Option configures a Table.
type Option func(*Table)

// WithStemming enables Snowball stemming of tokens before counting, so that
// "runs" and "running" share a document frequency (default: disabled).
func WithStemming(enabled bool) Option {
	return func(t *Table) {
		t.stemming = enabled
	}
}

// WithAlpha sets the add-alpha smoothing applied to document frequencies,
// which also gives out-of-vocabulary tokens a finite value (default: 1).
func WithAlpha(alpha float64) Option {
	return func(t *Table) {
		if alpha > 0 {
			t.alpha = alpha
		}
	}
}

// Table accumulates document frequencies and serves IDF values. Not safe
// for concurrent use while documents are being added.
type Table struct {
	stemming bool
	alpha    float64

	numDocs  int
	docFreqs map[string]int
}

// New returns an empty Table.
func New(opts ...Option) *Table {
	t := &Table{
		alpha:    1,
		docFreqs: make(map[string]int),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// AddDoc counts one document's tokens. Each distinct token (or stem) counts
// once per document regardless of how often it repeats.
func (t *Table) AddDoc(tokens []string) {
	t.numDocs++

	seen := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		key := t.key(token)
		if !seen[key] {
			t.docFreqs[key]++
			seen[key] = true
		}
	}
}

// IDF returns log(numDocs / (docFreq + alpha)) for the token's key.
// Unseen tokens get log(numDocs / alpha). With no documents added the
// table returns 0 for everything.
func (t *Table) IDF(token string) float64 {
	if t.numDocs == 0 {
		return 0
	}
	freq := t.docFreqs[t.key(token)]
	return math.Log(float64(t.numDocs) / (float64(freq) + t.alpha))
}

// NumDocs returns the number of documents added so far.
func (t *Table) NumDocs() int {
	return t.numDocs
}

// Size returns the number of distinct token keys counted so far.
func (t *Table) Size() int {
	return len(t.docFreqs)
}

// key normalizes a token for counting: lowercased and, when stemming is
// enabled, reduced to its Snowball stem.
func (t *Table) key(token string) string {
	lower := strings.ToLower(token)
	if !t.stemming {
		return lower
	}
	stemmed, err := snowball.Stem(lower, "english", false)
	if err != nil {
		return lower
	}
	return stemmed
}
