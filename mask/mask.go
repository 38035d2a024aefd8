// Package mask shields structured substrings (email addresses, URLs) from
// downstream tokenization by replacing them with placeholder words, and
// restores the originals afterwards.
package mask

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// placeholderPrefix starts every placeholder word. The full placeholder is
// prefix + pattern name + zero-padded 5-digit index, which survives the
// tokenizer cascade as a single alphanumeric word.
const placeholderPrefix = "InternalToken"

// indexDigits is the width of the zero-padded index suffix.
const indexDigits = 5

// pattern pairs a name with the expression that recognizes it. Patterns are
// applied in declaration order; earlier patterns win overlapping text.
type pattern struct {
	name string
	re   *regexp.Regexp
}

// Email addresses: word characters and permitted symbols around an @ sign
// with at least one interior period. Tuned for recall; the top-level domain
// is not validated.
var emailRe = regexp.MustCompile(`[\pL\pN_.\-]+@[\pL\pN_.\-]+\.[\pL\pN_.\-]+`)

// placeholderRe recognizes placeholder words, possibly embedded in
// surrounding punctuation that the tokenizer has not yet separated.
var placeholderRe = regexp.MustCompile(placeholderPrefix + `[A-Za-z]+[0-9]{5}`)

// URLs: a host-like run with at least one interior period followed by a
// known top-level domain, optionally continuing with path characters.
// Tuned for recall so that bare hosts like "google.com" are caught even
// without a protocol or "www" prefix.
var urlRe = regexp.MustCompile(
	`(?:https?://)?[\pL\pN_\-]+(?:\.[\pL\pN_\-]+)*\.` +
		`(?:com|org|net|edu|gov|mil|int|info|biz|name|pro|aero|coop|museum|` +
		`jobs|mobi|travel|asia|cat|tel|io|co|us|uk|ca|de|fr|jp|cn|ru|in|au|` +
		`br|ch|es|it|nl|se|no|fi|dk|pl|kr|mx|za|ar|at|be|cz|gr|hu|ie|il|nz|` +
		`pt|ro|sg|tr|tw|ua)` +
		`(?:/[\pL\pN_/#~:.?+=&%@!\-;$]*)?`)

// Masker replaces pattern matches with placeholders and records the original
// substrings so they can be restored. The recorded table is transient: it is
// reset at the start of every Mask call, so a Masker must not be shared
// between texts whose placeholders are still outstanding.
type Masker struct {
	patterns []pattern
	stored   []string
}

// New returns a Masker with the email and URL patterns registered, in that
// priority order.
func New() *Masker {
	return &Masker{
		patterns: []pattern{
			{name: "Email", re: emailRe},
			{name: "URL", re: urlRe},
		},
	}
}

// Mask replaces every match of every registered pattern with a placeholder
// word and stores the original substring under the placeholder's index.
// Text without matches is returned unchanged.
func (m *Masker) Mask(text string) string {
	m.stored = m.stored[:0]

	for _, p := range m.patterns {
		text = p.re.ReplaceAllStringFunc(text, func(match string) string {
			idx := len(m.stored)
			m.stored = append(m.stored, match)
			return fmt.Sprintf("%s%s%0*d", placeholderPrefix, p.name, indexDigits, idx)
		})
	}
	return text
}

// Unmask substitutes every placeholder-shaped word with its stored original
// using the index embedded in the placeholder. The stored table is left
// intact so Unmask may be called more than once.
func (m *Masker) Unmask(text string) string {
	if !strings.Contains(text, placeholderPrefix) {
		return text
	}

	return placeholderRe.ReplaceAllStringFunc(text, func(word string) string {
		if orig, ok := m.lookup(word); ok {
			return orig
		}
		return word
	})
}

// UnmaskTokens restores placeholders in a token sequence in place and
// returns it. Non-placeholder tokens are untouched.
func (m *Masker) UnmaskTokens(tokens []string) []string {
	for i, tok := range tokens {
		if strings.Contains(tok, placeholderPrefix) {
			tokens[i] = m.Unmask(tok)
		}
	}
	return tokens
}

// lookup resolves a single placeholder word to its stored original.
func (m *Masker) lookup(word string) (string, bool) {
	idx, err := strconv.Atoi(word[len(word)-indexDigits:])
	if err != nil || idx < 0 || idx >= len(m.stored) {
		return "", false
	}
	return m.stored[idx], true
}
