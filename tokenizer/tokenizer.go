// Package tokenizer splits sentence text into tokens using an ordered
// cascade of context-sensitive rules, and reassembles token sequences into
// display text.
//
// The cascade classifies ambiguous symbols (periods, hyphens, apostrophes)
// by their neighborhood rather than splitting on character class alone, so
// "32,000", "U.S." and "O'Connor" survive as single tokens while true
// punctuation is detached. Ambiguity is never fatal: every pass produces a
// best-effort result and logs a warning where it cannot decide.
package tokenizer

import (
	"html"
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/jamesainslie/go-sumprep/mask"
)

// HTML non-breaking spaces that survive entity decoding as words.
var nbspRe = regexp.MustCompile(`(?i)&nbsp;|&#160;|&#xA0;`)

// Runs of two or more periods are ellipses.
var ellipsisRe = regexp.MustCompile(`\.{2,}`)

// Bracket characters become individual tokens.
var parensRe = regexp.MustCompile(`([\[\](){}])`)

// All double-quote variants normalize to a single straight double quote.
var doubleQuoteRe = regexp.MustCompile("''|``|\"+|“|”|||„")

// Stray symbols with no tokenization value are stripped.
var unexpectedRe = regexp.MustCompile("[\\\\_~^*`|]")

// Apostrophe variants subject to the contraction/quote decision table.
const apostrophes = "'‘’"

// Contraction suffixes checked after an apostrophe, longest first so that
// "'re" is not shadowed by a shorter match.
var contractionSuffixes = []string{"re", "ve", "ll", "s", "t", "m", "d"}

// Option configures a Tokenizer.
type Option func(*config)

type config struct {
	logger   *slog.Logger
	warnings bool
}

func defaultConfig() config {
	return config{
		logger:   slog.Default(),
		warnings: true,
	}
}

// WithLogger sets the logger used for tokenization warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithWarnings enables or disables ambiguity warnings (default: enabled).
func WithWarnings(enabled bool) Option {
	return func(c *config) {
		c.warnings = enabled
	}
}

// Tokenizer applies the rule cascade. All per-input state (the masking table,
// the open-quote flag) is scoped to a single Tokenize call, so a Tokenizer is
// reusable across unrelated inputs without explicit resets.
type Tokenizer struct {
	masker   *mask.Masker
	logger   *slog.Logger
	warnings bool
}

// New returns a Tokenizer with a fresh masker for email/URL protection.
func New(opts ...Option) *Tokenizer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Tokenizer{
		masker:   mask.New(),
		logger:   cfg.logger,
		warnings: cfg.warnings,
	}
}

// Tokenize splits text into tokens. Emails and URLs are masked before the
// cascade runs so their internal punctuation is never split, then restored
// as single tokens afterwards.
func (t *Tokenizer) Tokenize(text string) []string {
	s := t.masker.Mask(text)

	// Strategy: surround everything that needs separating with spaces and
	// collapse the redundant whitespace at the end.
	s = nbspRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)

	s = attachInnerPeriods(s)
	s = detachTerminalPeriod(s)
	s = ellipsisRe.ReplaceAllString(s, " ... ")

	s = separateNonNumericPunct(s)
	s = collapseTerminalRuns(s)
	s = classifyHyphens(s)

	s = parensRe.ReplaceAllString(s, " $1 ")
	s = doubleQuoteRe.ReplaceAllString(s, ` " `)

	s = t.classifyApostrophes(s, text)

	s = unexpectedRe.ReplaceAllString(s, "")

	tokens := strings.Fields(s)
	return t.masker.UnmaskTokens(tokens)
}

// attachInnerPeriods removes whitespace before any period that is directly
// followed by a word character, so abbreviation and decimal periods stay
// attached to the text they belong to ("U . S." -> "U.S.").
func attachInnerPeriods(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if unicode.IsSpace(runes[i]) {
			// Look past the whitespace run for a period glued to a word char.
			j := i
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
			if j < len(runes) && runes[j] == '.' && j+1 < len(runes) && isWordRune(runes[j+1]) {
				i = j - 1 // drop the whitespace run
				continue
			}
			b.WriteRune(runes[i])
			continue
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}

// detachTerminalPeriod separates a sentence-final period as its own token,
// pulling any trailing quote marks in front of it. A final period preceded
// by another period is left for ellipsis normalization.
func detachTerminalPeriod(s string) string {
	end := len(s)
	for end > 0 && isSpaceByte(s[end-1]) {
		end--
	}
	quoteStart := end
	for quoteStart > 0 && (s[quoteStart-1] == '"' || s[quoteStart-1] == '\'') {
		quoteStart--
	}
	dotEnd := quoteStart
	for dotEnd > 0 && isSpaceByte(s[dotEnd-1]) {
		dotEnd--
	}
	if dotEnd == 0 || s[dotEnd-1] != '.' {
		return s
	}
	if dotEnd >= 2 && s[dotEnd-2] == '.' {
		return s
	}
	return s[:dotEnd-1] + s[quoteStart:end] + " ."
}

// separateNonNumericPunct detaches , : ; / unless both neighbors are digits,
// preserving numbers ("32,000"), times ("12:30") and dates ("10/11").
func separateNonNumericPunct(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 16)

	runes := []rune(s)
	for i, r := range runes {
		switch r {
		case ',', ':', ';', '/':
			prevDigit := i > 0 && unicode.IsDigit(runes[i-1])
			nextDigit := i+1 < len(runes) && unicode.IsDigit(runes[i+1])
			if prevDigit && nextDigit {
				b.WriteRune(r)
			} else {
				b.WriteByte(' ')
				b.WriteRune(r)
				b.WriteByte(' ')
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// collapseTerminalRuns reduces each run of ! and ? to its first symbol and
// separates it as a standalone token.
func collapseTerminalRuns(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '!' && r != '?' {
			b.WriteRune(r)
			continue
		}
		for i+1 < len(runes) && (runes[i+1] == '!' || runes[i+1] == '?') {
			i++
		}
		b.WriteByte(' ')
		b.WriteRune(r)
		b.WriteByte(' ')
	}
	return b.String()
}

// classifyHyphens separates long dashes and keeps compound-word hyphens.
// A run of two or more hyphens, or a single hyphen next to a space, is a
// long dash; a hyphen between two non-space characters stays attached.
func classifyHyphens(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '-' {
			b.WriteRune(runes[i])
			continue
		}
		runLen := 1
		for i+runLen < len(runes) && runes[i+runLen] == '-' {
			runLen++
		}
		switch {
		case runLen >= 2:
			b.WriteString(" -- ")
		case (i > 0 && unicode.IsSpace(runes[i-1])) ||
			(i+1 < len(runes) && unicode.IsSpace(runes[i+1])):
			b.WriteString(" - ")
		default:
			b.WriteByte('-')
		}
		i += runLen - 1
	}
	return b.String()
}

// classifyApostrophes applies the apostrophe decision table: contraction
// suffixes are detached as joined suffix tokens (with the negation suffix
// also reclaiming its dropped "n"), quote apostrophes are separated,
// possessives and name/era apostrophes are left attached. The open-quote
// flag lives on the stack of this call, never across inputs.
func (t *Tokenizer) classifyApostrophes(s, original string) string {
	var out []byte
	openQuote := false

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if !strings.ContainsRune(apostrophes, r) {
			out = utf8Append(out, r)
			continue
		}

		var prev, next rune
		if i > 0 {
			prev = runes[i-1]
		}
		if i+1 < len(runes) {
			next = runes[i+1]
		}

		// Known contraction suffix with a word boundary after it.
		if sfx := contractionSuffixAt(runes, i+1); sfx != "" {
			if strings.EqualFold(sfx, "t") && (prev == 'n' || prev == 'N') {
				// Reclaim the "n" so the whole negation detaches: "don't" -> "do n't".
				out = out[:len(out)-1]
				if prev == 'N' && sfx == "T" {
					out = append(out, " N'T"...)
				} else {
					out = append(out, " n'"...)
					out = append(out, sfx...)
				}
			} else {
				out = append(out, ' ', '\'')
				out = append(out, sfx...)
			}
			i += len([]rune(sfx))
			continue
		}

		switch {
		case prev == 0 || unicode.IsSpace(prev):
			// Opening single quote.
			openQuote = true
			out = append(out, '\'', ' ')

		case next == 0 || unicode.IsSpace(next):
			switch {
			case openQuote:
				openQuote = false
				out = append(out, ' ', '\'')
			case prev == 's' || prev == 'S':
				// Possessive on a word ending in s; leave attached.
				out = append(out, '\'')
			case (prev == 'n' && i >= 2 && runes[i-2] == 'i') ||
				(prev == 'N' && i >= 2 && runes[i-2] == 'I'):
				// Affected gerund contraction: "goin'" -> "going".
				if prev == 'N' {
					out = append(out, 'G')
				} else {
					out = append(out, 'g')
				}
			default:
				if t.warnings {
					t.logger.Warn("unexpected apostrophe usage",
						slog.String("context", runeContext(runes, i)),
						slog.String("text", original))
				}
				out = utf8Append(out, r)
			}

		case unicode.IsUpper(next) || unicode.IsDigit(next):
			// Names like O'Connor and era contractions like mid'90s.
			out = utf8Append(out, r)

		default:
			if t.warnings {
				t.logger.Warn("non-contraction apostrophe usage",
					slog.String("context", runeContext(runes, i)),
					slog.String("text", original))
			}
			out = utf8Append(out, r)
		}
	}
	return string(out)
}

// contractionSuffixAt reports the contraction suffix starting at rune index
// i, or "" when the following text is not a suffix at a word boundary.
func contractionSuffixAt(runes []rune, i int) string {
	for _, sfx := range contractionSuffixes {
		sr := []rune(sfx)
		if i+len(sr) > len(runes) {
			continue
		}
		match := true
		for k, c := range sr {
			if unicode.ToLower(runes[i+k]) != c {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		// Word boundary after the suffix.
		if i+len(sr) == len(runes) || !isWordRune(runes[i+len(sr)]) {
			return string(runes[i : i+len(sr)])
		}
	}
	return ""
}

// runeContext returns a short window around rune index i for warnings.
func runeContext(runes []rune, i int) string {
	lo, hi := i-3, i+4
	if lo < 0 {
		lo = 0
	}
	if hi > len(runes) {
		hi = len(runes)
	}
	return string(runes[lo:hi])
}

func utf8Append(b []byte, r rune) []byte {
	return append(b, string(r)...)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
