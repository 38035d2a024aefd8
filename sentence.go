package sumprep

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Measure selects the cost unit for summary size checks and truncation.
type Measure int

const (
	// MeasureChar counts characters including inter-token spaces.
	MeasureChar Measure = iota
	// MeasureWord counts tokens that begin with an alphanumeric character.
	MeasureWord
	// MeasureSent counts sentences.
	MeasureSent
)

// Sentence is a single sentence with its position in the source document.
// Raw text, tokens and the canonical comparison form are fixed at
// construction, so a Sentence can be read from multiple goroutines. The only
// post-construction write is the optional tag sequence, set once by the
// pipeline before the sentence is shared.
type Sentence struct {
	// Raw is the sentence text as it appears in the document.
	Raw string
	// Tokens is the tokenized form of Raw.
	Tokens []string

	// SentID is unique within the field the sentence came from; ParID is
	// the paragraph index and RelID the sentence index within it.
	SentID int
	ParID  int
	RelID  int

	tags      []string
	canonical string
}

// NewSentence builds a Sentence from raw text with its tokenization and
// position identifiers.
func NewSentence(raw string, tokens []string, sentID, parID, relID int) *Sentence {
	return &Sentence{
		Raw:       raw,
		Tokens:    tokens,
		SentID:    sentID,
		ParID:     parID,
		RelID:     relID,
		canonical: canonicalize(raw),
	}
}

// Canonical returns the comparison form of the sentence: lowercased with
// everything but letters and digits removed. It is a pure function of Raw,
// computed once at construction.
func (s *Sentence) Canonical() string {
	return s.canonical
}

func canonicalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// IsIdenticalTo reports whether the two sentences match exactly once case,
// punctuation and spacing are ignored.
func (s *Sentence) IsIdenticalTo(other *Sentence) bool {
	return s.Canonical() == other.Canonical()
}

// IsContainedIn reports whether the sentence appears within another sentence
// once case, punctuation and spacing are ignored.
func (s *Sentence) IsContainedIn(other *Sentence) bool {
	return strings.Contains(other.Canonical(), s.Canonical())
}

// IsSubsequenceOf reports whether every content token of the sentence
// matches, case-insensitively and in order, a distinct token of the other
// sentence. A single forward-only cursor over the other sentence's tokens
// means matches cannot be reused or reordered.
func (s *Sentence) IsSubsequenceOf(other *Sentence) bool {
	cursor := 0
	for _, token := range s.Tokens {
		if !isContentToken(token) {
			continue
		}
		found := false
		for cursor < len(other.Tokens) {
			candidate := other.Tokens[cursor]
			cursor++
			if strings.EqualFold(token, candidate) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// isContentToken reports whether a token carries lexical content: it begins
// or ends with an alphanumeric character. Pure punctuation tokens do not.
func isContentToken(token string) bool {
	if token == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(token)
	last, _ := utf8.DecodeLastRuneInString(token)
	return isAlnum(first) || isAlnum(last)
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// HasEOSPunct reports whether the sentence ends with terminal punctuation.
// Tokenization moves terminators outside quotes, so checking the final token
// suffices.
func (s *Sentence) HasEOSPunct() bool {
	if len(s.Tokens) == 0 {
		return false
	}
	switch s.Tokens[len(s.Tokens)-1] {
	case ".", "!", "?":
		return true
	}
	return false
}

// Words returns the tokens that begin with an alphanumeric character.
func (s *Sentence) Words() []string {
	var words []string
	for _, token := range s.Tokens {
		if token != "" && isAlnum(firstRune(token)) {
			words = append(words, token)
		}
	}
	return words
}

// SetTags stores an externally supplied tag sequence. Tags align with the
// tagger's tokenization, not with Tokens.
func (s *Sentence) SetTags(tags []string) {
	s.tags = tags
}

// Tags returns the tag sequence set by SetTags, or nil.
func (s *Sentence) Tags() []string {
	return s.tags
}

// HasVerb reports whether any assigned tag marks a verb. Without tags it
// reports false.
func (s *Sentence) HasVerb() bool {
	for _, tag := range s.tags {
		if tag != "" && (tag[0] == 'V' || tag[0] == 'v') {
			return true
		}
	}
	return false
}

// Truncate returns a copy of the sentence cut to fit the given budget, with
// an ellipsis appended to the raw form. MeasureChar budgets reserve room for
// the ellipsis; MeasureWord counts word tokens only.
func (s *Sentence) Truncate(budget int, measure Measure) *Sentence {
	wordCost := 0
	charCost := 0
	var kept []string
	for _, token := range s.Tokens {
		if token != "" && isAlnum(firstRune(token)) {
			wordCost++
		}
		charCost += 1 + len(token)
		if (measure == MeasureWord && wordCost > budget) ||
			(measure == MeasureChar && charCost > budget-4) {
			break
		}
		kept = append(kept, token)
	}

	return NewSentence(strings.Join(kept, " ")+" ...", kept,
		s.SentID, s.ParID, s.RelID)
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
