// Package align reconciles casing and word-joining discrepancies between a
// document's full text and its summary before either is segmented into
// sentences. Reconciliation is conditional: a suspect form in one field is
// rewritten only when the corrected form is attested in the other field, so
// legitimate text is never touched.
package align

import (
	"log/slog"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Result holds the reconciled paragraph sequences. Paragraph counts and
// ordering always match the inputs; only content may differ.
type Result struct {
	FullText []string
	Summary  []string
}

// Option configures an Aligner.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

func defaultConfig() config {
	return config{logger: slog.Default()}
}

// WithLogger sets the logger used to report rewrites.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Aligner applies the reconciliation passes. It is stateless per call.
type Aligner struct {
	logger *slog.Logger
}

// New returns an Aligner.
func New(opts ...Option) *Aligner {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Aligner{logger: cfg.logger}
}

// Reconcile runs all passes once: the summary's uppercase leading words are
// recased from the document, stitched words in the summary are separated when
// the document attests the separated form, and split words in the document
// are joined when the summary attests the joined form. Reconcile is
// idempotent and never modifies its arguments.
func (a *Aligner) Reconcile(fullText, summary []string) Result {
	doc := append([]string(nil), fullText...)
	summ := append([]string(nil), summary...)

	if len(summ) > 0 && len(doc) > 0 {
		summ[0] = a.fixLeadingCase(summ[0], doc[0])
	}

	summ = a.conditionalReplace(summ, doc, summaryStitches)
	doc = a.conditionalReplace(doc, summ, docSplits)

	return Result{FullText: doc, Summary: summ}
}

// fixLeadingCase replaces an uppercase leading word span of tgt with the
// equivalently spelled mixed-case span from src. Word-by-word extension: the
// span grows while it remains fully uppercase and matches src
// case-insensitively, then the final span is swapped in. Sentences that look
// like genuine all-caps titles are left alone.
func (a *Aligner) fixLeadingCase(tgt, src string) string {
	if tgt == "" || src == "" {
		return tgt
	}

	i := strings.IndexByte(tgt, ' ')
	if i == -1 {
		// No second word to anchor the comparison.
		return tgt
	}
	if isAlnum(lastRune(tgt)) && isAllUpper(tgt) {
		// Whole paragraph reads as a title.
		return tgt
	}

	for i <= len(src) && strings.EqualFold(tgt[:i], src[:i]) {
		if tgt[:i] == strings.ToUpper(tgt[:i]) {
			// Still uppercase; take in the next word too.
			j := i
			if i+1 < len(tgt) {
				if k := strings.IndexByte(tgt[i+1:], ' '); k != -1 {
					j = i + 1 + k
				}
			}
			if j != i {
				i = j
				continue
			}
			if len(tgt) <= len(src) && strings.EqualFold(tgt, src[:len(tgt)]) {
				// The whole paragraph matches a prefix of src.
				i = len(tgt)
			} else {
				break
			}
		}

		if tgt[:i] == src[:i] {
			// Identical spans need no rewrite.
			break
		}

		a.logger.Warn("recasing summary lead from document",
			slog.String("from", tgt[:i]),
			slog.String("to", src[:i]))
		return src[:i] + tgt[i:]
	}
	return tgt
}

// conditionalReplace rewrites occurrences of table keys in tgt paragraphs
// with their corrected values, but only for keys whose corrected value
// appears somewhere in src as a whole word (bounded by non-alphanumerics).
// Keys and values match space-delimited, so partial words never trigger.
func (a *Aligner) conditionalReplace(tgt, src []string, table map[string]string) []string {
	var matched []string
	for key := range table {
		needle := " " + key + " "
		for _, para := range tgt {
			if strings.Contains(" "+para+" ", needle) {
				matched = append(matched, key)
				break
			}
		}
	}
	if len(matched) == 0 {
		return tgt
	}

	// Longer keys first so "in to the" style overlaps resolve the same way
	// on every run; ties break lexicographically.
	sort.Slice(matched, func(i, j int) bool {
		if len(matched[i]) != len(matched[j]) {
			return len(matched[i]) > len(matched[j])
		}
		return matched[i] < matched[j]
	})

	out := tgt
	for _, key := range matched {
		repl := table[key]
		if !anyContainsWholeWord(src, repl) {
			continue
		}

		a.logger.Warn("rewriting attested word form",
			slog.String("from", key),
			slog.String("to", repl))

		rewritten := make([]string, len(out))
		for p, para := range out {
			padded := " " + para + " "
			padded = strings.ReplaceAll(padded, " "+key+" ", " "+repl+" ")
			rewritten[p] = strings.TrimSpace(padded)
		}
		out = rewritten
	}
	return out
}

// anyContainsWholeWord reports whether word occurs in any paragraph bounded
// by non-alphanumeric characters (or the paragraph edges).
func anyContainsWholeWord(paras []string, word string) bool {
	for _, para := range paras {
		if containsWholeWord(para, word) {
			return true
		}
	}
	return false
}

func containsWholeWord(para, word string) bool {
	if word == "" {
		return false
	}
	start := 0
	for {
		i := strings.Index(para[start:], word)
		if i == -1 {
			return false
		}
		i += start
		j := i + len(word)

		beforeOK := i == 0 || !isAlnum(lastRune(para[:i]))
		afterOK := j == len(para) || !isAlnum(firstRune(para[j:]))
		if beforeOK && afterOK {
			return true
		}
		start = j
	}
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isAllUpper reports whether s contains at least one letter and no letter
// in it is lowercase.
func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		hasLetter = true
		if unicode.IsLower(r) {
			return false
		}
	}
	return hasLetter
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}
