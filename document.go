package sumprep

import (
	"regexp"
	"unicode"

	"github.com/jamesainslie/go-sumprep/align"
)

// A summary truncated mid-clause often gains a spurious final period; a
// connective right before it gives the truncation away.
var incompleteRe = regexp.MustCompile(`[-,:;]\.$`)

// Document is a processed document/summary pair: reconciled paragraph text
// plus the segmented, tokenized sentences of both fields. Documents are
// immutable once returned by Pipeline.Process.
type Document struct {
	fullText []string
	summary  []string

	docParas  [][]*Sentence
	summParas [][]*Sentence

	docSents  []*Sentence
	summSents []*Sentence
}

func newDocument(res align.Result, docParas, summParas [][]*Sentence) *Document {
	return &Document{
		fullText:  res.FullText,
		summary:   res.Summary,
		docParas:  docParas,
		summParas: summParas,
		docSents:  flatten(docParas),
		summSents: flatten(summParas),
	}
}

func flatten(paras [][]*Sentence) []*Sentence {
	var sents []*Sentence
	for _, para := range paras {
		sents = append(sents, para...)
	}
	return sents
}

// FullText returns the reconciled full-text paragraphs.
func (d *Document) FullText() []string { return d.fullText }

// Summary returns the reconciled summary paragraphs.
func (d *Document) Summary() []string { return d.summary }

// DocParagraphs returns the document's sentences grouped by paragraph.
func (d *Document) DocParagraphs() [][]*Sentence { return d.docParas }

// SummaryParagraphs returns the summary's sentences grouped by paragraph.
func (d *Document) SummaryParagraphs() [][]*Sentence { return d.summParas }

// DocSentences returns the document's sentences in order.
func (d *Document) DocSentences() []*Sentence { return d.docSents }

// SummarySentences returns the summary's sentences in order.
func (d *Document) SummarySentences() []*Sentence { return d.summSents }

// reachable reports whether every summary sentence satisfies rel against at
// least one document sentence.
func (d *Document) reachable(rel func(summ, doc *Sentence) bool) bool {
	if len(d.summSents) == 0 {
		return false
	}
	for _, ref := range d.summSents {
		found := false
		for _, sent := range d.docSents {
			if rel(ref, sent) {
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

// Extractive reports whether each summary sentence is identical to some
// document sentence, ignoring case, punctuation and spacing.
func (d *Document) Extractive() bool {
	return d.reachable((*Sentence).IsIdenticalTo)
}

// SemiExtractive reports whether each summary sentence is contained within
// some document sentence, ignoring case, punctuation and spacing.
func (d *Document) SemiExtractive() bool {
	return d.reachable((*Sentence).IsContainedIn)
}

// SubExtractive reports whether each summary sentence is a token subsequence
// of some document sentence, ignoring case and punctuation.
func (d *Document) SubExtractive() bool {
	return d.reachable((*Sentence).IsSubsequenceOf)
}

// Sentential reports whether the summary reads as complete sentences: it
// ends with a sentence terminator, does not look truncated, and contains at
// least one verb (which requires a configured tagger).
func (d *Document) Sentential() bool {
	if len(d.summSents) == 0 {
		return false
	}

	last := d.summSents[len(d.summSents)-1]
	if !last.HasEOSPunct() {
		return false
	}
	if incompleteRe.MatchString(last.Raw) {
		return false
	}

	for _, sent := range d.summSents {
		if sent.HasVerb() {
			return true
		}
	}
	return false
}

// AllCapsSummary reports whether the summary text is entirely uppercase,
// which usually marks a title or dateline rather than a real summary.
func (d *Document) AllCapsSummary() bool {
	if len(d.summary) == 0 {
		return false
	}
	for _, para := range d.summary {
		for _, r := range para {
			if r != unicode.ToUpper(r) {
				return false
			}
		}
	}
	return true
}

// Covering reports whether the summary covers the document's full text:
// sentence counts within one of each other and identical canonical content.
func (d *Document) Covering() bool {
	if len(d.summSents) == 0 {
		return false
	}

	diff := len(d.docSents) - len(d.summSents)
	if diff < -1 || diff > 1 {
		return false
	}

	return joinCanonical(d.docSents) == joinCanonical(d.summSents)
}

func joinCanonical(sents []*Sentence) string {
	var out string
	for _, sent := range sents {
		out += sent.Canonical()
	}
	return out
}

// Bounded reports whether the summary's size, under the given measure, lies
// within [lower, upper]. MeasureChar counts raw characters plus the spaces
// joining sentences.
func (d *Document) Bounded(measure Measure, lower, upper int) bool {
	if len(d.summSents) == 0 {
		return false
	}

	size := 0
	switch measure {
	case MeasureChar:
		for _, sent := range d.summSents {
			size += len(sent.Raw)
		}
		size += len(d.summSents) - 1
	case MeasureWord:
		for _, sent := range d.summSents {
			size += len(sent.Words())
		}
	case MeasureSent:
		size = len(d.summSents)
	}

	return lower <= size && size <= upper
}
