// Package splitter segments text into sentences. A statistical first pass
// proposes candidate boundaries; a deterministic correction pass then merges
// candidates that end in abbreviations and repairs candidates that begin
// mid-sentence, while tracking offsets so that the output provably covers
// the input exactly.
package splitter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrCoverage indicates that boundary correction lost or duplicated text:
// the consumed candidate text plus inter-sentence gaps no longer equals the
// input. This is a defect signal, not a data condition, and processing of
// the affected document must stop rather than emit misaligned sentences.
var ErrCoverage = errors.New("splitter: sentence coverage violated")

// Segmenter proposes first-pass sentence boundaries. Implementations must
// return candidates in order of appearance; candidates are matched back
// against the input verbatim, separated only by whitespace gaps.
type Segmenter interface {
	Segment(ctx context.Context, text string) ([]string, error)
}

// Symbol classes used by boundary correction.
const (
	closeParens      = ")]}"
	singleQuoteChars = "'`‘’"
	doubleQuoteChars = "\"“”"
	eosPunct         = ".!?"
)

// Option configures a Splitter.
type Option func(*cfg)

type cfg struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for correction diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *cfg) {
		if l != nil {
			c.logger = l
		}
	}
}

// Splitter runs the two-pass segmentation. It is stateless per call and safe
// for concurrent use if its Segmenter is.
type Splitter struct {
	seg    Segmenter
	logger *slog.Logger
}

// New returns a Splitter over the given first-pass segmenter.
func New(seg Segmenter, opts ...Option) *Splitter {
	c := cfg{logger: slog.Default()}
	for _, opt := range opts {
		opt(&c)
	}
	return &Splitter{seg: seg, logger: c.logger}
}

// Split segments text into corrected sentences.
func (s *Splitter) Split(ctx context.Context, text string) ([]string, error) {
	sents, _, err := s.SplitWithGaps(ctx, text)
	return sents, err
}

// SplitWithGaps segments text and additionally returns the whitespace gap
// preceding each sentence (gaps[0] is the text's leading whitespace, and a
// trailing element holds whitespace after the last sentence). Interleaving
// gaps and sentences reproduces text exactly; gaps always has one more
// element than the sentence list.
func (s *Splitter) SplitWithGaps(ctx context.Context, text string) ([]string, []string, error) {
	if text == "" {
		return nil, []string{""}, nil
	}

	candidates, err := s.seg.Segment(ctx, text)
	if err != nil {
		return nil, nil, fmt.Errorf("first-pass segmentation: %w", err)
	}

	return s.fixBoundaries(candidates, text)
}

// fixBoundaries re-merges candidates that were split after an abbreviation
// and moves spurious sentence prefixes back onto the previous sentence.
// A single left-to-right scan with one pending unterminated buffer.
func (s *Splitter) fixBoundaries(candidates []string, text string) ([]string, []string, error) {
	var fixed []string
	var gaps []string

	var pending string    // candidate held for a future merge
	var pendingGap string // gap that preceded the pending candidate

	pos := 0
	for _, cand := range candidates {
		cand = strings.TrimSpace(cand)
		if cand == "" {
			continue
		}

		gap := leadingWhitespace(text[pos:])
		pos += len(gap)
		if !strings.HasPrefix(text[pos:], cand) {
			return nil, nil, fmt.Errorf("%w: candidate %q not found at offset %d", ErrCoverage, truncateForLog(cand), pos)
		}
		pos += len(cand)

		sent := cand
		sentGap := gap

		if pending != "" {
			// Merge the entire candidate back, keeping the original gap.
			s.logger.Debug("merging sentence after bad suffix",
				slog.String("suffix", truncateForLog(pending)))
			sent = pending + gap + sent
			sentGap = pendingGap
			pending = ""
		} else if len(fixed) > 0 {
			if prefix := badPrefix(sent); prefix != "" {
				// Move the dangling prefix onto the previous sentence.
				s.logger.Debug("moving bad prefix to previous sentence",
					slog.String("prefix", truncateForLog(prefix)))
				fixed[len(fixed)-1] += gap + prefix
				rest := sent[len(prefix):]
				sentGap = leadingWhitespace(rest)
				sent = rest[len(sentGap):]
			}
		}

		// Excising the prefix may have emptied the candidate.
		if sent == "" {
			continue
		}

		if badSuffix(sent) {
			// Awaiting a future merge.
			pending = sent
			pendingGap = sentGap
		} else {
			fixed = append(fixed, sent)
			gaps = append(gaps, sentGap)
		}
	}

	if pending != "" {
		fixed = append(fixed, pending)
		gaps = append(gaps, pendingGap)
	}

	trailing := leadingWhitespace(text[pos:])
	pos += len(trailing)
	if pos != len(text) {
		return nil, nil, fmt.Errorf("%w: consumed %d of %d bytes", ErrCoverage, pos, len(text))
	}
	gaps = append(gaps, trailing)

	if err := verifyCoverage(fixed, gaps, text); err != nil {
		return nil, nil, err
	}
	return fixed, gaps, nil
}

// verifyCoverage rebuilds the text from sentences and gaps and compares it
// byte for byte against the input.
func verifyCoverage(sents, gaps []string, text string) error {
	var b strings.Builder
	b.Grow(len(text))
	for i, sent := range sents {
		b.WriteString(gaps[i])
		b.WriteString(sent)
	}
	b.WriteString(gaps[len(gaps)-1])
	if b.String() != text {
		return fmt.Errorf("%w: reconstruction mismatch", ErrCoverage)
	}
	return nil
}

// badPrefix returns the leading span of sent that belongs to the previous
// sentence, or "" when the sentence starts cleanly.
func badPrefix(sent string) string {
	// A sentence whose first alphanumeric character is lowercase was split
	// mid-sentence; the whole candidate is a bad prefix.
	for _, r := range sent {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		if unicode.IsDigit(r) || unicode.IsUpper(r) {
			break
		}
		if unicode.IsLower(r) {
			return sent
		}
	}

	// No uncapitalized start, so look for dangling closers, quotes and
	// sentence terminators before the first whitespace, e.g. `.)''`.
	end := -1
	for i, r := range sent {
		if strings.ContainsRune(closeParens, r) ||
			strings.ContainsRune(singleQuoteChars, r) ||
			strings.ContainsRune(doubleQuoteChars, r) ||
			strings.ContainsRune(eosPunct, r) {
			end = i + utf8.RuneLen(r)
			continue
		}
		// Allow a possessive "s" right after the symbol run.
		if r == 's' && end == i {
			end = i + 1
		}
		break
	}
	if end <= 0 {
		return ""
	}
	if end == len(sent) || isGapRune(firstRune(sent[end:])) {
		return sent[:end]
	}
	return ""
}

// badSuffix reports whether sent ends in a way that suggests the split
// after it was wrong: a multi-period abbreviation in the final word, or a
// known single-period abbreviation anchored at the end.
func badSuffix(sent string) bool {
	if strings.HasSuffix(sent, ".") {
		// A second period inside the final whitespace-delimited word (not
		// adjacent to a digit) marks abbreviations like a.m., U.S., A.D.
		runes := []rune(sent)
		for i := len(runes) - 2; i >= 0; i-- {
			if runes[i] == ' ' {
				break
			}
			if unicode.IsDigit(runes[i]) {
				break
			}
			if runes[i] == '.' {
				return true
			}
		}
	}

	return hasAbbrevSuffix(sent)
}

// hasAbbrevSuffix reports whether sent ends with a known single-period
// abbreviation that either starts the sentence or follows a non-word rune.
func hasAbbrevSuffix(sent string) bool {
	for _, abbrev := range abbreviations {
		if !strings.HasSuffix(sent, abbrev) {
			continue
		}
		if len(sent) == len(abbrev) {
			return true
		}
		r := lastRune(sent[:len(sent)-len(abbrev)])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return true
		}
	}
	return false
}

// leadingWhitespace returns the whitespace run at the start of s.
func leadingWhitespace(s string) string {
	for i, r := range s {
		if !isGapRune(r) {
			return s[:i]
		}
	}
	return s
}

// isGapRune reports whether r can appear in an inter-sentence gap.
func isGapRune(r rune) bool {
	return unicode.IsSpace(r) || r == ' '
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

func truncateForLog(s string) string {
	if len(s) > 40 {
		return s[:40] + "..."
	}
	return s
}
