package boundary

import (
	"context"
	"unicode"
	"unicode/utf8"
)

// Heuristic is a rule-based first-pass segmenter: it proposes a boundary
// after a run of terminal punctuation (with any trailing quotes) that is
// followed by whitespace and then an uppercase letter or digit. It makes the
// classic abbreviation mistakes on purpose; the splitter's correction pass
// repairs them. Useful when no model file is available.
type Heuristic struct{}

// Segment proposes candidate sentences covering text.
func (Heuristic) Segment(_ context.Context, text string) ([]string, error) {
	var sents []string
	start := 0

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r != '.' && r != '!' && r != '?' {
			i += size
			continue
		}

		// Take in the rest of the punctuation run and any closing quotes.
		end := i + size
		for end < len(text) {
			q, qsize := utf8.DecodeRuneInString(text[end:])
			if !isTerminalRune(q) {
				break
			}
			end += qsize
		}

		// A boundary needs whitespace and then a capital or digit.
		next := end
		for next < len(text) {
			w, wsize := utf8.DecodeRuneInString(text[next:])
			if !unicode.IsSpace(w) {
				break
			}
			next += wsize
		}
		if next == end || next == len(text) {
			i = end
			continue
		}
		nr, _ := utf8.DecodeRuneInString(text[next:])
		if !unicode.IsUpper(nr) && !unicode.IsDigit(nr) {
			i = end
			continue
		}

		sents = append(sents, text[start:end])
		start = next
		i = next
	}

	if start < len(text) {
		sents = append(sents, text[start:])
	}
	return sents, nil
}

func isTerminalRune(r rune) bool {
	switch r {
	case '.', '!', '?', '"', '\'', ')', ']', '’', '”':
		return true
	}
	return false
}
