package tokenizer

import (
	"log/slog"
	"strings"
)

// Punctuation tokens that must not be preceded by a space.
var noSpaceBefore = map[string]bool{
	",": true, ".": true, ";": true, ":": true, "%": true,
}

// Contraction suffix tokens attach directly to the preceding word.
var contractionTokens = map[string]bool{
	"'s": true, "'t": true, "'m": true, "'d": true,
	"'re": true, "'ve": true, "'ll": true,
	"n't": true,
}

var closeToOpen = map[string]string{
	")": "(",
	"]": "[",
	"}": "{",
	">": "<",
}

var openParens = map[string]bool{
	"(": true, "[": true, "{": true, "<": true,
}

// Untokenize converts tokens into a string that reads like natural text,
// adjusting spacing around punctuation and paired symbols. Unbalanced
// symbols never fail the call: unmatched openers are kept in the output
// while unmatched closers are reported and dropped.
func (t *Tokenizer) Untokenize(tokens []string) string {
	addSpaceBefore := false // no space before the first word
	addSpaceAfter := true

	var stack []string
	var spaced []string
	var unexpected []int // indices into spaced of dropped closers

	for _, word := range tokens {
		lower := strings.ToLower(word)
		drop := false

		switch {
		case noSpaceBefore[word] || contractionTokens[lower]:
			addSpaceBefore = false

		case word == "'" || word == `"`:
			if len(stack) > 0 && stack[len(stack)-1] == word {
				addSpaceBefore = false
				stack = stack[:len(stack)-1]
			} else {
				addSpaceAfter = false
				stack = append(stack, word)
			}

		case openParens[word]:
			addSpaceAfter = false
			stack = append(stack, word)

		case closeToOpen[word] != "":
			if len(stack) > 0 && stack[len(stack)-1] == closeToOpen[word] {
				addSpaceBefore = false
				stack = stack[:len(stack)-1]
			} else {
				// Note the erroneous symbol; it is scrubbed below.
				drop = true
			}
		}

		if addSpaceBefore {
			spaced = append(spaced, " ")
		}
		spaced = append(spaced, word)
		if drop {
			unexpected = append(unexpected, len(spaced)-1)
		}

		addSpaceBefore = addSpaceAfter
		addSpaceAfter = true
	}

	if t.warnings && len(stack) > 0 {
		t.logger.Warn("lopsided punctuation symbols",
			slog.String("symbols", strings.Join(stack, " ")),
			slog.String("text", strings.Join(spaced, "")))
	} else if t.warnings && len(unexpected) > 0 {
		t.logger.Warn("unexpected closing symbols",
			slog.Int("count", len(unexpected)),
			slog.String("text", strings.Join(spaced, "")))
	}

	// Scrub mismatched closers along with their leading space; unbalanced
	// openers are preserved.
	for i := len(unexpected) - 1; i >= 0; i-- {
		idx := unexpected[i]
		start := idx
		if start > 0 && spaced[start-1] == " " {
			start--
		}
		spaced = append(spaced[:start], spaced[idx+1:]...)
	}

	return strings.TrimSpace(strings.Join(spaced, ""))
}
