package boundary

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

const sentencePieceSpace = '▁' // U+2581 LOWER ONE EIGHTH BLOCK

const negInf = -1e9

// Vocab implements XLM-RoBERTa compatible SentencePiece Unigram subword
// tokenization.
//
// Token IDs are remapped from SentencePiece indices to the HuggingFace
// XLM-RoBERTa convention:
//   - HF[0] = <s>   (SP[1])
//   - HF[1] = <pad> (not in SentencePiece)
//   - HF[2] = </s>  (SP[2])
//   - HF[3] = <unk> (SP[0])
//   - HF[n+1] = SP[n] for n >= 3
type Vocab struct {
	pieces map[string]int32   // token string -> SentencePiece index
	scores map[string]float32 // token string -> log probability

	unkScore    float32
	maxTokenLen int // in runes
}

// TokenInfo is a subword token with its byte span in the original text.
type TokenInfo struct {
	ID    int32
	Text  string
	Start int
	End   int
}

// NewVocab loads a subword vocabulary from a SentencePiece .model file.
func NewVocab(modelPath string) (*Vocab, error) {
	model, err := LoadModel(modelPath)
	if err != nil {
		return nil, fmt.Errorf("loading vocabulary: %w", err)
	}

	v := &Vocab{
		pieces:   make(map[string]int32, len(model.Pieces)),
		scores:   make(map[string]float32, len(model.Pieces)),
		unkScore: -20,
	}
	for i, piece := range model.Pieces {
		v.pieces[piece.Piece] = int32(i)
		v.scores[piece.Piece] = piece.Score
		if piece.Type == pieceTypeUnknown {
			v.unkScore = piece.Score
		}
		if n := utf8.RuneCountInString(piece.Piece); n > v.maxTokenLen {
			v.maxTokenLen = n
		}
	}
	return v, nil
}

// spIndexToHFID converts a SentencePiece index to a HuggingFace XLM-RoBERTa
// token ID.
func spIndexToHFID(spIndex int32) int32 {
	switch spIndex {
	case 0: // <unk>
		return 3
	case 1: // <s>
		return 0
	case 2: // </s>
		return 2
	default:
		return spIndex + 1
	}
}

// normalize prepares text for subword tokenization: a dummy prefix marker,
// spaces replaced with the marker and whitespace runs collapsed. It also
// returns, for each normalized rune, the byte offset in the original text
// where that rune's span begins, plus a final entry holding len(text) so
// rune position i ends at offsets[i+1].
func normalize(text string) ([]rune, []int) {
	var runes []rune
	var offsets []int

	needSpace := true // dummy prefix before the first non-space rune
	spaceStart := 0

	byteOff := 0
	for _, r := range text {
		size := utf8.RuneLen(r)
		if unicode.IsSpace(r) {
			if len(runes) > 0 && !needSpace {
				needSpace = true
				spaceStart = byteOff
			}
			byteOff += size
			continue
		}
		if needSpace {
			start := spaceStart
			if len(runes) == 0 {
				// The dummy prefix spans nothing.
				start = byteOff
			}
			runes = append(runes, sentencePieceSpace)
			offsets = append(offsets, start)
			needSpace = false
		}
		runes = append(runes, r)
		offsets = append(offsets, byteOff)
		byteOff += size
	}

	offsets = append(offsets, len(text))
	return runes, offsets
}

// Encode tokenizes text with the Viterbi algorithm over the unigram scores,
// returning tokens whose Start/End are byte offsets into text.
func (v *Vocab) Encode(text string) []TokenInfo {
	if text == "" {
		return nil
	}

	runes, offsets := normalize(text)
	n := len(runes)
	if n == 0 {
		return nil
	}

	// best[i] is the best log probability of tokenizing runes[0:i];
	// parent[i] the start of the token ending at i.
	best := make([]float64, n+1)
	parent := make([]int, n+1)
	tokenAt := make([]string, n+1)
	for i := 1; i <= n; i++ {
		best[i] = negInf
		parent[i] = -1
	}

	for i := 1; i <= n; i++ {
		maxLen := v.maxTokenLen
		if maxLen > i {
			maxLen = i
		}
		for length := 1; length <= maxLen; length++ {
			j := i - length
			substr := string(runes[j:i])
			score, ok := v.scores[substr]
			if !ok {
				continue
			}
			if cand := best[j] + float64(score); cand > best[i] {
				best[i] = cand
				parent[i] = j
				tokenAt[i] = substr
			}
		}

		if parent[i] == -1 {
			// No vocabulary match; emit the single rune as <unk>.
			best[i] = best[i-1] + float64(v.unkScore)
			parent[i] = i - 1
			tokenAt[i] = string(runes[i-1:i])
		}
	}

	var tokens []TokenInfo
	for pos := n; pos > 0; {
		start := parent[pos]
		tokenStr := tokenAt[pos]

		spIndex, ok := v.pieces[tokenStr]
		if !ok {
			spIndex = 0 // <unk>
		}

		tokens = append(tokens, TokenInfo{
			ID:    spIndexToHFID(spIndex),
			Text:  tokenStr,
			Start: offsets[start],
			End:   offsets[pos],
		})
		pos = start
	}

	for i, j := 0, len(tokens)-1; i < j; i, j = i+1, j-1 {
		tokens[i], tokens[j] = tokens[j], tokens[i]
	}
	return tokens
}
