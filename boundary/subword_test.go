package boundary

import (
	"testing"
	"unicode/utf8"
)

// newTestVocab builds a small vocabulary directly, bypassing file loading.
func newTestVocab(entries map[string]float32) *Vocab {
	v := &Vocab{
		pieces:   make(map[string]int32),
		scores:   make(map[string]float32),
		unkScore: -20,
	}
	// Reserve the conventional special indices.
	specials := []string{"<unk>", "<s>", "</s>"}
	for i, s := range specials {
		v.pieces[s] = int32(i)
		v.scores[s] = -20
	}
	i := int32(len(specials))
	for piece, score := range entries {
		v.pieces[piece] = i
		v.scores[piece] = score
		if n := utf8.RuneCountInString(piece); n > v.maxTokenLen {
			v.maxTokenLen = n
		}
		i++
	}
	return v
}

func TestNormalizeOffsets(t *testing.T) {
	runes, offsets := normalize("He ran.")

	if got, want := string(runes), "▁He▁ran."; got != want {
		t.Fatalf("normalized = %q, want %q", got, want)
	}
	if len(offsets) != len(runes)+1 {
		t.Fatalf("got %d offsets for %d runes", len(offsets), len(runes))
	}

	// The second marker starts at the space byte, and the final entry
	// closes the text.
	wantOffsets := []int{0, 0, 1, 2, 3, 4, 5, 6, 7}
	for i, want := range wantOffsets {
		if offsets[i] != want {
			t.Errorf("offsets[%d] = %d, want %d", i, offsets[i], want)
		}
	}
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	runes, _ := normalize("  a \n b  ")
	if got, want := string(runes), "▁a▁b"; got != want {
		t.Errorf("normalized = %q, want %q", got, want)
	}
}

func TestEncodePrefersHighScoringPieces(t *testing.T) {
	v := newTestVocab(map[string]float32{
		"▁He": -2,
		"▁ran": -2,
		".":    -3,
		"▁":   -10,
		"H":    -10,
		"e":    -10,
		"r":    -10,
		"a":    -10,
		"n":    -10,
	})

	tokens := v.Encode("He ran.")
	want := []string{"▁He", "▁ran", "."}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(tokens), tokens, len(want))
	}
	for i, tok := range tokens {
		if tok.Text != want[i] {
			t.Errorf("token %d = %q, want %q", i, tok.Text, want[i])
		}
	}

	// Byte spans must land in the original text: "He" ends at byte 2,
	// "ran" at byte 6, "." at byte 7.
	wantEnds := []int{2, 6, 7}
	for i, tok := range tokens {
		if tok.End != wantEnds[i] {
			t.Errorf("token %d end = %d, want %d", i, tok.End, wantEnds[i])
		}
	}
}

func TestEncodeUnknownRunes(t *testing.T) {
	v := newTestVocab(map[string]float32{
		"▁a": -2,
	})

	tokens := v.Encode("a ☃") // snowman is out of vocabulary
	if len(tokens) == 0 {
		t.Fatal("no tokens")
	}
	last := tokens[len(tokens)-1]
	if last.ID != 3 {
		t.Errorf("unknown token ID = %d, want 3", last.ID)
	}
	if last.End != len("a ☃") {
		t.Errorf("unknown token end = %d, want %d", last.End, len("a ☃"))
	}
}

func TestEncodeEmpty(t *testing.T) {
	v := newTestVocab(map[string]float32{"▁a": -1})
	if tokens := v.Encode(""); tokens != nil {
		t.Errorf("Encode(\"\") = %v, want nil", tokens)
	}
	if tokens := v.Encode("   "); tokens != nil {
		t.Errorf("Encode(whitespace) = %v, want nil", tokens)
	}
}

func TestSPIndexToHFID(t *testing.T) {
	tests := []struct {
		sp   int32
		want int32
	}{
		{0, 3}, {1, 0}, {2, 2}, {3, 4}, {100, 101},
	}
	for _, tt := range tests {
		if got := spIndexToHFID(tt.sp); got != tt.want {
			t.Errorf("spIndexToHFID(%d) = %d, want %d", tt.sp, got, tt.want)
		}
	}
}
