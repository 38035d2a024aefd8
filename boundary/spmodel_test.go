package boundary

import (
	"errors"
	"math"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

// buildModelBytes encodes pieces in the SentencePiece ModelProto wire format.
func buildModelBytes(pieces []Piece) []byte {
	var out []byte
	for _, p := range pieces {
		var msg []byte
		msg = protowire.AppendTag(msg, 1, protowire.BytesType)
		msg = protowire.AppendString(msg, p.Piece)
		msg = protowire.AppendTag(msg, 2, protowire.Fixed32Type)
		msg = protowire.AppendFixed32(msg, math.Float32bits(p.Score))
		if p.Type != pieceTypeNormal {
			msg = protowire.AppendTag(msg, 3, protowire.VarintType)
			msg = protowire.AppendVarint(msg, uint64(p.Type))
		}

		out = protowire.AppendTag(out, 1, protowire.BytesType)
		out = protowire.AppendBytes(out, msg)
	}
	return out
}

func TestParseModel(t *testing.T) {
	want := []Piece{
		{Piece: "<unk>", Score: 0, Type: pieceTypeUnknown},
		{Piece: "<s>", Score: 0, Type: pieceTypeControl},
		{Piece: "</s>", Score: 0, Type: pieceTypeControl},
		{Piece: "▁He", Score: -3.5, Type: pieceTypeNormal},
		{Piece: "ran", Score: -4.25, Type: pieceTypeNormal},
	}

	model, err := parseModel(buildModelBytes(want))
	if err != nil {
		t.Fatalf("parseModel: %v", err)
	}

	if len(model.Pieces) != len(want) {
		t.Fatalf("got %d pieces, want %d", len(model.Pieces), len(want))
	}
	for i, p := range model.Pieces {
		if p != want[i] {
			t.Errorf("piece %d = %+v, want %+v", i, p, want[i])
		}
	}
}

func TestParseModelSkipsUnknownFields(t *testing.T) {
	data := buildModelBytes([]Piece{{Piece: "a", Score: -1, Type: pieceTypeNormal}})

	// Non-piece fields (trainer_spec is field 2) must be skipped.
	data = protowire.AppendTag(data, 2, protowire.BytesType)
	data = protowire.AppendBytes(data, []byte{0x08, 0x01})

	model, err := parseModel(data)
	if err != nil {
		t.Fatalf("parseModel: %v", err)
	}
	if len(model.Pieces) != 1 || model.Pieces[0].Piece != "a" {
		t.Errorf("pieces = %+v", model.Pieces)
	}
}

func TestParseModelInvalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"truncated tag", []byte{0xFF}},
		{"empty vocabulary", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseModel(tt.data)
			if !errors.Is(err, ErrInvalidModel) {
				t.Errorf("parseModel error = %v, want ErrInvalidModel", err)
			}
		})
	}
}

func TestLoadModelMissingFile(t *testing.T) {
	_, err := LoadModel("testdata/nonexistent.model")
	if err == nil {
		t.Fatal("expected error for nonexistent file")
	}
}
