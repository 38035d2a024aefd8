package boundary

import (
	"fmt"
	"math"
	"os"

	"google.golang.org/protobuf/encoding/protowire"
)

// Piece is one vocabulary entry of a SentencePiece model: the token text and
// its unigram log probability.
type Piece struct {
	Piece string
	Score float32
	Type  int32
}

// Piece types from the SentencePiece ModelProto schema.
const (
	pieceTypeNormal  = 1
	pieceTypeUnknown = 2
	pieceTypeControl = 3
)

// Model is a loaded SentencePiece vocabulary.
type Model struct {
	Pieces []Piece
}

// LoadModel reads a SentencePiece .model file. Only the vocabulary is
// decoded; trainer and normalizer metadata are skipped field by field.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}
	return parseModel(data)
}

// parseModel decodes the ModelProto wire format. Field 1 is the repeated
// SentencePiece message; everything else is irrelevant here.
func parseModel(data []byte) (*Model, error) {
	model := &Model{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("%w: bad tag", ErrInvalidModel)
		}
		data = data[n:]

		if num == 1 && typ == protowire.BytesType {
			raw, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("%w: bad piece message", ErrInvalidModel)
			}
			data = data[n:]

			piece, err := parsePiece(raw)
			if err != nil {
				return nil, err
			}
			model.Pieces = append(model.Pieces, piece)
			continue
		}

		n = protowire.ConsumeFieldValue(num, typ, data)
		if n < 0 {
			return nil, fmt.Errorf("%w: bad field %d", ErrInvalidModel, num)
		}
		data = data[n:]
	}

	if len(model.Pieces) == 0 {
		return nil, fmt.Errorf("%w: no vocabulary pieces", ErrInvalidModel)
	}
	return model, nil
}

// parsePiece decodes one SentencePiece message: piece (1, string),
// score (2, float), type (3, enum, default normal).
func parsePiece(data []byte) (Piece, error) {
	piece := Piece{Type: pieceTypeNormal}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return piece, fmt.Errorf("%w: bad piece tag", ErrInvalidModel)
		}
		data = data[n:]

		switch {
		case num == 1 && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(data)
			if n < 0 {
				return piece, fmt.Errorf("%w: bad piece text", ErrInvalidModel)
			}
			piece.Piece = s
			data = data[n:]

		case num == 2 && typ == protowire.Fixed32Type:
			bits, n := protowire.ConsumeFixed32(data)
			if n < 0 {
				return piece, fmt.Errorf("%w: bad piece score", ErrInvalidModel)
			}
			piece.Score = math.Float32frombits(bits)
			data = data[n:]

		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return piece, fmt.Errorf("%w: bad piece type", ErrInvalidModel)
			}
			piece.Type = int32(v)
			data = data[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return piece, fmt.Errorf("%w: bad piece field %d", ErrInvalidModel, num)
			}
			data = data[n:]
		}
	}
	return piece, nil
}
