package boundary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
)

const (
	// maxSeqLen is the longest token sequence sent to the model in one
	// pass. The model accepts 514 positions; 512 leaves margin.
	maxSeqLen = 512

	// chunkOverlap is the number of tokens shared by adjacent chunks so
	// boundaries near a chunk edge see context from both sides.
	chunkOverlap = 64
)

// Detector proposes sentence boundaries with a wtpsplit/SaT ONNX model. It
// implements splitter.Segmenter and is safe for concurrent use; inference
// runs on an internal session pool.
type Detector struct {
	vocab     *Vocab
	pool      *Pool
	threshold float32
	logger    *slog.Logger
}

// NewDetector creates a Detector from an ONNX model file and a SentencePiece
// vocabulary file.
func NewDetector(modelPath, vocabPath string, opts ...Option) (*Detector, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if _, err := os.Stat(modelPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, modelPath)
		}
		return nil, fmt.Errorf("checking model file: %w", err)
	}

	vocab, err := NewVocab(vocabPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrVocabFailed, vocabPath)
		}
		return nil, fmt.Errorf("%w: %w", ErrVocabFailed, err)
	}

	pool, err := NewPool(modelPath, cfg.poolSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}

	return &Detector{
		vocab:     vocab,
		pool:      pool,
		threshold: cfg.threshold,
		logger:    cfg.logger,
	}, nil
}

// Segment splits text into candidate sentences at tokens whose boundary
// probability exceeds the threshold.
func (d *Detector) Segment(ctx context.Context, text string) ([]string, error) {
	if text == "" {
		return nil, nil
	}

	tokens := d.vocab.Encode(text)
	if len(tokens) == 0 {
		return nil, nil
	}

	logits, err := d.getLogits(ctx, tokens)
	if err != nil {
		return nil, err
	}

	var boundaries []int
	for i, logit := range logits {
		if sigmoid(logit) > d.threshold && i < len(tokens) {
			boundaries = append(boundaries, tokens[i].End)
		}
	}
	if len(boundaries) == 0 {
		return []string{text}, nil
	}

	var sentences []string
	start := 0
	for _, end := range boundaries {
		if end > start && end <= len(text) {
			sentences = append(sentences, text[start:end])
			start = end
		}
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences, nil
}

// IsComplete reports whether text appears to end at a sentence boundary,
// with the model's confidence.
func (d *Detector) IsComplete(ctx context.Context, text string) (bool, float32, error) {
	if text == "" {
		return false, 0, nil
	}

	tokens := d.vocab.Encode(text)
	if len(tokens) == 0 {
		return false, 0, nil
	}

	logits, err := d.getLogits(ctx, tokens)
	if err != nil {
		return false, 0, err
	}

	prob := sigmoid(logits[len(logits)-1])
	return prob > d.threshold, prob, nil
}

// getLogits returns boundary logits for all tokens, chunking long sequences
// with overlap and averaging the overlapped positions. One pool session
// serves all chunks of a sequence.
func (d *Detector) getLogits(ctx context.Context, tokens []TokenInfo) ([]float32, error) {
	var logits []float32
	err := d.pool.Do(ctx, func(session *Session) error {
		var err error
		logits, err = d.inferAll(ctx, session, tokens)
		return err
	})
	if err != nil {
		return nil, err
	}
	return logits, nil
}

func (d *Detector) inferAll(ctx context.Context, session *Session, tokens []TokenInfo) ([]float32, error) {
	if len(tokens) <= maxSeqLen {
		return d.inferChunk(ctx, session, tokens)
	}

	logits := make([]float32, len(tokens))
	counts := make([]int, len(tokens))

	stride := maxSeqLen - chunkOverlap
	for start := 0; start < len(tokens); start += stride {
		end := start + maxSeqLen
		if end > len(tokens) {
			end = len(tokens)
		}

		chunkLogits, err := d.inferChunk(ctx, session, tokens[start:end])
		if err != nil {
			return nil, err
		}
		for i, logit := range chunkLogits {
			logits[start+i] += logit
			counts[start+i]++
		}

		if end >= len(tokens) {
			break
		}
	}

	for i := range logits {
		if counts[i] > 1 {
			logits[i] /= float32(counts[i])
		}
	}
	return logits, nil
}

func (d *Detector) inferChunk(ctx context.Context, session *Session, tokens []TokenInfo) ([]float32, error) {
	inputIDs := make([]int64, len(tokens))
	attentionMask := make([]int64, len(tokens))
	for i, t := range tokens {
		inputIDs[i] = int64(t.ID)
		attentionMask[i] = 1
	}
	return session.Infer(ctx, inputIDs, attentionMask)
}

// Close releases the session pool.
func (d *Detector) Close() error {
	if d.pool != nil {
		return d.pool.Close()
	}
	return nil
}

func sigmoid(x float32) float32 {
	return float32(1.0 / (1.0 + math.Exp(float64(-x))))
}
