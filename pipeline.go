package sumprep

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jamesainslie/go-sumprep/align"
	"github.com/jamesainslie/go-sumprep/splitter"
	"github.com/jamesainslie/go-sumprep/tokenizer"
)

// Pipeline turns raw paragraph pairs into processed Documents. It owns the
// aligner, splitter and tokenizer so that reconciliation always precedes
// segmentation; callers never sequence the passes themselves.
type Pipeline struct {
	aligner  *align.Aligner
	splitter *splitter.Splitter
	tok      *tokenizer.Tokenizer
	tagger   Tagger
	logger   *slog.Logger
}

// NewPipeline returns a Pipeline using seg for first-pass sentence
// boundaries.
func NewPipeline(seg splitter.Segmenter, opts ...Option) (*Pipeline, error) {
	if seg == nil {
		return nil, ErrNoSegmenter
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Pipeline{
		aligner:  align.New(align.WithLogger(cfg.logger)),
		splitter: splitter.New(seg, splitter.WithLogger(cfg.logger)),
		tok: tokenizer.New(
			tokenizer.WithLogger(cfg.logger),
			tokenizer.WithWarnings(cfg.warnings)),
		tagger: cfg.tagger,
		logger: cfg.logger,
	}, nil
}

// Process reconciles the document and summary fields, segments both into
// tokenized sentences and returns the resulting Document. Reconciliation
// runs exactly once, before any segmentation. A splitter coverage violation
// aborts the document.
func (p *Pipeline) Process(ctx context.Context, fullText, summary []string) (*Document, error) {
	if len(fullText) == 0 {
		return nil, ErrEmptyDocument
	}

	res := p.aligner.Reconcile(fullText, summary)

	docParas, err := p.segmentField(ctx, res.FullText)
	if err != nil {
		return nil, fmt.Errorf("full text: %w", err)
	}
	summParas, err := p.segmentField(ctx, res.Summary)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}

	return newDocument(res, docParas, summParas), nil
}

// segmentField splits each paragraph into sentences and tokenizes them,
// assigning global, paragraph and in-paragraph identifiers.
func (p *Pipeline) segmentField(ctx context.Context, paras []string) ([][]*Sentence, error) {
	out := make([][]*Sentence, 0, len(paras))
	offset := 0
	for parID, para := range paras {
		raws, err := p.splitter.Split(ctx, para)
		if err != nil {
			return nil, fmt.Errorf("paragraph %d: %w", parID, err)
		}

		sents := make([]*Sentence, 0, len(raws))
		for relID, raw := range raws {
			sent := NewSentence(raw, p.tok.Tokenize(raw), offset+relID, parID, relID)
			if p.tagger != nil {
				tags, err := p.tagger.Tag(ctx, raw)
				if err != nil {
					// Tags only feed the verb check, so a failure degrades
					// the sentence rather than the document.
					p.logger.Warn("tagging failed",
						slog.Int("sentence", sent.SentID),
						slog.Any("error", err))
				} else {
					sent.SetTags(tags)
				}
			}
			sents = append(sents, sent)
		}
		offset += len(raws)
		out = append(out, sents)
	}
	return out, nil
}
