// Package stats tallies extractiveness statistics over a corpus of
// document/summary pairs.
package stats

import (
	"context"
	"log/slog"

	sumprep "github.com/jamesainslie/go-sumprep"
)

// Bin is the extractiveness class of one document/summary pair. Bins are
// mutually exclusive: a pair lands in the strongest class it satisfies.
type Bin int

const (
	// BinExtractive: every summary sentence is identical to a document
	// sentence.
	BinExtractive Bin = iota
	// BinSemiExtractive: contained but not extractive.
	BinSemiExtractive
	// BinSubExtractive: a token subsequence but not contained.
	BinSubExtractive
	// BinAbstractive: none of the above.
	BinAbstractive
)

func (b Bin) String() string {
	switch b {
	case BinExtractive:
		return "extractive"
	case BinSemiExtractive:
		return "semi-extractive"
	case BinSubExtractive:
		return "sub-extractive"
	case BinAbstractive:
		return "abstractive"
	}
	return "unknown"
}

// Classify assigns a processed document its strongest extractiveness bin.
func Classify(doc *sumprep.Document) Bin {
	switch {
	case doc.Extractive():
		return BinExtractive
	case doc.SemiExtractive():
		return BinSemiExtractive
	case doc.SubExtractive():
		return BinSubExtractive
	}
	return BinAbstractive
}

// Counts aggregates bins over a corpus. Failed counts documents whose
// processing errored; those never abort a run.
type Counts struct {
	Extractive     int
	SemiExtractive int
	SubExtractive  int
	Abstractive    int
	Failed         int
}

// Add tallies one bin.
func (c *Counts) Add(b Bin) {
	switch b {
	case BinExtractive:
		c.Extractive++
	case BinSemiExtractive:
		c.SemiExtractive++
	case BinSubExtractive:
		c.SubExtractive++
	case BinAbstractive:
		c.Abstractive++
	}
}

// Total returns the number of successfully processed documents.
func (c *Counts) Total() int {
	return c.Extractive + c.SemiExtractive + c.SubExtractive + c.Abstractive
}

// Run processes every pair and tallies the bins. A document failure is
// logged and counted, never fatal to the batch.
func Run(ctx context.Context, pipe *sumprep.Pipeline, pairs []*Pair, logger *slog.Logger) Counts {
	var counts Counts
	for _, pair := range pairs {
		doc, err := pipe.Process(ctx, pair.FullText, pair.Summary)
		if err != nil {
			logger.Warn("processing failed",
				slog.String("pair", pair.Name),
				slog.Any("error", err))
			counts.Failed++
			continue
		}
		counts.Add(Classify(doc))
	}
	return counts
}
