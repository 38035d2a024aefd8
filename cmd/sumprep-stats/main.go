package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	sumprep "github.com/jamesainslie/go-sumprep"
	"github.com/jamesainslie/go-sumprep/boundary"
	"github.com/jamesainslie/go-sumprep/idf"
	"github.com/jamesainslie/go-sumprep/internal/stats"
	"github.com/jamesainslie/go-sumprep/splitter"
	"github.com/jamesainslie/go-sumprep/tokenizer"
)

func main() {
	var (
		corpusDir = flag.String("corpus", "", "Directory of NAME.doc.txt / NAME.sum.txt pairs (required)")
		modelPath = flag.String("model", "", "Path to ONNX boundary model (optional; rule-based fallback otherwise)")
		vocabPath = flag.String("vocab", "", "Path to SentencePiece vocabulary file")
		threshold = flag.Float64("threshold", 0.025, "Boundary detection threshold")
		verbose   = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *corpusDir == "" {
		fmt.Fprintln(os.Stderr, "error: -corpus required")
		flag.Usage()
		os.Exit(1)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var seg splitter.Segmenter = boundary.Heuristic{}
	if *modelPath != "" {
		if *vocabPath == "" {
			fmt.Fprintln(os.Stderr, "error: -vocab required with -model")
			os.Exit(1)
		}
		det, err := boundary.NewDetector(*modelPath, *vocabPath,
			boundary.WithThreshold(float32(*threshold)),
			boundary.WithLogger(logger))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error creating detector: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = det.Close() }()
		seg = det
	}

	pipe, err := sumprep.NewPipeline(seg, sumprep.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating pipeline: %v\n", err)
		os.Exit(1)
	}

	pairs, err := stats.LoadDir(*corpusDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading corpus: %v\n", err)
		os.Exit(1)
	}
	if len(pairs) == 0 {
		fmt.Fprintf(os.Stderr, "no document/summary pairs found in %s\n", *corpusDir)
		os.Exit(1)
	}

	counts := stats.Run(context.Background(), pipe, pairs, logger)

	fmt.Printf("Pairs processed:  %d\n", counts.Total())
	fmt.Printf("  extractive:      %d\n", counts.Extractive)
	fmt.Printf("  semi-extractive: %d\n", counts.SemiExtractive)
	fmt.Printf("  sub-extractive:  %d\n", counts.SubExtractive)
	fmt.Printf("  abstractive:     %d\n", counts.Abstractive)
	fmt.Printf("Failed:           %d\n", counts.Failed)

	table := buildIDFTable(pairs)
	fmt.Printf("IDF table:        %d documents, %d distinct stems\n",
		table.NumDocs(), table.Size())
}

// buildIDFTable counts document frequencies over the full texts, one
// corpus pair per document.
func buildIDFTable(pairs []*stats.Pair) *idf.Table {
	tok := tokenizer.New()
	table := idf.New(idf.WithStemming(true))
	for _, pair := range pairs {
		var tokens []string
		for _, para := range pair.FullText {
			tokens = append(tokens, tok.Tokenize(para)...)
		}
		table.AddDoc(tokens)
	}
	return table
}
