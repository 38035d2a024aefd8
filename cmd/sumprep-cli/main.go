package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	sumprep "github.com/jamesainslie/go-sumprep"
	"github.com/jamesainslie/go-sumprep/boundary"
	"github.com/jamesainslie/go-sumprep/splitter"
	"github.com/jamesainslie/go-sumprep/tokenizer"
)

func main() {
	var (
		modelPath = flag.String("model", "", "Path to ONNX boundary model (optional; rule-based fallback otherwise)")
		vocabPath = flag.String("vocab", "", "Path to SentencePiece vocabulary file")
		threshold = flag.Float64("threshold", 0.025, "Boundary detection threshold")
		mode      = flag.String("mode", "tokenize", "Mode: tokenize, split or compare")
		summary   = flag.String("summary", "", "Summary text for compare mode")
	)
	flag.Parse()

	text := strings.Join(flag.Args(), " ")
	if text == "" {
		fmt.Fprintln(os.Stderr, "Usage: sumprep-cli [OPTIONS] TEXT")
		flag.PrintDefaults()
		os.Exit(1)
	}

	seg, cleanup, err := newSegmenter(*modelPath, *vocabPath, float32(*threshold))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating segmenter: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	ctx := context.Background()

	switch *mode {
	case "tokenize":
		tok := tokenizer.New()
		tokens := tok.Tokenize(text)
		fmt.Printf("Text: %q\n", text)
		fmt.Printf("Tokens (%d):\n", len(tokens))
		for i, t := range tokens {
			fmt.Printf("  %d: %q\n", i+1, t)
		}

	case "split":
		sp := splitter.New(seg)
		sentences, err := sp.Split(ctx, text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Text: %q\n", text)
		fmt.Printf("Sentences (%d):\n", len(sentences))
		for i, s := range sentences {
			fmt.Printf("  %d: %q\n", i+1, s)
		}

	case "compare":
		if *summary == "" {
			fmt.Fprintln(os.Stderr, "Error: -summary required for compare mode")
			os.Exit(1)
		}
		pipe, err := sumprep.NewPipeline(seg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		doc, err := pipe.Process(ctx, []string{text}, []string{*summary})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Extractive:      %v\n", doc.Extractive())
		fmt.Printf("Semi-extractive: %v\n", doc.SemiExtractive())
		fmt.Printf("Sub-extractive:  %v\n", doc.SubExtractive())

	default:
		fmt.Fprintf(os.Stderr, "Unknown mode: %s\n", *mode)
		os.Exit(1)
	}
}

// newSegmenter picks the statistical detector when model files are given,
// otherwise the rule-based fallback.
func newSegmenter(modelPath, vocabPath string, threshold float32) (splitter.Segmenter, func(), error) {
	if modelPath == "" {
		return boundary.Heuristic{}, func() {}, nil
	}
	if vocabPath == "" {
		return nil, nil, fmt.Errorf("-vocab required with -model")
	}

	det, err := boundary.NewDetector(modelPath, vocabPath,
		boundary.WithThreshold(threshold))
	if err != nil {
		return nil, nil, err
	}
	return det, func() { _ = det.Close() }, nil
}
