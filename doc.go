// Package sumprep prepares document/summary pairs for summarization
// research: reconciling field discrepancies, splitting sentences, tokenizing
// and classifying how extractive a summary is relative to its document.
//
// # Quick Start
//
//	pipe, err := sumprep.NewPipeline(seg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	doc, err := pipe.Process(ctx, fullTextParas, summaryParas)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("extractive: %v\n", doc.Extractive())
//
// seg is any splitter.Segmenter, for example the statistical detector in
// package boundary or its rule-based fallback.
//
// # Processing Order
//
// Pipeline.Process runs cross-field reconciliation exactly once before any
// sentence segmentation, then memoizes the segmented sentences. Later passes
// therefore always observe text consistent with the cached sentences.
//
// # Thread Safety
//
// A Pipeline is safe for concurrent use if its Segmenter and Tagger are.
// Documents returned by Process are immutable and safe to share.
package sumprep
