package sumprep

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrNoSegmenter indicates a Pipeline was constructed without a
	// sentence-boundary segmenter.
	ErrNoSegmenter = errors.New("sumprep: no segmenter configured")

	// ErrEmptyDocument indicates a document with no full-text paragraphs.
	ErrEmptyDocument = errors.New("sumprep: empty document")
)
