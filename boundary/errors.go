// Package boundary provides first-pass sentence boundary detection for the
// splitter: a statistical detector backed by wtpsplit/SaT ONNX models, and a
// rule-based fallback for when no model is available.
package boundary

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrModelNotFound indicates the ONNX model file does not exist.
	ErrModelNotFound = errors.New("boundary: model file not found")

	// ErrInvalidModel indicates a model file exists but is malformed.
	ErrInvalidModel = errors.New("boundary: invalid model format")

	// ErrVocabFailed indicates subword vocabulary initialization failed.
	ErrVocabFailed = errors.New("boundary: vocabulary initialization failed")

	// ErrPoolClosed indicates a checkout on a closed session pool.
	ErrPoolClosed = errors.New("boundary: session pool closed")
)
