package boundary

import (
	"context"
	"errors"
	"os"
	"testing"
)

const (
	testModelPath = "testdata/model_optimized.onnx"
	testVocabPath = "testdata/sentencepiece.bpe.model"
)

// skipIfNoModel skips the test if the ONNX model is not available.
func skipIfNoModel(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(testModelPath); err != nil {
		t.Skipf("Skipping: ONNX model not available at %s", testModelPath)
	}
}

// skipIfNoVocab skips the test if the vocabulary model is not available.
func skipIfNoVocab(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(testVocabPath); err != nil {
		t.Skipf("Skipping: vocabulary not available at %s", testVocabPath)
	}
}

func TestNewDetector(t *testing.T) {
	skipIfNoModel(t)
	skipIfNoVocab(t)

	det, err := NewDetector(testModelPath, testVocabPath)
	if err != nil {
		t.Fatalf("NewDetector: %v", err)
	}
	defer func() { _ = det.Close() }()

	if det.vocab == nil {
		t.Error("expected non-nil vocab")
	}
	if det.pool == nil {
		t.Error("expected non-nil pool")
	}
}

func TestNewDetectorModelNotFound(t *testing.T) {
	skipIfNoVocab(t)

	_, err := NewDetector("nonexistent/model.onnx", testVocabPath)
	if !errors.Is(err, ErrModelNotFound) {
		t.Fatalf("NewDetector error = %v, want ErrModelNotFound", err)
	}
}

func TestDetectorSegment(t *testing.T) {
	skipIfNoModel(t)
	skipIfNoVocab(t)

	det, err := NewDetector(testModelPath, testVocabPath)
	if err != nil {
		t.Fatalf("NewDetector: %v", err)
	}
	defer func() { _ = det.Close() }()

	sents, err := det.Segment(context.Background(),
		"The mayor resigned yesterday. The council met at noon.")
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(sents) != 2 {
		t.Errorf("got %d sentences, want 2: %q", len(sents), sents)
	}
}

func TestDetectorIsComplete(t *testing.T) {
	skipIfNoModel(t)
	skipIfNoVocab(t)

	det, err := NewDetector(testModelPath, testVocabPath)
	if err != nil {
		t.Fatalf("NewDetector: %v", err)
	}
	defer func() { _ = det.Close() }()

	complete, _, err := det.IsComplete(context.Background(), "This is a complete sentence.")
	if err != nil {
		t.Fatalf("IsComplete: %v", err)
	}
	if !complete {
		t.Error("IsComplete = false for a terminated sentence")
	}

	if _, _, err := det.IsComplete(context.Background(), ""); err != nil {
		t.Errorf("IsComplete(\"\") error: %v", err)
	}
}

func TestPoolDo(t *testing.T) {
	skipIfNoModel(t)

	pool, err := NewPool(testModelPath, 2)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	defer func() { _ = pool.Close() }()

	if pool.Size() != 2 {
		t.Errorf("Size = %d, want 2", pool.Size())
	}

	ran := 0
	err = pool.Do(context.Background(), func(s1 *Session) error {
		if s1 == nil {
			t.Fatal("Do passed a nil session")
		}
		ran++
		// With two sessions a nested checkout must get the other one.
		return pool.Do(context.Background(), func(s2 *Session) error {
			if s2 == s1 {
				t.Error("same session checked out twice")
			}
			ran++
			return nil
		})
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if ran != 2 {
		t.Errorf("callbacks ran %d times, want 2", ran)
	}
}

func TestPoolDoPropagatesError(t *testing.T) {
	skipIfNoModel(t)

	pool, err := NewPool(testModelPath, 1)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	defer func() { _ = pool.Close() }()

	wantErr := errors.New("inference failed")
	if err := pool.Do(context.Background(), func(*Session) error {
		return wantErr
	}); !errors.Is(err, wantErr) {
		t.Errorf("Do error = %v, want %v", err, wantErr)
	}

	// The session must be back in the pool after a failed callback.
	if err := pool.Do(context.Background(), func(*Session) error {
		return nil
	}); err != nil {
		t.Errorf("Do after failure: %v", err)
	}
}

func TestPoolDoRespectsContext(t *testing.T) {
	skipIfNoModel(t)

	pool, err := NewPool(testModelPath, 1)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	defer func() { _ = pool.Close() }()

	err = pool.Do(context.Background(), func(*Session) error {
		// The only session is checked out here, so a canceled checkout
		// cannot proceed.
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return pool.Do(ctx, func(*Session) error { return nil })
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Do error = %v, want context.Canceled", err)
	}
}

func TestPoolDoAfterClose(t *testing.T) {
	skipIfNoModel(t)

	pool, err := NewPool(testModelPath, 1)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	err = pool.Do(context.Background(), func(*Session) error { return nil })
	if !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Do error = %v, want ErrPoolClosed", err)
	}
}
