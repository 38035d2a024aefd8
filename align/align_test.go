package align

import (
	"io"
	"log/slog"
	"reflect"
	"testing"
)

func newQuiet() *Aligner {
	return New(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestReconcileLeadingCase(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		summary string
		want    string
	}{
		{
			name:    "uppercase lead recased from document",
			doc:     "Mayor Quimby announced a new budget on Tuesday.",
			summary: "MAYOR QUIMBY announced a new budget.",
			want:    "Mayor Quimby announced a new budget.",
		},
		{
			name:    "single uppercase word recased",
			doc:     "Investigators opened the case on Monday.",
			summary: "INVESTIGATORS opened the case.",
			want:    "Investigators opened the case.",
		},
		{
			name:    "mixed case lead untouched",
			doc:     "Mayor Quimby announced a new budget on Tuesday.",
			summary: "Mayor Quimby announced a new budget.",
			want:    "Mayor Quimby announced a new budget.",
		},
		{
			name:    "all caps title untouched",
			doc:     "The markets closed higher on Friday.",
			summary: "THE MARKETS IN BRIEF",
			want:    "THE MARKETS IN BRIEF",
		},
		{
			name:    "single word summary untouched",
			doc:     "Corrections for the week.",
			summary: "CORRECTIONS",
			want:    "CORRECTIONS",
		},
		{
			name:    "divergent text untouched",
			doc:     "A completely different opening line here.",
			summary: "MAYOR QUIMBY announced a new budget.",
			want:    "MAYOR QUIMBY announced a new budget.",
		},
		{
			name:    "whole summary matches document prefix",
			doc:     "Markets closed higher. Analysts cheered.",
			summary: "MARKETS CLOSED HIGHER.",
			want:    "Markets closed higher.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newQuiet()
			got := a.Reconcile([]string{tt.doc}, []string{tt.summary})
			if got.Summary[0] != tt.want {
				t.Errorf("Reconcile summary = %q, want %q", got.Summary[0], tt.want)
			}
			if got.FullText[0] != tt.doc {
				t.Errorf("Reconcile modified document: %q", got.FullText[0])
			}
		})
	}
}

func TestReconcileStitchedSummaryWords(t *testing.T) {
	a := newQuiet()

	doc := []string{"The mayor of the city resigned yesterday."}
	summary := []string{"The mayor ofthe city resigned."}

	got := a.Reconcile(doc, summary)
	want := "The mayor of the city resigned."
	if got.Summary[0] != want {
		t.Errorf("Reconcile summary = %q, want %q", got.Summary[0], want)
	}
}

func TestReconcileStitchRequiresAttestation(t *testing.T) {
	a := newQuiet()

	// The separated form never appears in the document, so the summary is
	// left alone.
	doc := []string{"An unrelated document paragraph."}
	summary := []string{"The mayor ofthe city resigned."}

	got := a.Reconcile(doc, summary)
	if got.Summary[0] != summary[0] {
		t.Errorf("Reconcile summary = %q, want unchanged", got.Summary[0])
	}
}

func TestReconcileSplitDocWords(t *testing.T) {
	a := newQuiet()

	doc := []string{"She said they can not attend.", "Others can not either."}
	summary := []string{"They cannot attend this year."}

	got := a.Reconcile(doc, summary)
	want := []string{"She said they cannot attend.", "Others cannot either."}
	if !reflect.DeepEqual(got.FullText, want) {
		t.Errorf("Reconcile doc = %q, want %q", got.FullText, want)
	}
}

func TestReconcileWholeWordAttestationOnly(t *testing.T) {
	a := newQuiet()

	// "cannot" appears only inside another word in the summary, so the doc
	// keeps its split form.
	doc := []string{"They can not attend."}
	summary := []string{"The scannotron results arrived."}

	got := a.Reconcile(doc, summary)
	if got.FullText[0] != doc[0] {
		t.Errorf("Reconcile doc = %q, want unchanged", got.FullText[0])
	}
}

func TestReconcileIdempotent(t *testing.T) {
	a := newQuiet()

	doc := []string{
		"Mayor Quimby said they can not attend the gala of the year.",
		"The event was moved to the week end.",
	}
	summary := []string{
		"MAYOR QUIMBY said they cannot attend the gala ofthe year onthe weekend.",
	}

	first := a.Reconcile(doc, summary)
	second := a.Reconcile(first.FullText, first.Summary)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Reconcile not idempotent:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}

func TestReconcilePreservesParagraphCounts(t *testing.T) {
	a := newQuiet()

	doc := []string{"One.", "Two.", "Three."}
	summary := []string{"A summary.", "Another."}

	got := a.Reconcile(doc, summary)
	if len(got.FullText) != len(doc) || len(got.Summary) != len(summary) {
		t.Fatalf("paragraph counts changed: %d/%d -> %d/%d",
			len(doc), len(summary), len(got.FullText), len(got.Summary))
	}
}

func TestReconcileEmptyInputs(t *testing.T) {
	a := newQuiet()

	got := a.Reconcile(nil, nil)
	if len(got.FullText) != 0 || len(got.Summary) != 0 {
		t.Fatalf("Reconcile(nil, nil) = %+v, want empty", got)
	}
}

func TestContainsWholeWord(t *testing.T) {
	tests := []struct {
		para string
		word string
		want bool
	}{
		{"they cannot attend", "cannot", true},
		{"cannot attend", "cannot", true},
		{"they cannot", "cannot", true},
		{"the scannotron results", "cannot", false},
		{"say cannot.", "cannot", true},
		{"", "cannot", false},
	}

	for _, tt := range tests {
		if got := containsWholeWord(tt.para, tt.word); got != tt.want {
			t.Errorf("containsWholeWord(%q, %q) = %v, want %v", tt.para, tt.word, got, tt.want)
		}
	}
}
