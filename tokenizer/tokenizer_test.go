package tokenizer

import (
	"io"
	"log/slog"
	"reflect"
	"testing"
)

func newQuiet() *Tokenizer {
	return New(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "terminal period detaches",
			text: "The cost is 32,000 dollars.",
			want: []string{"The", "cost", "is", "32,000", "dollars", "."},
		},
		{
			name: "comma outside numbers separates",
			text: "a, b",
			want: []string{"a", ",", "b"},
		},
		{
			name: "time pattern preserved",
			text: "The train leaves at 12:30 today.",
			want: []string{"The", "train", "leaves", "at", "12:30", "today", "."},
		},
		{
			name: "date pattern preserved",
			text: "Due on 10/11, not later.",
			want: []string{"Due", "on", "10/11", ",", "not", "later", "."},
		},
		{
			name: "negation contraction",
			text: "He didn't go.",
			want: []string{"He", "did", "n't", "go", "."},
		},
		{
			name: "uppercase negation contraction",
			text: "DON'T STOP",
			want: []string{"DO", "N'T", "STOP"},
		},
		{
			name: "possessive contraction",
			text: "It's Tom's book.",
			want: []string{"It", "'s", "Tom", "'s", "book", "."},
		},
		{
			name: "future contraction",
			text: "They'll arrive and we're ready.",
			want: []string{"They", "'ll", "arrive", "and", "we", "'re", "ready", "."},
		},
		{
			name: "double quotes normalized and separated",
			text: `He said, "Stop."`,
			want: []string{"He", "said", ",", `"`, "Stop", `"`, "."},
		},
		{
			name: "curly quotes normalized",
			text: "She wrote “done” today.",
			want: []string{"She", "wrote", `"`, "done", `"`, "today", "."},
		},
		{
			name: "single quote pair",
			text: "He said 'hello there' loudly.",
			want: []string{"He", "said", "'", "hello", "there", "'", "loudly", "."},
		},
		{
			name: "possessive on word ending in s",
			text: "the boys' toys",
			want: []string{"the", "boys'", "toys"},
		},
		{
			name: "name apostrophe untouched",
			text: "O'Connor spoke to L'Oreal.",
			want: []string{"O'Connor", "spoke", "to", "L'Oreal", "."},
		},
		{
			name: "gerund restoration",
			text: "We were goin' home.",
			want: []string{"We", "were", "going", "home", "."},
		},
		{
			name: "ellipsis normalized",
			text: "Wait.... something happened",
			want: []string{"Wait", "...", "something", "happened"},
		},
		{
			name: "repeated terminal punctuation collapses",
			text: "Really?!? Yes!!",
			want: []string{"Really", "?", "Yes", "!"},
		},
		{
			name: "compound hyphen stays attached",
			text: "a well-known author",
			want: []string{"a", "well-known", "author"},
		},
		{
			name: "double hyphen is a long dash",
			text: "one thing--another thing",
			want: []string{"one", "thing", "--", "another", "thing"},
		},
		{
			name: "spaced hyphen is a dash",
			text: "one thing - another",
			want: []string{"one", "thing", "-", "another"},
		},
		{
			name: "brackets separate",
			text: "The result (all of it) stands.",
			want: []string{"The", "result", "(", "all", "of", "it", ")", "stands", "."},
		},
		{
			name: "nbsp and entities",
			text: "fish&nbsp;&amp;&nbsp;chips",
			want: []string{"fish", "&", "chips"},
		},
		{
			name: "stray symbols stripped",
			text: "odd *marks* around_words",
			want: []string{"odd", "marks", "aroundwords"},
		},
		{
			name: "terminal period after quote",
			text: `She called it "fine."`,
			want: []string{"She", "called", "it", `"`, "fine", `"`, "."},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := newQuiet()
			got := tok.Tokenize(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTokenizeMasksEmailAndURL(t *testing.T) {
	tok := newQuiet()

	got := tok.Tokenize("Write to a@b.com or visit http://x.org today.")
	want := []string{"Write", "to", "a@b.com", "or", "visit", "http://x.org", "today", "."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenizeOpenQuoteScopedPerCall(t *testing.T) {
	tok := newQuiet()

	// A dangling open quote in one call must not leak into the next: the
	// apostrophe below would otherwise be classified as a closing quote.
	tok.Tokenize("He said 'wait")

	got := tok.Tokenize("the boys' toys")
	want := []string{"the", "boys'", "toys"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("open-quote state leaked across calls: got %v, want %v", got, want)
	}
}

func TestTokenizeAbbreviationsAttached(t *testing.T) {
	tok := newQuiet()

	got := tok.Tokenize("He lives in the U.S. now")
	want := []string{"He", "lives", "in", "the", "U.S.", "now"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}
