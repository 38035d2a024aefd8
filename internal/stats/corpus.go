package stats

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File naming convention for corpus directories: each pair is NAME.doc.txt
// plus NAME.sum.txt, paragraphs separated by blank lines.
const (
	docSuffix  = ".doc.txt"
	summSuffix = ".sum.txt"
)

// Pair is one corpus entry: a document's full text and its summary as
// paragraph lists.
type Pair struct {
	Name     string
	FullText []string
	Summary  []string
}

// LoadPair reads one document/summary file pair.
func LoadPair(name, docPath, summPath string) (*Pair, error) {
	docText, err := os.ReadFile(docPath)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	summText, err := os.ReadFile(summPath)
	if err != nil {
		return nil, fmt.Errorf("reading summary: %w", err)
	}

	return &Pair{
		Name:     name,
		FullText: ParseParagraphs(string(docText)),
		Summary:  ParseParagraphs(string(summText)),
	}, nil
}

// LoadDir loads every *.doc.txt in dir that has a matching *.sum.txt.
func LoadDir(dir string) ([]*Pair, error) {
	docPaths, err := filepath.Glob(filepath.Join(dir, "*"+docSuffix))
	if err != nil {
		return nil, fmt.Errorf("listing corpus: %w", err)
	}

	var pairs []*Pair
	for _, docPath := range docPaths {
		name := strings.TrimSuffix(filepath.Base(docPath), docSuffix)
		summPath := filepath.Join(dir, name+summSuffix)
		if _, err := os.Stat(summPath); err != nil {
			continue
		}

		pair, err := LoadPair(name, docPath, summPath)
		if err != nil {
			return nil, fmt.Errorf("pair %s: %w", name, err)
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

// ParseParagraphs splits plain text into paragraphs at blank lines, joining
// wrapped lines within a paragraph with single spaces.
func ParseParagraphs(text string) []string {
	var paras []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			paras = append(paras, strings.Join(current, " "))
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return paras
}
