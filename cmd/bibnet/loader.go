package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/scimetry/bibnet/corpus"
)

// loadCorpus reads a CSV document table. The header row names the
// columns (case-insensitive); unknown columns are ignored. Rows without
// an id column get a positional identifier.
func loadCorpus(path string) (*corpus.Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s: no document rows", path)
	}

	col := make(map[string]int)
	for i, name := range records[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}

		return strings.TrimSpace(row[i])
	}
	number := func(row []string, name string) int {
		n, _ := strconv.Atoi(field(row, name))

		return n
	}

	docs := make([]corpus.Document, 0, len(records)-1)
	for n, row := range records[1:] {
		id := field(row, "id")
		if id == "" {
			id = fmt.Sprintf("doc%d", n+1)
		}
		docs = append(docs, corpus.Document{
			ID:             id,
			Title:          field(row, "title"),
			Abstract:       field(row, "abstract"),
			AuthorKeywords: field(row, "author_keywords"),
			IndexKeywords:  field(row, "index_keywords"),
			Authors:        field(row, "authors"),
			Affiliations:   field(row, "affiliations"),
			Countries:      field(row, "countries"),
			References:     field(row, "references"),
			CitedBy:        number(row, "cited_by"),
			Year:           number(row, "year"),
			ShortLabel:     field(row, "short_label"),
		})
	}

	return corpus.New(docs)
}
