package suite

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/DjordjeVuckovic/rerank-bench/internal/apperr"
)

const (
	ColumnQueryID   = "query_id"
	ColumnQueryText = "query_text"
)

func LoadQueries(path string) (*QuerySet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open query file: %w", err)
	}
	defer f.Close()

	return ParseQueries(f, path)
}

// ParseQueries reads a CSV query list with a header row. name is used in errors.
func ParseQueries(r io.Reader, name string) (*QuerySet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	headers, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperr.NewDataFormat(name, 0, "query file is empty")
	}
	if err != nil {
		return nil, apperr.NewDataFormatWrap(name, 1, "read header", err)
	}

	idCol, textCol := -1, -1
	for i, h := range headers {
		switch strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) {
		case ColumnQueryID:
			idCol = i
		case ColumnQueryText:
			textCol = i
		}
	}
	if idCol < 0 {
		return nil, apperr.NewDataFormat(name, 1, fmt.Sprintf("missing column %q", ColumnQueryID))
	}
	if textCol < 0 {
		return nil, apperr.NewDataFormat(name, 1, fmt.Sprintf("missing column %q", ColumnQueryText))
	}

	var queries []Query
	seen := make(map[string]int)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperr.NewDataFormatWrap(name, csvErrorLine(err), "read row", err)
		}
		line, _ := cr.FieldPos(0)
		if len(row) != len(headers) {
			return nil, apperr.NewDataFormat(name, line, fmt.Sprintf("expected %d columns, got %d", len(headers), len(row)))
		}

		id := strings.TrimSpace(row[idCol])
		if id == "" {
			return nil, apperr.NewDataFormat(name, line, "empty query_id")
		}
		if prev, dup := seen[id]; dup {
			return nil, apperr.NewDataFormat(name, line, fmt.Sprintf("duplicate query_id %q (first on line %d)", id, prev))
		}
		seen[id] = line

		queries = append(queries, Query{ID: id, Text: row[textCol]})
	}

	return NewQuerySet(queries), nil
}

func csvErrorLine(err error) int {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return pe.Line
	}
	return 0
}
