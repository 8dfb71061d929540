package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/DjordjeVuckovic/rerank-bench/internal/apperr"
)

// Corpus is the set of item ids known to exist.
type Corpus map[string]struct{}

func (c Corpus) Contains(itemID string) bool {
	_, ok := c[itemID]
	return ok
}

var corpusIDColumns = []string{"restaurant_id", "item_id"}

func LoadCorpus(path string) (Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus file: %w", err)
	}
	defer f.Close()

	return ParseCorpus(f, path)
}

// ParseCorpus reads the id column of a CSV corpus listing.
func ParseCorpus(r io.Reader, name string) (Corpus, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	headers, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperr.NewDataFormat(name, 0, "corpus file is empty")
	}
	if err != nil {
		return nil, apperr.NewDataFormatWrap(name, 1, "read header", err)
	}

	idCol := -1
	for i, h := range headers {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		for _, want := range corpusIDColumns {
			if h == want && idCol < 0 {
				idCol = i
			}
		}
	}
	if idCol < 0 {
		return nil, apperr.NewDataFormat(name, 1, fmt.Sprintf("missing id column (one of %s)", strings.Join(corpusIDColumns, ", ")))
	}

	corpus := make(Corpus)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperr.NewDataFormatWrap(name, 0, "read row", err)
		}
		line, _ := cr.FieldPos(0)
		if idCol >= len(row) {
			return nil, apperr.NewDataFormat(name, line, "row is missing the id column")
		}
		id := strings.TrimSpace(row[idCol])
		if id == "" {
			return nil, apperr.NewDataFormat(name, line, "empty item id")
		}
		corpus[id] = struct{}{}
	}

	return corpus, nil
}
