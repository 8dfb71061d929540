package judgment

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/rerank-bench/internal/apperr"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/metrics"
)

// LoadTable reads judgments from a qrels file, or from a YAML annotation file
// when the extension is .yaml or .yml.
func LoadTable(path string, opts LoadOptions) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		jf, err := ImportAnnotations(path)
		if err != nil {
			return nil, err
		}
		return TableFromAnnotations(jf, path, opts)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open judgment file: %w", err)
	}
	defer f.Close()

	return ParseQrels(f, path, opts)
}

// ParseQrels reads "query_id<TAB>item_id<TAB>grade" rows. Whitespace-separated
// four-column TREC rows ("query_id iter item_id grade") are accepted too.
func ParseQrels(r io.Reader, name string, opts LoadOptions) (*Table, error) {
	t := NewTable()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}

		queryID, itemID, gradeStr, err := splitQrelsRow(raw)
		if err != nil {
			return nil, apperr.NewDataFormatWrap(name, line, "malformed qrels row", err)
		}

		grade, err := strconv.Atoi(gradeStr)
		if err != nil {
			return nil, apperr.NewDataFormatWrap(name, line, fmt.Sprintf("non-integer grade %q", gradeStr), err)
		}
		if !metrics.ValidGrade(grade) {
			return nil, apperr.NewDataFormat(name, line, fmt.Sprintf("grade %d outside {0,1,2}", grade))
		}
		if opts.KnownItem != nil && !opts.KnownItem(itemID) {
			return nil, apperr.NewDataFormat(name, line, fmt.Sprintf("item %q not in corpus", itemID))
		}

		if t.Set(queryID, itemID, grade) {
			slog.Warn("Judgment overridden by later row", "file", name, "line", line, "query", queryID, "item", itemID, "grade", grade)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, apperr.NewDataFormatWrap(name, line+1, "read judgments", err)
	}

	return t, nil
}

func splitQrelsRow(raw string) (queryID, itemID, grade string, err error) {
	if fields := strings.Split(raw, "\t"); len(fields) == 3 {
		queryID, itemID, grade = strings.TrimSpace(fields[0]), strings.TrimSpace(fields[1]), strings.TrimSpace(fields[2])
	} else if fields := strings.Fields(raw); len(fields) == 4 {
		queryID, itemID, grade = fields[0], fields[2], fields[3]
	} else {
		return "", "", "", fmt.Errorf("expected 3 tab-separated columns, got %d", len(strings.Split(raw, "\t")))
	}

	if queryID == "" {
		return "", "", "", fmt.Errorf("missing query_id")
	}
	if itemID == "" {
		return "", "", "", fmt.Errorf("missing item_id")
	}
	return queryID, itemID, grade, nil
}
