package judgment

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/rerank-bench/internal/apperr"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/metrics"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/pool"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/suite"
	"gopkg.in/yaml.v3"
)

// ExportForAnnotation writes a YAML template listing every pooled item as unjudged.
// Query texts are filled in from queries when it is non-nil.
func ExportForAnnotation(pools *pool.Pools, queries *suite.QuerySet, outputPath string) error {
	jf := JudgmentFile{
		Strategy: "manual",
		Queries:  make([]JudgmentEntry, 0, pools.Len()),
	}

	for _, qID := range pools.QueryIDs() {
		entry := JudgmentEntry{QueryID: qID}
		if queries != nil {
			if q, ok := queries.Get(qID); ok {
				entry.Text = q.Text
			}
		}
		for _, itemID := range pools.Items(qID) {
			entry.Docs = append(entry.Docs, GradedDoc{DocID: itemID, Grade: Unjudged})
		}
		jf.Queries = append(jf.Queries, entry)
	}

	data, err := yaml.Marshal(&jf)
	if err != nil {
		return fmt.Errorf("marshal judgment template: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write judgment template: %w", err)
	}
	return nil
}

func ImportAnnotations(path string) (*JudgmentFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read judgment file: %w", err)
	}
	var jf JudgmentFile
	if err := yaml.Unmarshal(data, &jf); err != nil {
		return nil, apperr.NewDataFormatWrap(path, 0, "parse judgment file", err)
	}
	return &jf, nil
}

// TableFromAnnotations converts an annotation file into a judgment table,
// skipping documents still marked Unjudged.
func TableFromAnnotations(jf *JudgmentFile, name string, opts LoadOptions) (*Table, error) {
	t := NewTable()
	skipped := 0

	for i, entry := range jf.Queries {
		if entry.QueryID == "" {
			return nil, apperr.NewDataFormat(name, 0, fmt.Sprintf("query at index %d has no query_id", i))
		}
		for _, d := range entry.Docs {
			if d.Grade == Unjudged {
				skipped++
				continue
			}
			if d.DocID == "" {
				return nil, apperr.NewDataFormat(name, 0, fmt.Sprintf("query %q has a document without doc_id", entry.QueryID))
			}
			if !metrics.ValidGrade(d.Grade) {
				return nil, apperr.NewDataFormat(name, 0, fmt.Sprintf("query %q doc %q: grade %d outside {0,1,2}", entry.QueryID, d.DocID, d.Grade))
			}
			if opts.KnownItem != nil && !opts.KnownItem(d.DocID) {
				return nil, apperr.NewDataFormat(name, 0, fmt.Sprintf("item %q not in corpus", d.DocID))
			}
			if t.Set(entry.QueryID, d.DocID, d.Grade) {
				slog.Warn("Judgment overridden by later entry", "file", name, "query", entry.QueryID, "item", d.DocID, "grade", d.Grade)
			}
		}
	}

	if skipped > 0 {
		slog.Info("Skipped unjudged annotations", "file", name, "count", skipped)
	}
	return t, nil
}
