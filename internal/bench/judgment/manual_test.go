package judgment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/pool"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportForAnnotation_RoundTrip(t *testing.T) {
	pools := pool.NewPools()
	pools.Insert("q1", "a")
	pools.Insert("q1", "b")
	pools.Insert("q2", "c")
	queries := suite.NewQuerySet([]suite.Query{{ID: "q1", Text: "ramen"}})

	path := filepath.Join(t.TempDir(), "annotations.yaml")
	require.NoError(t, ExportForAnnotation(pools, queries, path))

	jf, err := ImportAnnotations(path)
	require.NoError(t, err)
	assert.Equal(t, "manual", jf.Strategy)
	require.Len(t, jf.Queries, 2)
	assert.Equal(t, "q1", jf.Queries[0].QueryID)
	assert.Equal(t, "ramen", jf.Queries[0].Text)
	assert.Equal(t, []GradedDoc{{DocID: "a", Grade: Unjudged}, {DocID: "b", Grade: Unjudged}}, jf.Queries[0].Docs)

	table, err := LoadTable(path, LoadOptions{})
	require.NoError(t, err)
	assert.Zero(t, table.Len())
}

func TestLoadTable_AnnotationFile(t *testing.T) {
	content := `
strategy: manual
queries:
  - query_id: q1
    docs:
      - doc_id: a
        grade: 2
      - doc_id: b
        grade: -1
      - doc_id: c
        grade: 0
`
	path := filepath.Join(t.TempDir(), "judged.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	table, err := LoadTable(path, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 2, "c": 0}, table.Grades("q1"))
}

func TestLoadTable_AnnotationFileInvalidGrade(t *testing.T) {
	content := `
queries:
  - query_id: q1
    docs:
      - doc_id: a
        grade: 5
`
	path := filepath.Join(t.TempDir(), "judged.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadTable(path, LoadOptions{})
	assert.ErrorContains(t, err, "outside {0,1,2}")
}
