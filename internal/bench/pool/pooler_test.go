package pool

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/rerank-bench/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPools(t *testing.T) {
	p := NewPools()

	assert.True(t, p.Insert("q1", "a"))
	assert.True(t, p.Insert("q1", "b"))
	assert.False(t, p.Insert("q1", "a"))
	p.Add("q0")

	assert.True(t, p.Has("q0"))
	assert.True(t, p.Contains("q1", "b"))
	assert.False(t, p.Contains("q1", "z"))
	assert.False(t, p.Contains("q9", "a"))
	assert.Equal(t, []string{"a", "b"}, p.Items("q1"))
	assert.Equal(t, 2, p.Size("q1"))
	assert.Equal(t, []string{"q0", "q1"}, p.QueryIDs())
}

func TestParseCandidates(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		jsonl := `{"query_id": "q1", "candidates": [{"restaurant_id": "a", "bm25_score": 12.5}, {"restaurant_id": "b", "bm25_score": 9.1}]}

{"query_id": "q2", "candidates": [{"item_id": "c"}]}
`
		p, err := ParseCandidates(strings.NewReader(jsonl), "cands.jsonl", ReadOptions{})
		require.NoError(t, err)
		assert.Equal(t, 2, p.Len())
		assert.True(t, p.Contains("q1", "a"))
		assert.True(t, p.Contains("q2", "c"))
	})

	t.Run("repeated candidate kept once", func(t *testing.T) {
		jsonl := `{"query_id": "q1", "candidates": [{"restaurant_id": "a"}, {"restaurant_id": "a"}]}`

		p, err := ParseCandidates(strings.NewReader(jsonl), "cands.jsonl", ReadOptions{})
		require.NoError(t, err)
		assert.Equal(t, 1, p.Size("q1"))
	})

	t.Run("duplicate query", func(t *testing.T) {
		jsonl := "{\"query_id\": \"q1\", \"candidates\": []}\n{\"query_id\": \"q1\", \"candidates\": []}\n"

		_, err := ParseCandidates(strings.NewReader(jsonl), "cands.jsonl", ReadOptions{})

		var de *apperr.DataFormatError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, 2, de.Line)
	})

	t.Run("pool over max size", func(t *testing.T) {
		jsonl := `{"query_id": "q1", "candidates": [{"restaurant_id": "a"}, {"restaurant_id": "b"}, {"restaurant_id": "c"}]}`

		_, err := ParseCandidates(strings.NewReader(jsonl), "cands.jsonl", ReadOptions{MaxSize: 2})
		assert.ErrorContains(t, err, "exceeds 2 items")
	})

	t.Run("unknown corpus item", func(t *testing.T) {
		jsonl := `{"query_id": "q1", "candidates": [{"restaurant_id": "a"}, {"restaurant_id": "ghost"}]}`
		known := func(id string) bool { return id == "a" }

		_, err := ParseCandidates(strings.NewReader(jsonl), "cands.jsonl", ReadOptions{KnownItem: known})
		assert.ErrorContains(t, err, `item "ghost" not in corpus`)
	})

	t.Run("missing query id", func(t *testing.T) {
		_, err := ParseCandidates(strings.NewReader(`{"candidates": []}`), "cands.jsonl", ReadOptions{})
		assert.ErrorContains(t, err, "missing query_id")
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := ParseCandidates(strings.NewReader(`{"query_id": `), "cands.jsonl", ReadOptions{})
		assert.ErrorContains(t, err, "cands.jsonl:1")
	})
}

func TestLoadPools_YAML(t *testing.T) {
	content := `
suite_name: dev
queries:
  - query_id: q1
    query_desc: sushi
    docs:
      - doc_id: a
        score: 3.5
      - doc_id: b
`
	path := filepath.Join(t.TempDir(), "pool.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	p, err := LoadPools(path, ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, p.Items("q1"))
}

func TestLoadPools_JSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bm25_candidates_dev_top500.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"query_id": "q1", "candidates": [{"restaurant_id": "a"}]}`+"\n"), 0644))

	p, err := LoadPools(path, ReadOptions{})
	require.NoError(t, err)
	assert.True(t, p.Contains("q1", "a"))
}
