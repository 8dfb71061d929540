package submission

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

func TestParse(t *testing.T) {
	t.Run("valid submission keeps file order", func(t *testing.T) {
		jsonl := `{"query_id": "q2", "candidates": [{"restaurant_id": "b", "score": 0.9}, {"restaurant_id": "a", "score": 0.4}]}
{"query_id": "q1", "candidates": [{"restaurant_id": "c", "score": 3}]}
`
		sub, err := Parse(strings.NewReader(jsonl), "run.jsonl")
		require.NoError(t, err)
		assert.Equal(t, 2, sub.Len())
		assert.Equal(t, "q2", sub.Entries[0].QueryID)
		assert.Equal(t, 1, sub.Entries[0].Line)

		e, ok := sub.Get("q2")
		require.True(t, ok)
		assert.Equal(t, []string{"b", "a"}, e.ItemIDs())
		assert.Equal(t, 0.4, e.Candidates[1].Score)
		assert.False(t, sub.Has("q3"))
	})

	t.Run("unsorted scores are kept as given", func(t *testing.T) {
		jsonl := `{"query_id": "q1", "candidates": [{"restaurant_id": "a", "score": 0.1}, {"restaurant_id": "b", "score": 0.9}]}`

		sub, err := Parse(strings.NewReader(jsonl), "run.jsonl")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, sub.Entries[0].ItemIDs())
	})

	t.Run("bm25_score and item_id fallbacks", func(t *testing.T) {
		jsonl := `{"query_id": "q1", "candidates": [{"item_id": "a", "bm25_score": 11.2}]}`

		sub, err := Parse(strings.NewReader(jsonl), "run.jsonl")
		require.NoError(t, err)
		assert.Equal(t, Candidate{ItemID: "a", Score: 11.2}, sub.Entries[0].Candidates[0])
	})

	t.Run("blank lines are skipped", func(t *testing.T) {
		jsonl := "\n" + `{"query_id": "q1", "candidates": [{"restaurant_id": "a", "score": 1}]}` + "\n\n"

		sub, err := Parse(strings.NewReader(jsonl), "run.jsonl")
		require.NoError(t, err)
		assert.Equal(t, 2, sub.Entries[0].Line)
	})
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		line    int
		message string
	}{
		{
			name:    "invalid json",
			input:   `{"query_id": "q1", `,
			line:    1,
			message: "invalid JSON",
		},
		{
			name:    "missing query_id",
			input:   `{"candidates": [{"restaurant_id": "a", "score": 1}]}`,
			line:    1,
			message: "query_id must be a string",
		},
		{
			name:    "numeric query_id",
			input:   `{"query_id": 7, "candidates": [{"restaurant_id": "a", "score": 1}]}`,
			line:    1,
			message: "query_id must be a string",
		},
		{
			name:    "missing candidates",
			input:   `{"query_id": "q1"}`,
			line:    1,
			message: "candidates must be a list",
		},
		{
			name:    "empty candidates",
			input:   `{"query_id": "q1", "candidates": []}`,
			line:    1,
			message: "non-empty list",
		},
		{
			name:    "candidate not an object",
			input:   `{"query_id": "q1", "candidates": ["a"]}`,
			line:    1,
			message: "must be an object",
		},
		{
			name:    "missing item id",
			input:   `{"query_id": "q1", "candidates": [{"score": 1}]}`,
			line:    1,
			message: "missing restaurant_id",
		},
		{
			name:    "missing score",
			input:   `{"query_id": "q1", "candidates": [{"restaurant_id": "a"}]}`,
			line:    1,
			message: "missing score",
		},
		{
			name:    "string score",
			input:   `{"query_id": "q1", "candidates": [{"restaurant_id": "a", "score": "0.5"}]}`,
			line:    1,
			message: "non-numeric score",
		},
		{
			name:    "null score",
			input:   `{"query_id": "q1", "candidates": [{"restaurant_id": "a", "score": null}]}`,
			line:    1,
			message: "missing score",
		},
		{
			name: "duplicate query id",
			input: `{"query_id": "q1", "candidates": [{"restaurant_id": "a", "score": 1}]}
{"query_id": "q1", "candidates": [{"restaurant_id": "b", "score": 1}]}`,
			line:    2,
			message: "duplicate query_id",
		},
		{
			name:    "no records",
			input:   "\n\n",
			line:    0,
			message: "no predictions found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), "run.jsonl")

			var se *apperr.SubmissionFormatError
			require.True(t, errors.As(err, &se), "want SubmissionFormatError, got %v", err)
			assert.Equal(t, tt.line, se.Line)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_predictions.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"query_id": "q1", "candidates": [{"restaurant_id": "a", "score": 1}]}`+"\n"), 0644))

	sub, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, sub.Len())

	_, err = Load(filepath.Join(t.TempDir(), "nope.jsonl"))
	assert.ErrorContains(t, err, "open submission")
}
