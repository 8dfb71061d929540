package validate

import (
	"testing"

	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/pool"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/submission"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ranking(queryID string, items ...string) submission.Entry {
	e := submission.Entry{QueryID: queryID}
	for i, id := range items {
		e.Candidates = append(e.Candidates, submission.Candidate{ItemID: id, Score: float64(len(items) - i)})
	}
	return e
}

func fixture() (*suite.QuerySet, *pool.Pools) {
	pools := pool.NewPools()
	for _, id := range []string{"a", "b", "c"} {
		pools.Insert("q1", id)
	}
	for _, id := range []string{"d", "e", "f"} {
		pools.Insert("q2", id)
	}
	return suite.FromIDs([]string{"q1", "q2"}), pools
}

func TestCheck(t *testing.T) {
	queries, pools := fixture()

	tests := []struct {
		name    string
		entries []submission.Entry
		want    []Issue
	}{
		{
			name: "clean submission",
			entries: []submission.Entry{
				ranking("q1", "b", "a", "c"),
				ranking("q2", "d"),
			},
		},
		{
			name: "out of pool item",
			entries: []submission.Entry{
				ranking("q1", "a", "z", "b"),
				ranking("q2", "d"),
			},
			want: []Issue{
				{QueryID: "q1", Kind: KindOutOfPoolItem, Detail: `item "z" at rank 2 is not in the candidate pool`},
			},
		},
		{
			name: "two independent defects",
			entries: []submission.Entry{
				ranking("q1", "a", "b", "a"),
				ranking("q2", "d", "x"),
			},
			want: []Issue{
				{QueryID: "q1", Kind: KindDuplicateItem, Detail: `item "a" appears at rank 1 and again at rank 3`},
				{QueryID: "q2", Kind: KindOutOfPoolItem, Detail: `item "x" at rank 2 is not in the candidate pool`},
			},
		},
		{
			name: "missing and unknown queries",
			entries: []submission.Entry{
				ranking("q1", "a"),
				ranking("q9", "a"),
			},
			want: []Issue{
				{QueryID: "q2", Kind: KindMissingQuery, Detail: "query has no ranking in the submission"},
				{QueryID: "q9", Kind: KindUnknownQuery, Detail: "query id is not in the query table"},
			},
		},
		{
			name: "empty candidate list",
			entries: []submission.Entry{
				ranking("q1", "a"),
				{QueryID: "q2"},
			},
			want: []Issue{
				{QueryID: "q2", Kind: KindEmptyCandidateList, Detail: "candidate list is empty"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := Check(submission.New(tt.entries), queries, pools)
			assert.Equal(t, tt.want, issues)
		})
	}
}

func TestCheck_UnsortedScores(t *testing.T) {
	queries, pools := fixture()

	t.Run("increase is flagged once", func(t *testing.T) {
		sub := submission.New([]submission.Entry{
			{QueryID: "q1", Candidates: []submission.Candidate{
				{ItemID: "a", Score: 1}, {ItemID: "b", Score: 3}, {ItemID: "c", Score: 5},
			}},
			ranking("q2", "d"),
		})

		issues := Check(sub, queries, pools)
		require.Len(t, issues, 1)
		assert.Equal(t, KindUnsortedScores, issues[0].Kind)
		assert.Equal(t, "q1", issues[0].QueryID)
	})

	t.Run("equal adjacent scores are allowed", func(t *testing.T) {
		sub := submission.New([]submission.Entry{
			{QueryID: "q1", Candidates: []submission.Candidate{
				{ItemID: "a", Score: 2}, {ItemID: "b", Score: 2}, {ItemID: "c", Score: 1},
			}},
			ranking("q2", "d"),
		})

		assert.Empty(t, Check(sub, queries, pools))
	})
}

func TestCheck_QueryWithoutPool(t *testing.T) {
	_, pools := fixture()
	queries := suite.FromIDs([]string{"q1", "q2", "q3"})

	sub := submission.New([]submission.Entry{
		ranking("q1", "a"),
		ranking("q2", "d"),
		ranking("q3", "anything"),
	})

	issues := Check(sub, queries, pools)
	require.Len(t, issues, 1)
	assert.Equal(t, Issue{QueryID: "q3", Kind: KindUnknownQuery, Detail: "query has no candidate pool"}, issues[0])
}

func TestCheck_ReportsEveryProblem(t *testing.T) {
	queries, pools := fixture()

	sub := submission.New([]submission.Entry{
		{QueryID: "q1", Candidates: []submission.Candidate{
			{ItemID: "a", Score: 1}, {ItemID: "z", Score: 2}, {ItemID: "a", Score: 0},
		}},
	})

	issues := Check(sub, queries, pools)
	counts := CountByKind(issues)

	assert.Len(t, issues, 4)
	assert.Equal(t, 1, counts[KindMissingQuery])
	assert.Equal(t, 1, counts[KindOutOfPoolItem])
	assert.Equal(t, 1, counts[KindDuplicateItem])
	assert.Equal(t, 1, counts[KindUnsortedScores])
	assert.Equal(t, KindMissingQuery, issues[0].Kind)
}

func TestStructural(t *testing.T) {
	sub := submission.New([]submission.Entry{
		ranking("q1", "a", "z"),
		ranking("q9", "b", "b"),
		{QueryID: "q5"},
	})

	issues := Structural(sub)
	require.Len(t, issues, 2)
	assert.Equal(t, KindDuplicateItem, issues[0].Kind)
	assert.Equal(t, KindEmptyCandidateList, issues[1].Kind)
}

func TestIssueString(t *testing.T) {
	assert.Equal(t, "MissingQuery [query q1]: gone", Issue{QueryID: "q1", Kind: KindMissingQuery, Detail: "gone"}.String())
	assert.Equal(t, "EmptyCandidateList: none", Issue{Kind: KindEmptyCandidateList, Detail: "none"}.String())
}
