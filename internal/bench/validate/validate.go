// Package validate checks a parsed submission against the query table and the
// candidate pools. Every check runs; nothing short-circuits.
package validate

import (
	"fmt"

	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/pool"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/submission"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/suite"
)

// Check runs all checks. Missing queries come first in query-table order,
// followed by per-entry issues in submission order.
func Check(sub *submission.Submission, queries *suite.QuerySet, pools *pool.Pools) []Issue {
	var issues []Issue

	for _, q := range queries.Queries {
		if !sub.Has(q.ID) {
			issues = append(issues, Issue{
				QueryID: q.ID,
				Kind:    KindMissingQuery,
				Detail:  "query has no ranking in the submission",
			})
		}
	}

	for _, e := range sub.Entries {
		issues = append(issues, checkMembership(e, queries, pools)...)
		issues = append(issues, checkEntry(e)...)
	}

	return issues
}

// Structural runs only the checks that need no query table or pools.
func Structural(sub *submission.Submission) []Issue {
	var issues []Issue
	for _, e := range sub.Entries {
		issues = append(issues, checkEntry(e)...)
	}
	return issues
}

func checkMembership(e submission.Entry, queries *suite.QuerySet, pools *pool.Pools) []Issue {
	if !queries.Has(e.QueryID) {
		return []Issue{{
			QueryID: e.QueryID,
			Kind:    KindUnknownQuery,
			Detail:  "query id is not in the query table",
		}}
	}
	if !pools.Has(e.QueryID) {
		return []Issue{{
			QueryID: e.QueryID,
			Kind:    KindUnknownQuery,
			Detail:  "query has no candidate pool",
		}}
	}

	var issues []Issue
	reported := make(map[string]bool)
	for i, c := range e.Candidates {
		if pools.Contains(e.QueryID, c.ItemID) || reported[c.ItemID] {
			continue
		}
		reported[c.ItemID] = true
		issues = append(issues, Issue{
			QueryID: e.QueryID,
			Kind:    KindOutOfPoolItem,
			Detail:  fmt.Sprintf("item %q at rank %d is not in the candidate pool", c.ItemID, i+1),
		})
	}
	return issues
}

func checkEntry(e submission.Entry) []Issue {
	if len(e.Candidates) == 0 {
		return []Issue{{
			QueryID: e.QueryID,
			Kind:    KindEmptyCandidateList,
			Detail:  "candidate list is empty",
		}}
	}

	var issues []Issue

	firstRank := make(map[string]int, len(e.Candidates))
	reported := make(map[string]bool)
	for i, c := range e.Candidates {
		first, seen := firstRank[c.ItemID]
		if !seen {
			firstRank[c.ItemID] = i + 1
			continue
		}
		if reported[c.ItemID] {
			continue
		}
		reported[c.ItemID] = true
		issues = append(issues, Issue{
			QueryID: e.QueryID,
			Kind:    KindDuplicateItem,
			Detail:  fmt.Sprintf("item %q appears at rank %d and again at rank %d", c.ItemID, first, i+1),
		})
	}

	for i := 1; i < len(e.Candidates); i++ {
		prev, cur := e.Candidates[i-1].Score, e.Candidates[i].Score
		if cur > prev {
			issues = append(issues, Issue{
				QueryID: e.QueryID,
				Kind:    KindUnsortedScores,
				Detail:  fmt.Sprintf("score at rank %d (%g) is higher than at rank %d (%g)", i+1, cur, i, prev),
			})
			break
		}
	}

	return issues
}
