package validate

import "fmt"

type Kind string

const (
	KindMissingQuery       Kind = "MissingQuery"
	KindUnknownQuery       Kind = "UnknownQuery"
	KindOutOfPoolItem      Kind = "OutOfPoolItem"
	KindDuplicateItem      Kind = "DuplicateItem"
	KindUnsortedScores     Kind = "UnsortedScores"
	KindEmptyCandidateList Kind = "EmptyCandidateList"
)

// Kinds lists every issue kind in reporting order.
var Kinds = []Kind{
	KindMissingQuery,
	KindUnknownQuery,
	KindOutOfPoolItem,
	KindDuplicateItem,
	KindUnsortedScores,
	KindEmptyCandidateList,
}

// Issue is a non-fatal problem with a submission. QueryID is empty for
// file-level issues.
type Issue struct {
	QueryID string `json:"query_id,omitempty"`
	Kind    Kind   `json:"kind"`
	Detail  string `json:"detail"`
}

func (i Issue) String() string {
	if i.QueryID == "" {
		return fmt.Sprintf("%s: %s", i.Kind, i.Detail)
	}
	return fmt.Sprintf("%s [query %s]: %s", i.Kind, i.QueryID, i.Detail)
}

// CountByKind tallies issues per kind.
func CountByKind(issues []Issue) map[Kind]int {
	counts := make(map[Kind]int)
	for _, is := range issues {
		counts[is.Kind]++
	}
	return counts
}
