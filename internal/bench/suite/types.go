package suite

import "sort"

type Query struct {
	ID   string `yaml:"id" json:"query_id"`
	Text string `yaml:"text" json:"query_text"`
}

// QuerySet is the query table of one evaluation split, in file order.
type QuerySet struct {
	Queries []Query
	byID    map[string]int
}

func NewQuerySet(queries []Query) *QuerySet {
	qs := &QuerySet{
		Queries: queries,
		byID:    make(map[string]int, len(queries)),
	}
	for i, q := range queries {
		qs.byID[q.ID] = i
	}
	return qs
}

// FromIDs builds a query set with empty texts, sorted by id.
func FromIDs(ids []string) *QuerySet {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)

	queries := make([]Query, 0, len(sorted))
	for _, id := range sorted {
		queries = append(queries, Query{ID: id})
	}
	return NewQuerySet(queries)
}

func (qs *QuerySet) Has(id string) bool {
	_, ok := qs.byID[id]
	return ok
}

func (qs *QuerySet) Get(id string) (Query, bool) {
	i, ok := qs.byID[id]
	if !ok {
		return Query{}, false
	}
	return qs.Queries[i], true
}

func (qs *QuerySet) Len() int {
	return len(qs.Queries)
}

func (qs *QuerySet) IDs() []string {
	ids := make([]string, 0, len(qs.Queries))
	for _, q := range qs.Queries {
		ids = append(ids, q.ID)
	}
	return ids
}
