package submission

// Candidate is one ranked item with the score the submitter assigned.
type Candidate struct {
	ItemID string  `json:"restaurant_id"`
	Score  float64 `json:"score"`
}

// Entry is one query's ranking, in the order it appeared in the file.
type Entry struct {
	QueryID    string      `json:"query_id"`
	Candidates []Candidate `json:"candidates"`
	// Line is the 1-indexed source line; zero for rankings built in code.
	Line int `json:"-"`
}

// ItemIDs returns the ranked item ids in submission order.
func (e Entry) ItemIDs() []string {
	ids := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		ids[i] = c.ItemID
	}
	return ids
}

// Submission holds every entry of a ranking file, keyed by query id.
type Submission struct {
	Entries []Entry
	byID    map[string]int
}

// New builds a submission from entries. A later entry for a repeated query id
// shadows the earlier one in Get; the file reader rejects repeats outright.
func New(entries []Entry) *Submission {
	s := &Submission{
		Entries: entries,
		byID:    make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		s.byID[e.QueryID] = i
	}
	return s
}

func (s *Submission) Get(queryID string) (Entry, bool) {
	i, ok := s.byID[queryID]
	if !ok {
		return Entry{}, false
	}
	return s.Entries[i], true
}

func (s *Submission) Has(queryID string) bool {
	_, ok := s.byID[queryID]
	return ok
}

func (s *Submission) Len() int {
	return len(s.Entries)
}
