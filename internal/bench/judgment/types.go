package judgment

import "sort"

// Table maps (query id, item id) to a relevance grade.
type Table struct {
	grades map[string]map[string]int
	// Overrides counts rows that replaced an earlier grade for the same pair.
	Overrides int
}

func NewTable() *Table {
	return &Table{grades: make(map[string]map[string]int)}
}

// Set records a grade; a later grade for the same pair replaces the earlier one.
func (t *Table) Set(queryID, itemID string, grade int) (overridden bool) {
	items, ok := t.grades[queryID]
	if !ok {
		items = make(map[string]int)
		t.grades[queryID] = items
	}
	if _, exists := items[itemID]; exists {
		overridden = true
		t.Overrides++
	}
	items[itemID] = grade
	return overridden
}

// Grades returns the judged items of a query. The map must not be modified.
func (t *Table) Grades(queryID string) map[string]int {
	return t.grades[queryID]
}

func (t *Table) Grade(queryID, itemID string) int {
	return t.grades[queryID][itemID]
}

func (t *Table) Has(queryID string) bool {
	_, ok := t.grades[queryID]
	return ok
}

func (t *Table) Len() int {
	return len(t.grades)
}

func (t *Table) QueryIDs() []string {
	ids := make([]string, 0, len(t.grades))
	for id := range t.grades {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// GradedDoc and JudgmentFile describe the YAML annotation format.
type GradedDoc struct {
	DocID string `yaml:"doc_id"`
	Grade int    `yaml:"grade"`
}

type JudgmentFile struct {
	Strategy string          `yaml:"strategy"`
	Queries  []JudgmentEntry `yaml:"queries"`
}

type JudgmentEntry struct {
	QueryID string      `yaml:"query_id"`
	Text    string      `yaml:"query_text,omitempty"`
	Docs    []GradedDoc `yaml:"docs"`
}

// Unjudged marks a document in an annotation template that has no grade yet.
const Unjudged = -1

// LoadOptions configures optional cross-checks while loading.
type LoadOptions struct {
	// KnownItem, when set, rejects rows whose item id it does not recognise.
	KnownItem func(itemID string) bool
}
