package pool

import "sort"

// DefaultMaxSize is the largest candidate pool the upstream retriever produces.
const DefaultMaxSize = 500

// Pools maps a query id to the set of items eligible for ranking.
type Pools struct {
	items map[string][]string
	sets  map[string]map[string]struct{}
}

func NewPools() *Pools {
	return &Pools{
		items: make(map[string][]string),
		sets:  make(map[string]map[string]struct{}),
	}
}

// Add registers an empty pool for queryID if it has none yet.
func (p *Pools) Add(queryID string) {
	if _, ok := p.sets[queryID]; !ok {
		p.sets[queryID] = make(map[string]struct{})
		p.items[queryID] = nil
	}
}

// Insert adds itemID to the pool of queryID; it reports false for a repeat.
func (p *Pools) Insert(queryID, itemID string) bool {
	p.Add(queryID)
	if _, dup := p.sets[queryID][itemID]; dup {
		return false
	}
	p.sets[queryID][itemID] = struct{}{}
	p.items[queryID] = append(p.items[queryID], itemID)
	return true
}

func (p *Pools) Has(queryID string) bool {
	_, ok := p.sets[queryID]
	return ok
}

func (p *Pools) Contains(queryID, itemID string) bool {
	_, ok := p.sets[queryID][itemID]
	return ok
}

// Items returns the pooled items of a query in file order.
func (p *Pools) Items(queryID string) []string {
	return p.items[queryID]
}

func (p *Pools) Size(queryID string) int {
	return len(p.sets[queryID])
}

func (p *Pools) Len() int {
	return len(p.sets)
}

func (p *Pools) QueryIDs() []string {
	ids := make([]string, 0, len(p.sets))
	for id := range p.sets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
