package pool

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/DjordjeVuckovic/rerank-bench/internal/apperr"
	"gopkg.in/yaml.v3"
)

// PoolFile is the YAML pool format.
type PoolFile struct {
	SuiteName string      `yaml:"suite_name"`
	Queries   []PoolEntry `yaml:"queries"`
}

type PoolEntry struct {
	QueryID   string      `yaml:"query_id"`
	QueryDesc string      `yaml:"query_desc"`
	Docs      []PooledDoc `yaml:"docs"`
}

type PooledDoc struct {
	DocID string   `yaml:"doc_id"`
	Score *float64 `yaml:"score,omitempty"`
}

type ReadOptions struct {
	// MaxSize bounds the distinct items per query; zero means DefaultMaxSize.
	MaxSize int
	// KnownItem, when set, rejects items it does not recognise.
	KnownItem func(itemID string) bool
}

// LoadPools reads a JSONL candidate file, or a YAML pool file when the
// extension is .yaml or .yml.
func LoadPools(path string, opts ReadOptions) (*Pools, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		pf, err := ReadPoolFile(path)
		if err != nil {
			return nil, err
		}
		return FromPoolFile(pf, path, opts)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open candidate file: %w", err)
	}
	defer f.Close()

	return ParseCandidates(f, path, opts)
}

type candidateRecord struct {
	QueryID    *string `json:"query_id"`
	Candidates []struct {
		RestaurantID string `json:"restaurant_id"`
		ItemID       string `json:"item_id"`
	} `json:"candidates"`
}

// ParseCandidates reads one {"query_id", "candidates": [{"restaurant_id", ...}]}
// record per line. Scores are ignored: a pool is a set.
func ParseCandidates(r io.Reader, name string, opts ReadOptions) (*Pools, error) {
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	p := NewPools()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}

		var rec candidateRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, apperr.NewDataFormatWrap(name, line, "invalid candidate record", err)
		}
		if rec.QueryID == nil || *rec.QueryID == "" {
			return nil, apperr.NewDataFormat(name, line, "missing query_id")
		}
		qID := *rec.QueryID
		if p.Has(qID) {
			return nil, apperr.NewDataFormat(name, line, fmt.Sprintf("duplicate query_id %q", qID))
		}

		p.Add(qID)
		for i, c := range rec.Candidates {
			itemID := c.RestaurantID
			if itemID == "" {
				itemID = c.ItemID
			}
			if itemID == "" {
				return nil, apperr.NewDataFormat(name, line, fmt.Sprintf("candidate #%d has no restaurant_id", i+1))
			}
			if err := insert(p, qID, itemID, maxSize, opts.KnownItem); err != nil {
				return nil, apperr.NewDataFormatWrap(name, line, "invalid candidate", err)
			}
		}
		if p.Size(qID) == 0 {
			slog.Warn("Empty candidate pool", "file", name, "line", line, "query", qID)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, apperr.NewDataFormatWrap(name, line+1, "read candidates", err)
	}

	return p, nil
}

func ReadPoolFile(path string) (*PoolFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pool file: %w", err)
	}
	var pf PoolFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, apperr.NewDataFormatWrap(path, 0, "parse pool file", err)
	}
	return &pf, nil
}

func FromPoolFile(pf *PoolFile, name string, opts ReadOptions) (*Pools, error) {
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	p := NewPools()
	for i, pe := range pf.Queries {
		if pe.QueryID == "" {
			return nil, apperr.NewDataFormat(name, 0, fmt.Sprintf("query at index %d has no query_id", i))
		}
		if p.Has(pe.QueryID) {
			return nil, apperr.NewDataFormat(name, 0, fmt.Sprintf("duplicate query_id %q", pe.QueryID))
		}
		p.Add(pe.QueryID)
		for _, d := range pe.Docs {
			if d.DocID == "" {
				return nil, apperr.NewDataFormat(name, 0, fmt.Sprintf("query %q has a document without doc_id", pe.QueryID))
			}
			if err := insert(p, pe.QueryID, d.DocID, maxSize, opts.KnownItem); err != nil {
				return nil, apperr.NewDataFormatWrap(name, 0, fmt.Sprintf("query %q", pe.QueryID), err)
			}
		}
	}
	return p, nil
}

func insert(p *Pools, queryID, itemID string, maxSize int, known func(string) bool) error {
	if known != nil && !known(itemID) {
		return fmt.Errorf("item %q not in corpus", itemID)
	}
	if !p.Insert(queryID, itemID) {
		slog.Debug("Repeated candidate ignored", "query", queryID, "item", itemID)
		return nil
	}
	if p.Size(queryID) > maxSize {
		return fmt.Errorf("pool for %q exceeds %d items", queryID, maxSize)
	}
	return nil
}
