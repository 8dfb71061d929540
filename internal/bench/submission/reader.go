package submission

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/DjordjeVuckovic/rerank-bench/internal/apperr"
)

var (
	itemKeys  = []string{"restaurant_id", "item_id"}
	scoreKeys = []string{"score", "bm25_score"}
)

func Load(path string) (*Submission, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open submission: %w", err)
	}
	defer f.Close()

	return Parse(f, path)
}

// Parse reads one JSON ranking record per line. name is used in errors.
func Parse(r io.Reader, name string) (*Submission, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var entries []Entry
	seen := make(map[string]int)

	line := 0
	for sc.Scan() {
		line++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}

		entry, err := parseRecord(raw)
		if err != nil {
			return nil, apperr.NewSubmissionFormatWrap(name, line, "invalid record", err)
		}
		if first, dup := seen[entry.QueryID]; dup {
			return nil, apperr.NewSubmissionFormat(name, line, fmt.Sprintf("duplicate query_id %q (first on line %d)", entry.QueryID, first))
		}
		seen[entry.QueryID] = line
		entry.Line = line
		entries = append(entries, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, apperr.NewSubmissionFormatWrap(name, line+1, "read submission", err)
	}
	if len(entries) == 0 {
		return nil, apperr.NewSubmissionFormat(name, 0, "no predictions found")
	}

	return New(entries), nil
}

func parseRecord(raw []byte) (Entry, error) {
	var rec map[string]json.RawMessage
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Entry{}, fmt.Errorf("invalid JSON: %w", err)
	}

	var queryID string
	if err := decodeField(rec, "query_id", &queryID); err != nil {
		return Entry{}, fmt.Errorf("query_id must be a string: %w", err)
	}
	if queryID == "" {
		return Entry{}, fmt.Errorf("query_id must not be empty")
	}

	var cands []json.RawMessage
	if err := decodeField(rec, "candidates", &cands); err != nil {
		return Entry{}, fmt.Errorf("query %q: candidates must be a list: %w", queryID, err)
	}
	if len(cands) == 0 {
		return Entry{}, fmt.Errorf("query %q: candidates must be a non-empty list", queryID)
	}

	entry := Entry{QueryID: queryID, Candidates: make([]Candidate, 0, len(cands))}
	for i, rawCand := range cands {
		c, err := parseCandidate(rawCand)
		if err != nil {
			return Entry{}, fmt.Errorf("query %q: candidate #%d: %w", queryID, i+1, err)
		}
		entry.Candidates = append(entry.Candidates, c)
	}
	return entry, nil
}

func parseCandidate(raw json.RawMessage) (Candidate, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return Candidate{}, fmt.Errorf("must be an object")
	}

	var c Candidate
	key, ok := firstPresent(obj, itemKeys)
	if !ok {
		return Candidate{}, fmt.Errorf("missing restaurant_id")
	}
	if err := json.Unmarshal(obj[key], &c.ItemID); err != nil || c.ItemID == "" {
		return Candidate{}, fmt.Errorf("%s must be a non-empty string", key)
	}

	key, ok = firstPresent(obj, scoreKeys)
	if !ok {
		return Candidate{}, fmt.Errorf("missing score for %q (keys: %s)", c.ItemID, strings.Join(sortedKeys(obj), ","))
	}
	if err := json.Unmarshal(obj[key], &c.Score); err != nil {
		return Candidate{}, fmt.Errorf("non-numeric %s for %q", key, c.ItemID)
	}
	return c, nil
}

// decodeField rejects absent and null fields before decoding into dst.
func decodeField(rec map[string]json.RawMessage, key string, dst any) error {
	raw, ok := rec[key]
	if !ok || isNull(raw) {
		return fmt.Errorf("missing field %q", key)
	}
	return json.Unmarshal(raw, dst)
}

func firstPresent(obj map[string]json.RawMessage, keys []string) (string, bool) {
	for _, k := range keys {
		if raw, ok := obj[k]; ok && !isNull(raw) {
			return k, true
		}
	}
	return "", false
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func sortedKeys(obj map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
