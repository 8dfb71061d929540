package report

import (
	"encoding/json"
	"fmt"
	"os"
)

func (r *Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// MarshalMetrics returns the aggregate metrics as one compact JSON object.
func (r *Report) MarshalMetrics() ([]byte, error) {
	data, err := json.Marshal(r.Metrics)
	if err != nil {
		return nil, fmt.Errorf("marshal metrics: %w", err)
	}
	return data, nil
}
