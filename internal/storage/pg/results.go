package pg

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/metrics"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/report"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const schema = `
CREATE TABLE IF NOT EXISTS eval_results (
    report_id    UUID PRIMARY KEY,
    team         TEXT NOT NULL,
    submission   TEXT NOT NULL DEFAULT '',
    verdict      TEXT NOT NULL,
    ndcg_10      DOUBLE PRECISION NOT NULL,
    mrr_10       DOUBLE PRECISION NOT NULL,
    recall_50    DOUBLE PRECISION NOT NULL,
    query_count  INTEGER NOT NULL,
    issue_count  INTEGER NOT NULL,
    metrics      JSONB NOT NULL,
    published_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS eval_results_ndcg_idx ON eval_results (ndcg_10 DESC);
`

// querier is the subset of pgxpool.Pool the store needs.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// ResultStore publishes scored reports to a leaderboard table.
type ResultStore struct {
	db querier
}

func NewResultStore(pool *ConnectionPool) *ResultStore {
	return &ResultStore{db: pool.conn}
}

func (s *ResultStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create results schema: %w", err)
	}
	return nil
}

// Save stores a report under team. Reports are keyed by their content id, so
// publishing the same report twice is a no-op and reports false.
func (s *ResultStore) Save(ctx context.Context, team string, r *report.Report) (inserted bool, err error) {
	if team == "" {
		return false, fmt.Errorf("team name is required")
	}

	metricsJSON, err := json.Marshal(r.Metrics)
	if err != nil {
		return false, fmt.Errorf("failed to marshal metrics: %w", err)
	}

	cmd := `
        INSERT INTO eval_results (report_id, team, submission, verdict, ndcg_10, mrr_10, recall_50, query_count, issue_count, metrics)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        ON CONFLICT (report_id) DO NOTHING;
    `
	tag, err := s.db.Exec(
		ctx,
		cmd,
		r.ID,
		team,
		r.Submission,
		string(r.Verdict),
		r.Metrics[metrics.NDCG10.String()],
		r.Metrics[metrics.MRR10.String()],
		r.Metrics[metrics.Recall50.String()],
		r.QueryCount,
		len(r.Issues),
		metricsJSON,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert result: %w", err)
	}

	inserted = tag.RowsAffected() > 0
	slog.Debug("result published", "report_id", r.ID, "team", team, "inserted", inserted)
	return inserted, nil
}

// Entry is one leaderboard row.
type Entry struct {
	ReportID    string
	Team        string
	Submission  string
	Verdict     string
	NDCG        float64
	MRR         float64
	Recall      float64
	QueryCount  int
	IssueCount  int
	PublishedAt time.Time
}

// Leaderboard returns the best published results, highest NDCG@10 first.
func (s *ResultStore) Leaderboard(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
        SELECT report_id::text, team, submission, verdict, ndcg_10, mrr_10, recall_50, query_count, issue_count, published_at
        FROM eval_results
        ORDER BY ndcg_10 DESC, mrr_10 DESC, published_at ASC
        LIMIT $1;
    `
	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ReportID,
			&e.Team,
			&e.Submission,
			&e.Verdict,
			&e.NDCG,
			&e.MRR,
			&e.Recall,
			&e.QueryCount,
			&e.IssueCount,
			&e.PublishedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	return entries, nil
}
