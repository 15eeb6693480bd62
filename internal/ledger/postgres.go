package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore backs the ledger with Postgres. Uniqueness of the dedup
// keys is enforced by the storage layer (UNIQUE columns + ON CONFLICT DO
// NOTHING), so concurrent runs against the same database cannot race a
// check-then-insert into a duplicate outreach.
type PostgresStore struct {
	db *pgxpool.Pool
}

const schema = `
CREATE TABLE IF NOT EXISTS contacted_recruiters (
	id BIGSERIAL PRIMARY KEY,
	recruiter_url TEXT UNIQUE NOT NULL,
	recruiter_name TEXT,
	company TEXT,
	contacted_at TIMESTAMPTZ NOT NULL,
	message_sent BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE TABLE IF NOT EXISTS applied_jobs (
	id BIGSERIAL PRIMARY KEY,
	job_url TEXT UNIQUE NOT NULL,
	job_title TEXT,
	company TEXT,
	applied_at TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending'
);
CREATE TABLE IF NOT EXISTS action_log (
	id BIGSERIAL PRIMARY KEY,
	action_type TEXT,
	target_url TEXT,
	target_name TEXT,
	timestamp TIMESTAMPTZ NOT NULL,
	status TEXT,
	details TEXT
);`

// NewPostgresStore connects, pings and ensures the schema exists.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	// Connection poolers (PgBouncer in transaction mode) choke on the
	// statement cache, so force simple exec mode.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize ledger schema: %w", err)
	}

	return &PostgresStore{db: pool}, nil
}

func (s *PostgresStore) IsContacted(ctx context.Context, profileURL string) (bool, error) {
	var count int
	err := s.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM contacted_recruiters WHERE recruiter_url = $1", profileURL,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("contact lookup failed: %w", err)
	}
	return count > 0, nil
}

func (s *PostgresStore) RecordContact(ctx context.Context, c Contact) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO contacted_recruiters (recruiter_url, recruiter_name, company, contacted_at, message_sent)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (recruiter_url) DO NOTHING`,
		c.URL, c.Name, c.Company, c.ContactedAt, c.MessageSent)
	if err != nil {
		return fmt.Errorf("failed to record recruiter contact: %w", err)
	}
	return nil
}

func (s *PostgresStore) IsApplied(ctx context.Context, jobURL string) (bool, error) {
	var count int
	err := s.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM applied_jobs WHERE job_url = $1", jobURL,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("application lookup failed: %w", err)
	}
	return count > 0, nil
}

func (s *PostgresStore) RecordApplication(ctx context.Context, a Application) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO applied_jobs (job_url, job_title, company, applied_at, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (job_url) DO NOTHING`,
		a.URL, a.Title, a.Company, a.AppliedAt, a.Status)
	if err != nil {
		return fmt.Errorf("failed to record job application: %w", err)
	}
	return nil
}

func (s *PostgresStore) LogAction(ctx context.Context, e Entry) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO action_log (action_type, target_url, target_name, timestamp, status, details)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.Kind, e.TargetURL, e.TargetName, e.Timestamp, e.Status, e.Detail)
	if err != nil {
		return fmt.Errorf("failed to log action: %w", err)
	}
	return nil
}

func (s *PostgresStore) DailySummary(ctx context.Context, date time.Time) (Summary, error) {
	day := date.Local()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	summary := Summary{Date: start.Format("2006-01-02")}

	err := s.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM contacted_recruiters WHERE contacted_at >= $1 AND contacted_at < $2",
		start, end,
	).Scan(&summary.RecruitersContacted)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to count contacts: %w", err)
	}

	err = s.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM applied_jobs WHERE applied_at >= $1 AND applied_at < $2",
		start, end,
	).Scan(&summary.JobsApplied)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to count applications: %w", err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT action_type, target_url, target_name, timestamp, status, COALESCE(details, '')
		FROM action_log
		WHERE timestamp >= $1 AND timestamp < $2
		ORDER BY timestamp DESC
		LIMIT $3`,
		start, end, recentActionsLimit)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load recent actions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Kind, &e.TargetURL, &e.TargetName, &e.Timestamp, &e.Status, &e.Detail); err != nil {
			return Summary{}, fmt.Errorf("failed to scan action row: %w", err)
		}
		summary.RecentActions = append(summary.RecentActions, e)
	}
	if err := rows.Err(); err != nil {
		return Summary{}, fmt.Errorf("failed to read recent actions: %w", err)
	}

	return summary, nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		s.db.Close()
	}
	return nil
}
