// Package reporter aggregates ledger and rate-limiter state into the
// daily report an operator reads. Pure aggregation, no state of its own.
package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"go-linkedin-copilot/internal/ledger"
	"go-linkedin-copilot/internal/ratelimit"
)

// Report is one calendar day of activity plus the live quota snapshot.
type Report struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Summary     ledger.Summary  `json:"summary"`
	RateStats   ratelimit.Stats `json:"rate_stats"`
}

type Reporter struct {
	store   ledger.Store
	limiter *ratelimit.Limiter
	logDir  string
	log     *zap.Logger
}

func New(store ledger.Store, limiter *ratelimit.Limiter, logDir string, log *zap.Logger) *Reporter {
	return &Reporter{store: store, limiter: limiter, logDir: logDir, log: log}
}

// Generate builds the report for the given date.
func (r *Reporter) Generate(ctx context.Context, date time.Time) (Report, error) {
	summary, err := r.store.DailySummary(ctx, date)
	if err != nil {
		return Report{}, fmt.Errorf("failed to build daily summary: %w", err)
	}
	return Report{
		GeneratedAt: time.Now(),
		Summary:     summary,
		RateStats:   r.limiter.DailyStats(),
	}, nil
}

// Write persists the report as summary_YYYY-MM-DD.json, one file per day.
func (r *Reporter) Write(report Report) (string, error) {
	if err := os.MkdirAll(r.logDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal daily report: %w", err)
	}
	path := filepath.Join(r.logDir, fmt.Sprintf("summary_%s.json", report.Summary.Date))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write daily report: %w", err)
	}
	return path, nil
}

// Publish generates, writes and logs the report for date. Summary counts
// reflect only genuinely completed actions (the ledger records nothing
// for failed or skipped targets).
func (r *Reporter) Publish(ctx context.Context, date time.Time) (Report, error) {
	report, err := r.Generate(ctx, date)
	if err != nil {
		return Report{}, err
	}
	path, err := r.Write(report)
	if err != nil {
		return Report{}, err
	}
	r.log.Info("📊 daily summary generated",
		zap.String("file", path),
		zap.Int("recruiters_contacted", report.Summary.RecruitersContacted),
		zap.Int("jobs_applied", report.Summary.JobsApplied),
		zap.Int("actions_today", report.RateStats.ActionsToday),
		zap.Int("remaining", report.RateStats.Remaining))
	return report, nil
}
