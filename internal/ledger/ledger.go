// Package ledger is the durable record of every outreach action taken.
// It answers "has this target already been acted upon?" and records new
// actions idempotently, so a recruiter is never messaged twice and a job
// is never double-applied, even across restarts or concurrent runs.
package ledger

import (
	"context"
	"time"
)

// ApplicationStatus tracks where a submitted application stands.
type ApplicationStatus string

const (
	StatusPending   ApplicationStatus = "pending"
	StatusSubmitted ApplicationStatus = "submitted"
	StatusRejected  ApplicationStatus = "rejected"
	StatusWithdrawn ApplicationStatus = "withdrawn"
)

// ActionStatus is the outcome recorded on a generic log entry.
type ActionStatus string

const (
	ActionSuccess ActionStatus = "success"
	ActionWarning ActionStatus = "warning"
	ActionError   ActionStatus = "error"
)

// Contact records one contacted recruiter. The profile URL is the dedup
// key: at most one Contact exists per URL.
type Contact struct {
	URL         string    `json:"url"`
	Name        string    `json:"name"`
	Company     string    `json:"company"`
	ContactedAt time.Time `json:"contacted_at"`
	MessageSent bool      `json:"message_sent"`
}

// Application records one job application, keyed by the job URL.
type Application struct {
	URL       string            `json:"url"`
	Title     string            `json:"title"`
	Company   string            `json:"company"`
	AppliedAt time.Time         `json:"applied_at"`
	Status    ApplicationStatus `json:"status"`
}

// Entry is an append-only audit log row. Entries are never deduplicated.
type Entry struct {
	Kind       string       `json:"kind"`
	TargetURL  string       `json:"target_url"`
	TargetName string       `json:"target_name"`
	Timestamp  time.Time    `json:"timestamp"`
	Status     ActionStatus `json:"status"`
	Detail     string       `json:"detail,omitempty"`
}

// Summary aggregates one calendar day of ledger activity.
type Summary struct {
	Date                string  `json:"date"`
	RecruitersContacted int     `json:"recruiters_contacted"`
	JobsApplied         int     `json:"jobs_applied"`
	RecentActions       []Entry `json:"recent_actions"`
}

// recentActionsLimit caps how many log entries a daily summary carries.
const recentActionsLimit = 50

// Store is the durable ledger contract. Record methods are idempotent on
// the target URL: inserting an already-present URL is a no-op, not an
// error. A failed dedup check must abort the caller's action; a failed
// LogAction is observability-only and safe to swallow.
type Store interface {
	IsContacted(ctx context.Context, profileURL string) (bool, error)
	RecordContact(ctx context.Context, c Contact) error

	IsApplied(ctx context.Context, jobURL string) (bool, error)
	RecordApplication(ctx context.Context, a Application) error

	LogAction(ctx context.Context, e Entry) error

	// DailySummary counts rows whose timestamp falls on the given local
	// calendar date. This is deliberately not the rate limiter's rolling
	// 24h window.
	DailySummary(ctx context.Context, date time.Time) (Summary, error)

	Close() error
}

// sameLocalDay reports whether t falls on the local calendar date of day.
func sameLocalDay(t, day time.Time) bool {
	y1, m1, d1 := t.Local().Date()
	y2, m2, d2 := day.Local().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
