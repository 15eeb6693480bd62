// Package copilot orchestrates outreach. Every externally visible action
// goes through one gate: dedup check, rate check, human approval, the
// delegated side effect, and only then the ledger write. The ordering is
// the safety invariant — checks always precede the action, the record
// always follows a confirmed success.
package copilot

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"go-linkedin-copilot/internal/approval"
	"go-linkedin-copilot/internal/ledger"
	"go-linkedin-copilot/internal/ratelimit"
	"go-linkedin-copilot/internal/scraper"
)

// PerformFunc is the externally supplied side effect (navigate, fill,
// click-to-send). It runs only after the gate passes.
type PerformFunc func(ctx context.Context) error

type Copilot struct {
	ledger   ledger.Store
	limiter  *ratelimit.Limiter
	approver approval.Approver
	log      *zap.Logger
	now      func() time.Time
}

func New(store ledger.Store, limiter *ratelimit.Limiter, approver approval.Approver, log *zap.Logger) *Copilot {
	return &Copilot{
		ledger:   store,
		limiter:  limiter,
		approver: approver,
		log:      log,
		now:      time.Now,
	}
}

// action carries one gated operation through the authorization sequence.
type action struct {
	kind    string
	url     string
	name    string
	prompt  string
	check   func(ctx context.Context) (bool, error)
	record  func(ctx context.Context) error
	perform PerformFunc
}

// SendRecruiterMessage gates and performs one recruiter message. send is
// the delegated UI action; on success the contact is recorded with
// message_sent=true.
func (c *Copilot) SendRecruiterMessage(ctx context.Context, r scraper.Recruiter, send PerformFunc) error {
	return c.authorize(ctx, action{
		kind:   "send_message",
		url:    r.URL,
		name:   r.Name,
		prompt: fmt.Sprintf("Send message to %s at %s?", r.Name, r.Company),
		check: func(ctx context.Context) (bool, error) {
			return c.ledger.IsContacted(ctx, r.URL)
		},
		record: func(ctx context.Context) error {
			return c.ledger.RecordContact(ctx, ledger.Contact{
				URL:         r.URL,
				Name:        r.Name,
				Company:     r.Company,
				ContactedAt: c.now(),
				MessageSent: true,
			})
		},
		perform: send,
	})
}

// ApplyToJob gates and performs one job application.
func (c *Copilot) ApplyToJob(ctx context.Context, j scraper.Job, apply PerformFunc) error {
	return c.authorize(ctx, action{
		kind:   "apply_job",
		url:    j.URL,
		name:   j.Title,
		prompt: fmt.Sprintf("Apply to %q at %s?", j.Title, j.Company),
		check: func(ctx context.Context) (bool, error) {
			return c.ledger.IsApplied(ctx, j.URL)
		},
		record: func(ctx context.Context) error {
			return c.ledger.RecordApplication(ctx, ledger.Application{
				URL:       j.URL,
				Title:     j.Title,
				Company:   j.Company,
				AppliedAt: c.now(),
				Status:    ledger.StatusSubmitted,
			})
		},
		perform: apply,
	})
}

func (c *Copilot) authorize(ctx context.Context, act action) error {
	// 1. dedup check. A storage failure here is hard: proceeding could
	// mean duplicate outreach.
	done, err := act.check(ctx)
	if err != nil {
		return fmt.Errorf("dedup check for %s: %w", act.url, err)
	}
	if done {
		c.log.Info("skipping, already acted upon",
			zap.String("kind", act.kind), zap.String("target", act.url))
		return fmt.Errorf("%s %s: %w", act.kind, act.url, ErrDuplicateAction)
	}

	// 2. rate check; may block for the minimum spacing.
	ok, err := c.limiter.CanPerformAction(ctx)
	if err != nil {
		//cancellation mid-wait: clean abort, nothing recorded
		return fmt.Errorf("rate-limit wait aborted for %s: %w", act.url, err)
	}
	if !ok {
		c.log.Warn("skipping, rate limited",
			zap.String("kind", act.kind), zap.String("target", act.url))
		return fmt.Errorf("%s %s: %w", act.kind, act.url, ErrRateLimited)
	}

	// 3. human checkpoint before the irreversible step.
	approved, err := c.approver.Confirm(ctx, act.prompt)
	if err != nil {
		return fmt.Errorf("approval for %s: %w", act.url, err)
	}
	if !approved {
		c.appendLog(ctx, act, ledger.ActionWarning, "not approved")
		return fmt.Errorf("%s %s: %w", act.kind, act.url, ErrApprovalDeclined)
	}

	// 4. the delegated side effect.
	if err := act.perform(ctx); err != nil {
		//no ledger record: the target stays retryable on a later run
		c.appendLog(ctx, act, ledger.ActionError, err.Error())
		return fmt.Errorf("%s failed for %s: %w", act.kind, act.url, err)
	}

	// 5. record only after confirmed success.
	if err := act.record(ctx); err != nil {
		return fmt.Errorf("failed to record %s for %s: %w", act.kind, act.url, err)
	}
	c.limiter.RecordAction()
	c.appendLog(ctx, act, ledger.ActionSuccess, "")

	c.log.Info("action completed",
		zap.String("kind", act.kind),
		zap.String("target", act.url),
		zap.Duration("suggested_pause", c.limiter.NextDelay()))
	return nil
}

// appendLog writes an audit entry. Failures here are observability-only
// and never fail the caller's operation.
func (c *Copilot) appendLog(ctx context.Context, act action, status ledger.ActionStatus, detail string) {
	err := c.ledger.LogAction(ctx, ledger.Entry{
		Kind:       act.kind,
		TargetURL:  act.url,
		TargetName: act.name,
		Timestamp:  c.now(),
		Status:     status,
		Detail:     detail,
	})
	if err != nil {
		c.log.Warn("failed to append action log", zap.Error(err))
	}
}

// FilterNewRecruiters drops recruiters the ledger already knows about,
// so no navigation is wasted on targets that would be skipped anyway.
func (c *Copilot) FilterNewRecruiters(ctx context.Context, recruiters []scraper.Recruiter) ([]scraper.Recruiter, error) {
	fresh := make([]scraper.Recruiter, 0, len(recruiters))
	for _, r := range recruiters {
		contacted, err := c.ledger.IsContacted(ctx, r.URL)
		if err != nil {
			return nil, fmt.Errorf("dedup check for %s: %w", r.URL, err)
		}
		if !contacted {
			fresh = append(fresh, r)
		}
	}
	return fresh, nil
}

// FilterNewJobs drops jobs that were already applied to.
func (c *Copilot) FilterNewJobs(ctx context.Context, jobs []scraper.Job) ([]scraper.Job, error) {
	fresh := make([]scraper.Job, 0, len(jobs))
	for _, j := range jobs {
		applied, err := c.ledger.IsApplied(ctx, j.URL)
		if err != nil {
			return nil, fmt.Errorf("dedup check for %s: %w", j.URL, err)
		}
		if !applied {
			fresh = append(fresh, j)
		}
	}
	return fresh, nil
}
