package copilot

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-linkedin-copilot/internal/approval"
	"go-linkedin-copilot/internal/ledger"
	"go-linkedin-copilot/internal/ratelimit"
	"go-linkedin-copilot/internal/scraper"
)

func newTestCopilot(t *testing.T, maxPerDay int, minDelay time.Duration) (*Copilot, ledger.Store) {
	t.Helper()
	store, err := ledger.NewFileStore(t.TempDir())
	require.NoError(t, err)
	limiter := ratelimit.New(maxPerDay, minDelay, minDelay)
	return New(store, limiter, approval.Auto{}, zap.NewNop()), store
}

func recruiter(n int) scraper.Recruiter {
	return scraper.Recruiter{
		URL:     fmt.Sprintf("https://www.linkedin.com/in/recruiter-%d", n),
		Name:    fmt.Sprintf("Recruiter %d", n),
		Company: "Acme",
	}
}

func TestDedupGate_NeverInvokesAction(t *testing.T) {
	c, store := newTestCopilot(t, 20, 0)
	ctx := context.Background()
	r := recruiter(1)

	require.NoError(t, store.RecordContact(ctx, ledger.Contact{URL: r.URL, ContactedAt: time.Now()}))

	err := c.SendRecruiterMessage(ctx, r, func(context.Context) error {
		t.Fatal("action callable must not run for a duplicate target")
		return nil
	})
	assert.ErrorIs(t, err, ErrDuplicateAction)
	assert.True(t, IsSkip(err))
}

func TestDailyCeiling_ThirdActionSkipped(t *testing.T) {
	//max_actions_per_day=2, min_delay=0: calls 1 and 2 succeed, call 3
	//is rate-limited with no record for target 3
	c, store := newTestCopilot(t, 2, 0)
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		err := c.SendRecruiterMessage(ctx, recruiter(i), func(context.Context) error { return nil })
		require.NoError(t, err)

		contacted, err := store.IsContacted(ctx, recruiter(i).URL)
		require.NoError(t, err)
		assert.True(t, contacted)
	}

	err := c.SendRecruiterMessage(ctx, recruiter(3), func(context.Context) error {
		t.Fatal("action callable must not run past the daily ceiling")
		return nil
	})
	assert.ErrorIs(t, err, ErrRateLimited)

	contacted, err := store.IsContacted(ctx, recruiter(3).URL)
	require.NoError(t, err)
	assert.False(t, contacted)
}

func TestNoWriteOnFailure(t *testing.T) {
	c, store := newTestCopilot(t, 20, 0)
	ctx := context.Background()
	r := recruiter(1)

	boom := errors.New("send button not found")
	err := c.SendRecruiterMessage(ctx, r, func(context.Context) error { return boom })
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.False(t, IsSkip(err))

	//no contact record: the target stays retryable
	contacted, err := store.IsContacted(ctx, r.URL)
	require.NoError(t, err)
	assert.False(t, contacted)

	//but the failure is on the audit trail
	summary, err := store.DailySummary(ctx, time.Now())
	require.NoError(t, err)
	require.Len(t, summary.RecentActions, 1)
	assert.Equal(t, ledger.ActionError, summary.RecentActions[0].Status)
	assert.Contains(t, summary.RecentActions[0].Detail, "send button not found")
}

func TestDuplicateJob_SecondCallShortCircuits(t *testing.T) {
	c, store := newTestCopilot(t, 20, 0)
	ctx := context.Background()
	job := scraper.Job{
		URL:     "https://www.linkedin.com/jobs/view/123",
		Title:   "Backend Engineer",
		Company: "Acme",
	}

	require.NoError(t, c.ApplyToJob(ctx, job, func(context.Context) error { return nil }))

	err := c.ApplyToJob(ctx, job, func(context.Context) error {
		t.Fatal("action callable must not run twice for the same job URL")
		return nil
	})
	assert.ErrorIs(t, err, ErrDuplicateAction)

	summary, err := store.DailySummary(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.JobsApplied)
}

func TestApprovalDeclined_NothingPerformed(t *testing.T) {
	store, err := ledger.NewFileStore(t.TempDir())
	require.NoError(t, err)
	c := New(store, ratelimit.New(20, 0, 0), declineAll{}, zap.NewNop())
	ctx := context.Background()
	r := recruiter(1)

	err = c.SendRecruiterMessage(ctx, r, func(context.Context) error {
		t.Fatal("action callable must not run without approval")
		return nil
	})
	assert.ErrorIs(t, err, ErrApprovalDeclined)

	contacted, err := store.IsContacted(ctx, r.URL)
	require.NoError(t, err)
	assert.False(t, contacted)

	summary, err := store.DailySummary(ctx, time.Now())
	require.NoError(t, err)
	require.Len(t, summary.RecentActions, 1)
	assert.Equal(t, ledger.ActionWarning, summary.RecentActions[0].Status)
}

func TestCancellationDuringWait_NoRecord(t *testing.T) {
	c, store := newTestCopilot(t, 20, time.Hour)
	ctx := context.Background()

	require.NoError(t, c.SendRecruiterMessage(ctx, recruiter(1), func(context.Context) error { return nil }))

	waitCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	err := c.SendRecruiterMessage(waitCtx, recruiter(2), func(context.Context) error {
		t.Fatal("action callable must not run after a cancelled wait")
		return nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	contacted, err := store.IsContacted(ctx, recruiter(2).URL)
	require.NoError(t, err)
	assert.False(t, contacted)
}

func TestDedupCheckFailure_IsHard(t *testing.T) {
	c := New(brokenStore{}, ratelimit.New(20, 0, 0), approval.Auto{}, zap.NewNop())

	err := c.SendRecruiterMessage(context.Background(), recruiter(1), func(context.Context) error {
		t.Fatal("action callable must not run when the dedup check fails")
		return nil
	})
	require.Error(t, err)
	assert.False(t, IsSkip(err))
}

func TestFilterNewRecruiters(t *testing.T) {
	c, store := newTestCopilot(t, 20, 0)
	ctx := context.Background()

	require.NoError(t, store.RecordContact(ctx, ledger.Contact{URL: recruiter(1).URL, ContactedAt: time.Now()}))

	fresh, err := c.FilterNewRecruiters(ctx, []scraper.Recruiter{recruiter(1), recruiter(2)})
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, recruiter(2).URL, fresh[0].URL)
}

type declineAll struct{}

func (declineAll) Confirm(context.Context, string) (bool, error) { return false, nil }

// brokenStore fails every dedup check, standing in for unreachable storage.
type brokenStore struct{}

var errStorageDown = errors.New("storage unavailable")

func (brokenStore) IsContacted(context.Context, string) (bool, error) { return false, errStorageDown }
func (brokenStore) RecordContact(context.Context, ledger.Contact) error {
	return errStorageDown
}
func (brokenStore) IsApplied(context.Context, string) (bool, error) { return false, errStorageDown }
func (brokenStore) RecordApplication(context.Context, ledger.Application) error {
	return errStorageDown
}
func (brokenStore) LogAction(context.Context, ledger.Entry) error { return errStorageDown }
func (brokenStore) DailySummary(context.Context, time.Time) (ledger.Summary, error) {
	return ledger.Summary{}, errStorageDown
}
func (brokenStore) Close() error { return nil }
