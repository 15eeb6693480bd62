package reporter

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-linkedin-copilot/internal/ledger"
	"go-linkedin-copilot/internal/ratelimit"
)

func TestPublish_WritesOneFilePerDay(t *testing.T) {
	ctx := context.Background()
	store, err := ledger.NewFileStore(t.TempDir())
	require.NoError(t, err)

	limiter := ratelimit.New(20, 0, 0)
	limiter.RecordAction()

	require.NoError(t, store.RecordContact(ctx, ledger.Contact{
		URL:         "https://www.linkedin.com/in/jane-doe",
		Name:        "Jane Doe",
		ContactedAt: time.Now(),
		MessageSent: true,
	}))

	logDir := t.TempDir()
	r := New(store, limiter, logDir, zap.NewNop())

	report, err := r.Publish(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.RecruitersContacted)
	assert.Equal(t, 1, report.RateStats.ActionsToday)
	assert.Equal(t, 19, report.RateStats.Remaining)

	path := logDir + "/summary_" + report.Summary.Date + ".json"
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, report.Summary.Date, decoded.Summary.Date)
	assert.Equal(t, report.Summary.RecruitersContacted, decoded.Summary.RecruitersContacted)
}

func TestGenerate_EmptyDay(t *testing.T) {
	store, err := ledger.NewFileStore(t.TempDir())
	require.NoError(t, err)
	r := New(store, ratelimit.New(20, 0, 0), t.TempDir(), zap.NewNop())

	report, err := r.Generate(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, report.Summary.RecruitersContacted)
	assert.Zero(t, report.Summary.JobsApplied)
	assert.Equal(t, 20, report.RateStats.Remaining)
}
