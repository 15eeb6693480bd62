package approval

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdin_Approves(t *testing.T) {
	a := NewStdin(strings.NewReader("y\n"), io.Discard)
	ok, err := a.Confirm(context.Background(), "Send this message?")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStdin_Declines(t *testing.T) {
	for _, input := range []string{"n\n", "no\n", "\n", "yes\n"} {
		a := NewStdin(strings.NewReader(input), io.Discard)
		ok, err := a.Confirm(context.Background(), "Send this message?")
		require.NoError(t, err)
		assert.False(t, ok, "input %q should decline", input)
	}
}

func TestStdin_CancelledContext(t *testing.T) {
	//a reader that never produces input
	r, _ := io.Pipe()
	a := NewStdin(r, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	ok, err := a.Confirm(ctx, "Send this message?")
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWithTimeout_ExpiryIsDecline(t *testing.T) {
	r, _ := io.Pipe()
	a := WithTimeout(NewStdin(r, io.Discard), 50*time.Millisecond)

	ok, err := a.Confirm(context.Background(), "Apply to this job?")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWithTimeout_ZeroReturnsUnwrapped(t *testing.T) {
	a := Auto{}
	assert.Equal(t, Approver(a), WithTimeout(a, 0))
}
