// Package approval implements the human checkpoint that sits between a
// drafted action and the irreversible submission step.
package approval

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Approver blocks until a human confirms or declines the described
// action. Implementations must honor context cancellation.
type Approver interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Auto approves everything. Used when human_approval_required is off.
type Auto struct{}

func (Auto) Confirm(context.Context, string) (bool, error) { return true, nil }

// Stdin asks on the terminal and waits for a y/n answer.
type Stdin struct {
	In  io.Reader
	Out io.Writer
}

func NewStdin(in io.Reader, out io.Writer) *Stdin {
	return &Stdin{In: in, Out: out}
}

func (s *Stdin) Confirm(ctx context.Context, prompt string) (bool, error) {
	fmt.Fprintf(s.Out, "%s (y/n): ", prompt)

	type answer struct {
		ok  bool
		err error
	}
	ch := make(chan answer, 1)
	go func() {
		line, err := bufio.NewReader(s.In).ReadString('\n')
		if err != nil {
			ch <- answer{err: err}
			return
		}
		ch <- answer{ok: strings.EqualFold(strings.TrimSpace(line), "y")}
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case a := <-ch:
		if a.err != nil {
			return false, fmt.Errorf("failed to read approval answer: %w", a.err)
		}
		return a.ok, nil
	}
}

// timeoutApprover declines when no answer arrives in time. Expiry is an
// abort, not an approval.
type timeoutApprover struct {
	inner   Approver
	timeout time.Duration
}

// WithTimeout bounds how long an approver may block. A zero timeout
// returns the approver unchanged.
func WithTimeout(a Approver, timeout time.Duration) Approver {
	if timeout <= 0 {
		return a
	}
	return &timeoutApprover{inner: a, timeout: timeout}
}

func (t *timeoutApprover) Confirm(ctx context.Context, prompt string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	ok, err := t.inner.Confirm(ctx, prompt)
	if errors.Is(err, context.DeadlineExceeded) {
		//treat expiry as a decline, not a failure
		return false, nil
	}
	return ok, err
}
