package copilot

import "errors"

var (
	// ErrDuplicateAction means the target was already acted upon; the
	// action is skipped, nothing is wrong with the system.
	ErrDuplicateAction = errors.New("target already acted upon")

	// ErrRateLimited means the daily ceiling is reached; the action is
	// skipped and can be retried on a later run.
	ErrRateLimited = errors.New("daily action limit reached")

	// ErrApprovalDeclined means the human checkpoint said no (or timed
	// out). No action was performed and nothing was recorded.
	ErrApprovalDeclined = errors.New("approval declined")
)

// IsSkip reports whether err is one of the soft skip reasons, as opposed
// to a real failure the operator should look at.
func IsSkip(err error) bool {
	return errors.Is(err, ErrDuplicateAction) ||
		errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrApprovalDeclined)
}
