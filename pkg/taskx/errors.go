package taskx

import (
	"context"
	"errors"

	"github.com/Abraxas-365/taskx/pkg/errx"
)

var taskxErrors = errx.NewRegistry("TASKX")

var (
	ErrAlreadyResolved = taskxErrors.Register("ALREADY_RESOLVED", errx.TypeConflict, 409, "Promise already resolved")
	ErrNoTasks         = taskxErrors.Register("NO_TASKS", errx.TypeValidation, 400, "At least one task is required")
	ErrParallelFailed  = taskxErrors.Register("PARALLEL_FAILED", errx.TypeInternal, 500, "Parallel run failed")
)

// IsCanceled reports whether err represents cancellation rather than an
// ordinary failure: a context cancellation or an expired deadline, possibly
// wrapped. Together with err == nil this gives callers the three terminal
// kinds of a task: success, failure, canceled.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
