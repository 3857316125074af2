package helpers

import (
	"context"
	"sync/atomic"

	"github.com/kode4food/sluice/pkg/api"
)

// SuccessTask returns a task implementation that succeeds with the
// provided data
func SuccessTask(data api.Args) api.TaskFunc {
	return func(context.Context, api.Args) *api.TaskOutput {
		return &api.TaskOutput{
			Status: api.StatusSuccess,
			Data:   data,
		}
	}
}

// FailTask returns a task implementation that fails with the provided
// error message
func FailTask(msg string) api.TaskFunc {
	return func(context.Context, api.Args) *api.TaskOutput {
		return &api.TaskOutput{
			Status: api.StatusFailure,
			Error:  msg,
		}
	}
}

// PanicTask returns a task implementation that panics
func PanicTask(msg string) api.TaskFunc {
	return func(context.Context, api.Args) *api.TaskOutput {
		panic(msg)
	}
}

// NilOutputTask returns a task implementation that produces no output
func NilOutputTask() api.TaskFunc {
	return func(context.Context, api.Args) *api.TaskOutput {
		return nil
	}
}

// BlockTask returns a task implementation that blocks until its context
// is done
func BlockTask() api.TaskFunc {
	return func(ctx context.Context, _ api.Args) *api.TaskOutput {
		<-ctx.Done()
		return &api.TaskOutput{Status: api.StatusSuccess}
	}
}

// EchoTask returns a task implementation that succeeds and reports the
// args it received, for asserting context accumulation
func EchoTask() api.TaskFunc {
	return func(_ context.Context, args api.Args) *api.TaskOutput {
		return &api.TaskOutput{
			Status: api.StatusSuccess,
			Data:   api.Args{"received": args},
		}
	}
}

// CountingTask returns a task implementation that succeeds and counts
// its invocations
func CountingTask(count *atomic.Int64) api.TaskFunc {
	return func(context.Context, api.Args) *api.TaskOutput {
		count.Add(1)
		return &api.TaskOutput{
			Status: api.StatusSuccess,
			Data:   api.Args{"count": count.Load()},
		}
	}
}
