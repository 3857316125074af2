package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/kode4food/sluice/internal/assert"
	"github.com/kode4food/sluice/internal/assert/helpers"
	"github.com/kode4food/sluice/internal/engine"
	"github.com/kode4food/sluice/pkg/api"
)

func TestRegister(t *testing.T) {
	as := assert.New(t)
	reg := engine.NewRegistry()

	reg.Register("fetch_data", helpers.SuccessTask(nil))

	as.True(reg.Has("fetch_data"))
	as.False(reg.Has("process_data"))
	as.Equal(1, reg.Len())

	fn, err := reg.Get("fetch_data")
	as.NoError(err)
	as.NotNil(fn)
}

func TestRegisterOverwrite(t *testing.T) {
	as := assert.New(t)
	reg := engine.NewRegistry()

	reg.Register("fetch_data", helpers.FailTask("first"))
	reg.Register("fetch_data", helpers.SuccessTask(nil))

	as.Equal(1, reg.Len())

	result := reg.Invoke(context.Background(), "fetch_data", nil)
	as.Equal(api.StatusSuccess, result.Status)
}

func TestGetMissing(t *testing.T) {
	as := assert.New(t)
	reg := engine.NewRegistry()

	fn, err := reg.Get("missing")
	as.Nil(fn)
	as.ErrorIs(err, engine.ErrTaskNotFound)
	as.Contains(err.Error(), "missing")
}

func TestList(t *testing.T) {
	as := assert.New(t)
	reg := engine.NewRegistry()

	reg.Register("store_data", helpers.SuccessTask(nil))
	reg.Register("fetch_data", helpers.SuccessTask(nil))
	reg.Register("process_data", helpers.SuccessTask(nil))

	as.Equal([]api.Name{
		"fetch_data", "process_data", "store_data",
	}, reg.List())
}

func TestClear(t *testing.T) {
	as := assert.New(t)
	reg := engine.NewRegistry()

	reg.Register("fetch_data", helpers.SuccessTask(nil))
	reg.Clear()

	as.Equal(0, reg.Len())
	as.Empty(reg.List())
}

func TestInvokeSuccess(t *testing.T) {
	as := assert.New(t)
	reg := engine.NewRegistry()
	reg.Register("fetch_data", helpers.SuccessTask(api.Args{"rows": 3}))

	result := reg.Invoke(context.Background(), "fetch_data", nil)

	as.Equal(api.Name("fetch_data"), result.TaskName)
	as.Equal(api.StatusSuccess, result.Status)
	as.Equal(3, result.Data.GetInt("rows", 0))
	as.Empty(result.Error)
	as.NotNil(result.CompletedAt)
	as.False(result.StartedAt.IsZero())
}

func TestInvokeFailure(t *testing.T) {
	as := assert.New(t)
	reg := engine.NewRegistry()
	reg.Register("fetch_data", helpers.FailTask("upstream unavailable"))

	result := reg.Invoke(context.Background(), "fetch_data", nil)

	as.Equal(api.StatusFailure, result.Status)
	as.Equal("upstream unavailable", result.Error)
	as.NotNil(result.CompletedAt)
}

func TestInvokeMissingTask(t *testing.T) {
	as := assert.New(t)
	reg := engine.NewRegistry()

	result := reg.Invoke(context.Background(), "missing", nil)

	as.Equal(api.StatusFailure, result.Status)
	as.Contains(result.Error, "task not found")
	as.Contains(result.Error, "missing")
	as.NotNil(result.CompletedAt)
}

func TestInvokePanicRecovered(t *testing.T) {
	as := assert.New(t)
	reg := engine.NewRegistry()
	reg.Register("fetch_data", helpers.PanicTask("kaboom"))

	result := reg.Invoke(context.Background(), "fetch_data", nil)

	as.Equal(api.StatusFailure, result.Status)
	as.Contains(result.Error, "task execution failed")
	as.Contains(result.Error, "kaboom")
}

func TestInvokeNilOutput(t *testing.T) {
	as := assert.New(t)
	reg := engine.NewRegistry()
	reg.Register("fetch_data", helpers.NilOutputTask())

	result := reg.Invoke(context.Background(), "fetch_data", nil)

	as.Equal(api.StatusFailure, result.Status)
	as.Equal("invalid task output", result.Error)
}

func TestInvokeUnknownStatusIsFailure(t *testing.T) {
	as := assert.New(t)
	reg := engine.NewRegistry()
	reg.Register("fetch_data",
		func(context.Context, api.Args) *api.TaskOutput {
			return &api.TaskOutput{
				Status: "finished",
				Data:   api.Args{"rows": 1},
			}
		})

	result := reg.Invoke(context.Background(), "fetch_data", nil)

	// data carries over even though the status maps to failure
	as.Equal(api.StatusFailure, result.Status)
	as.Equal(1, result.Data.GetInt("rows", 0))
}

func TestInvokeTimeout(t *testing.T) {
	as := assert.New(t)
	reg := engine.NewRegistry()
	reg.Register("fetch_data", helpers.BlockTask())

	ctx, cancel := context.WithTimeout(
		context.Background(), 50*time.Millisecond,
	)
	defer cancel()

	result := reg.Invoke(ctx, "fetch_data", nil)

	as.Equal(api.StatusFailure, result.Status)
	as.Equal("task execution timed out", result.Error)
}

func TestInvokeCanceled(t *testing.T) {
	as := assert.New(t)
	reg := engine.NewRegistry()
	reg.Register("fetch_data", helpers.BlockTask())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	result := reg.Invoke(ctx, "fetch_data", nil)

	as.Equal(api.StatusFailure, result.Status)
	as.Contains(result.Error, "context canceled")
}
