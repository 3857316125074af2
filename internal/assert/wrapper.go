package assert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kode4food/sluice/internal/config"
	"github.com/kode4food/sluice/pkg/api"
)

// Wrapper wraps testify assertions with flow-specific helpers
type Wrapper struct {
	*testing.T
	*assert.Assertions
	Require *assert.Assertions
}

// DefaultRetryInterval is the default polling interval for Eventually checks
const DefaultRetryInterval = 100 * time.Millisecond

// New creates a new test assertion wrapper with both assert and require from
// testify plus flow-specific helpers
func New(t *testing.T) *Wrapper {
	return &Wrapper{
		T:          t,
		Assertions: assert.New(t),
		Require:    assert.New(t),
	}
}

// FlowValid asserts that a flow definition is valid
func (w *Wrapper) FlowValid(f *api.Flow) {
	w.Helper()
	w.NoError(f.Validate())
	w.NotEmpty(f.Name)
	w.NotEmpty(f.StartTask)
	w.NotEmpty(f.Tasks)
}

// FlowInvalid asserts that a flow definition fails validation and returns
// the validation error
func (w *Wrapper) FlowInvalid(
	f *api.Flow, expectedErrorContains string,
) error {
	w.Helper()
	err := f.Validate()
	w.Error(err)
	if err != nil && expectedErrorContains != "" {
		w.Contains(err.Error(), expectedErrorContains)
	}
	return err
}

// ExecutionStatus asserts the status of an execution state
func (w *Wrapper) ExecutionStatus(
	state *api.ExecutionState, expected api.Status,
) {
	w.Helper()
	w.Equal(expected, state.Status)
}

// ExecutionCompleted asserts that an execution reached a terminal state
// with its bookkeeping fields settled
func (w *Wrapper) ExecutionCompleted(state *api.ExecutionState) {
	w.Helper()
	w.NotEqual(api.StatusRunning, state.Status)
	w.Nil(state.CurrentTask)
	w.NotNil(state.CompletedAt)
}

// ExecutionTrace asserts the exact sequence of task invocations recorded
// by an execution
func (w *Wrapper) ExecutionTrace(
	state *api.ExecutionState, names ...api.Name,
) {
	w.Helper()
	trace := make([]api.Name, len(state.TaskResults))
	for i, r := range state.TaskResults {
		trace[i] = r.TaskName
	}
	w.Equal(names, trace)
}

// ConfigValid asserts that a configuration is valid
func (w *Wrapper) ConfigValid(cfg *config.Config) {
	w.Helper()
	w.NoError(cfg.Validate())
	w.True(cfg.APIPort > 0 && cfg.APIPort <= 65535)
	w.True(cfg.TaskTimeout > 0)
}

// ConfigInvalid asserts that a configuration is invalid
func (w *Wrapper) ConfigInvalid(cfg *config.Config, contains string) {
	w.Helper()
	err := cfg.Validate()
	w.Error(err)
	if contains != "" {
		w.Contains(err.Error(), contains)
	}
}

// Eventually runs a condition repeatedly until it passes or times out
func (w *Wrapper) Eventually(
	condition func() bool, timeout time.Duration, msg string, args ...any,
) {
	w.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(DefaultRetryInterval)
	}
	w.Fail(msg, args...)
}
