package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kode4food/sluice/internal/assert/helpers"
	"github.com/kode4food/sluice/pkg/api"
	"github.com/kode4food/sluice/pkg/builder"
)

// TestFailureRoutesToRecovery tests that a mid-pipeline failure routes to
// a recovery task while the rest of the pipeline is skipped
func TestFailureRoutesToRecovery(t *testing.T) {
	helpers.WithTestEnv(t, func(env *helpers.TestEnv) {
		env.Registry.Register("extract",
			helpers.SuccessTask(api.Args{"rows": 10}))
		env.Registry.Register("transform",
			helpers.FailTask("malformed row 7"))
		env.Registry.Register("load", helpers.SuccessTask(nil))
		env.Registry.Register("rollback",
			helpers.SuccessTask(api.Args{"rolled_back": true}))

		flow, err := builder.NewFlow("etl").
			WithStartTask("extract").
			WithTasks("extract", "transform", "load", "rollback").
			Branch("extract", "transform", api.EndTask).
			Branch("transform", "load", "rollback").
			Build()
		require.NoError(t, err)

		res := env.Engine.Execute(context.Background(), flow, nil)

		assert.Equal(t, api.StatusSuccess, res.Status)
		assert.Equal(t,
			[]api.Name{"extract", "transform", "rollback"},
			taskNames(res.ExecutionState))

		failed, ok := res.ExecutionState.FailedTask()
		assert.True(t, ok)
		assert.Equal(t, api.Name("transform"), failed)
		assert.Equal(t, "malformed row 7",
			res.ExecutionState.TaskResults[1].Error)
	})
}

// TestPanicIsolation tests that a panicking task is captured as a failed
// result and the flow continues down its failure branch
func TestPanicIsolation(t *testing.T) {
	helpers.WithTestEnv(t, func(env *helpers.TestEnv) {
		env.Registry.Register("parse",
			helpers.PanicTask("index out of range"))
		env.Registry.Register("archive", helpers.SuccessTask(nil))
		env.Registry.Register("report",
			helpers.SuccessTask(api.Args{"reported": true}))

		flow, err := builder.NewFlow("parser").
			WithStartTask("parse").
			WithTasks("parse", "archive", "report").
			Branch("parse", "archive", "report").
			Build()
		require.NoError(t, err)

		res := env.Engine.Execute(context.Background(), flow, nil)

		assert.Equal(t, api.StatusSuccess, res.Status)
		assert.Equal(t, []api.Name{"parse", "report"},
			taskNames(res.ExecutionState))

		parsed := res.ExecutionState.TaskResults[0]
		assert.Equal(t, api.StatusFailure, parsed.Status)
		assert.Contains(t, parsed.Error, "task execution failed")
		assert.Contains(t, parsed.Error, "index out of range")
	})
}

// TestTerminalFailureCompletesFlow tests that a failing final task with
// no condition still lets the flow complete
func TestTerminalFailureCompletesFlow(t *testing.T) {
	helpers.WithTestEnv(t, func(env *helpers.TestEnv) {
		env.Registry.Register("cleanup",
			helpers.FailTask("nothing to clean"))

		res := env.Engine.Execute(
			context.Background(),
			helpers.SingleTaskFlow(t, "cleanup"),
			nil,
		)

		assert.Equal(t, api.StatusSuccess, res.Status)
		assert.Equal(t,
			"Flow 'single' completed successfully. Executed 1 task(s).",
			res.Message)
	})
}

// TestMissingFlowTaskAborts tests that routing to a task the flow never
// declared aborts the run with a failure
func TestMissingFlowTaskAborts(t *testing.T) {
	helpers.WithTestEnv(t, func(env *helpers.TestEnv) {
		env.Registry.Register("begin", helpers.SuccessTask(nil))

		flow, err := builder.NewFlow("dangling").
			WithStartTask("begin").
			WithTask("begin").
			Branch("begin", "missing", api.EndTask).
			Build()
		require.NoError(t, err)

		res := env.Engine.Execute(context.Background(), flow, nil)

		assert.Equal(t, api.StatusFailure, res.Status)
		assert.Equal(t,
			"flow execution failed: task 'missing' not found in flow",
			res.Message)
		assert.Equal(t, "task 'missing' not found in flow",
			res.ExecutionState.Error)
	})
}

// TestUnregisteredTaskRecorded tests that a task declared in the flow
// but never registered produces a failed result rather than aborting
func TestUnregisteredTaskRecorded(t *testing.T) {
	helpers.WithTestEnv(t, func(env *helpers.TestEnv) {
		res := env.Engine.Execute(
			context.Background(),
			helpers.SingleTaskFlow(t, "phantom"),
			nil,
		)

		assert.Equal(t, api.StatusSuccess, res.Status)
		require.Len(t, res.ExecutionState.TaskResults, 1)

		result := res.ExecutionState.TaskResults[0]
		assert.Equal(t, api.StatusFailure, result.Status)
		assert.Contains(t, result.Error, "task not found")
	})
}
