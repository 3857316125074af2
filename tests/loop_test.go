package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kode4food/sluice/internal/assert/helpers"
	"github.com/kode4food/sluice/internal/engine"
	"github.com/kode4food/sluice/pkg/api"
	"github.com/kode4food/sluice/pkg/builder"
)

// TestRetryUntilSuccess tests that a failure branch can loop back to its
// own source task, retrying until the task eventually succeeds
func TestRetryUntilSuccess(t *testing.T) {
	helpers.WithTestEnv(t, func(env *helpers.TestEnv) {
		attempts := 0
		env.Registry.Register("poll_endpoint",
			func(context.Context, api.Args) *api.TaskOutput {
				attempts++
				if attempts < 3 {
					return &api.TaskOutput{
						Status: api.StatusFailure,
						Error:  "endpoint not ready",
					}
				}
				return &api.TaskOutput{
					Status: api.StatusSuccess,
					Data:   api.Args{"attempt": attempts},
				}
			})
		env.Registry.Register("record_result",
			helpers.SuccessTask(api.Args{"recorded": true}))

		flow, err := builder.NewFlow("poller").
			WithStartTask("poll_endpoint").
			WithTasks("poll_endpoint", "record_result").
			Branch("poll_endpoint", "record_result", "poll_endpoint").
			Branch("record_result", api.EndTask, api.EndTask).
			Build()
		require.NoError(t, err)

		res := env.Engine.Execute(context.Background(), flow, nil)

		assert.Equal(t, api.StatusSuccess, res.Status)
		assert.Equal(t, 3, attempts)
		assert.Equal(t, []api.Name{
			"poll_endpoint", "poll_endpoint", "poll_endpoint",
			"record_result",
		}, taskNames(res.ExecutionState))

		// only the successful attempt contributed data
		polled := res.ExecutionState.TaskResults[2]
		assert.Equal(t, 3, polled.Data.GetInt("attempt", 0))
	})
}

// TestPingPongGuard tests that two tasks routing to each other trip the
// iteration guard rather than looping forever
func TestPingPongGuard(t *testing.T) {
	helpers.WithTestEnv(t, func(env *helpers.TestEnv) {
		env.Registry.Register("ping", helpers.SuccessTask(nil))
		env.Registry.Register("pong", helpers.SuccessTask(nil))

		flow, err := builder.NewFlow("ping-pong").
			WithStartTask("ping").
			WithTasks("ping", "pong").
			Branch("ping", "pong", "pong").
			Branch("pong", "ping", "ping").
			Build()
		require.NoError(t, err)

		res := env.Engine.Execute(context.Background(), flow, nil)

		assert.Equal(t, api.StatusFailure, res.Status)
		assert.Contains(t, res.Message, "possible infinite loop")
		assert.Len(t, res.ExecutionState.TaskResults,
			engine.MaxIterations)
	})
}
