package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kode4food/sluice/pkg/api"
	"github.com/kode4food/sluice/pkg/builder"
)

// LinearFlow creates a three-task pipeline that proceeds on success and
// bails out to the end marker on failure
func LinearFlow(t *testing.T) *api.Flow {
	t.Helper()

	flow, err := builder.NewFlow("linear").
		WithStartTask("fetch_data").
		WithTasks("fetch_data", "process_data", "store_data").
		Branch("fetch_data", "process_data", api.EndTask).
		Branch("process_data", "store_data", api.EndTask).
		Build()
	require.NoError(t, err)
	return flow
}

// BranchingFlow creates a flow whose first task routes to a success path
// or a failure path
func BranchingFlow(t *testing.T) *api.Flow {
	t.Helper()

	flow, err := builder.NewFlow("branching").
		WithStartTask("validate_data").
		WithTasks("validate_data", "store_data", "send_notification").
		Branch("validate_data", "store_data", "send_notification").
		Build()
	require.NoError(t, err)
	return flow
}

// SingleTaskFlow creates a flow that runs one task and ends
func SingleTaskFlow(t *testing.T, name api.Name) *api.Flow {
	t.Helper()

	flow, err := builder.NewFlow("single").
		WithStartTask(name).
		WithTask(name).
		Build()
	require.NoError(t, err)
	return flow
}

// LoopFlow creates a flow whose only task unconditionally routes back to
// itself, for exercising the iteration guard
func LoopFlow(t *testing.T) *api.Flow {
	t.Helper()

	flow, err := builder.NewFlow("loop").
		WithStartTask("fetch_data").
		WithTask("fetch_data").
		Branch("fetch_data", "fetch_data", "fetch_data").
		Build()
	require.NoError(t, err)
	return flow
}
