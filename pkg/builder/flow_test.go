package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kode4food/sluice/pkg/api"
	"github.com/kode4food/sluice/pkg/builder"
)

func TestBuildFlow(t *testing.T) {
	flow, err := builder.NewFlow("Data Pipeline").
		WithStartTask("fetch_data").
		WithTasks("fetch_data", "process_data", "store_data").
		Branch("fetch_data", "process_data", api.EndTask).
		Branch("process_data", "store_data", api.EndTask).
		Build()

	assert.NoError(t, err)
	assert.Equal(t, "Data Pipeline", flow.Name)
	assert.Equal(t, api.Name("fetch_data"), flow.StartTask)
	assert.Len(t, flow.Tasks, 3)
	assert.Len(t, flow.Conditions, 2)
	assert.NotEmpty(t, flow.ID)
}

func TestBuildGeneratedCondition(t *testing.T) {
	flow, err := builder.NewFlow("branching").
		WithStartTask("validate_data").
		WithTasks("validate_data", "send_notification").
		BranchOn("validate_data", api.StatusSuccess,
			"send_notification", api.EndTask).
		Build()

	assert.NoError(t, err)
	cond := flow.Conditions[0]
	assert.Equal(t, api.Name("validate_data_check"), cond.Name)
	assert.Equal(t, api.Name("validate_data"), cond.SourceTask)
	assert.Equal(t, api.StatusSuccess, cond.Outcome)
	assert.Equal(t, api.Name("send_notification"), cond.TargetTaskSuccess)
	assert.Equal(t, api.EndTask, cond.TargetTaskFailure)
}

func TestBuildValidates(t *testing.T) {
	_, err := builder.NewFlow("broken").
		WithStartTask("missing").
		WithTask("fetch_data").
		Build()

	assert.ErrorIs(t, err, api.ErrStartTaskNotFound)
}

func TestBuilderCopyOnWrite(t *testing.T) {
	base := builder.NewFlow("base").
		WithStartTask("fetch_data").
		WithTask("fetch_data")

	extended := base.WithTask("process_data")

	baseFlow, err := base.Build()
	assert.NoError(t, err)
	extendedFlow, err := extended.Build()
	assert.NoError(t, err)

	assert.Len(t, baseFlow.Tasks, 1)
	assert.Len(t, extendedFlow.Tasks, 2)
}

func TestWithTaskDescribed(t *testing.T) {
	flow, err := builder.NewFlow("documented").
		WithStartTask("fetch_data").
		WithTaskDescribed("fetch_data", "Fetches data from the source").
		Build()

	assert.NoError(t, err)
	assert.Equal(t,
		"Fetches data from the source", flow.Tasks[0].Description)
}

func TestWithID(t *testing.T) {
	flow, err := builder.NewFlow("named").
		WithID("flow-fixed").
		WithStartTask("fetch_data").
		WithTask("fetch_data").
		Build()

	assert.NoError(t, err)
	assert.Equal(t, api.FlowID("flow-fixed"), flow.ID)
}
