package api

type (
	// Name is a string identifier for tasks, conditions, and arguments
	Name string

	// FlowID is a unique identifier for a flow definition
	FlowID string

	// ExecutionID is a unique identifier for a single flow execution
	ExecutionID string
)

// EndTask is the reserved transition target that terminates a flow. It is
// never the name of a real task
const EndTask Name = "end"
