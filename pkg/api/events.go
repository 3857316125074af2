package api

type (
	// ExecutionStartedEvent is emitted when a flow execution begins,
	// after its state is registered but before the first task runs
	ExecutionStartedEvent struct {
		ExecutionID ExecutionID `json:"execution_id"`
		FlowID      FlowID      `json:"flow_id"`
		FlowName    string      `json:"flow_name"`
		StartTask   Name        `json:"start_task"`
	}

	// TaskStartedEvent is emitted when a task invocation begins
	TaskStartedEvent struct {
		ExecutionID ExecutionID `json:"execution_id"`
		FlowID      FlowID      `json:"flow_id"`
		TaskName    Name        `json:"task_name"`
	}

	// TaskCompletedEvent is emitted when a task completes successfully
	TaskCompletedEvent struct {
		ExecutionID ExecutionID `json:"execution_id"`
		FlowID      FlowID      `json:"flow_id"`
		TaskName    Name        `json:"task_name"`
		Data        Args        `json:"data,omitempty"`
		Duration    int64       `json:"duration"`
	}

	// TaskFailedEvent is emitted when a task invocation fails
	TaskFailedEvent struct {
		ExecutionID ExecutionID `json:"execution_id"`
		FlowID      FlowID      `json:"flow_id"`
		TaskName    Name        `json:"task_name"`
		Error       string      `json:"error"`
	}

	// ExecutionCompletedEvent is emitted when an execution reaches a
	// terminal status without a fatal error
	ExecutionCompletedEvent struct {
		ExecutionID ExecutionID `json:"execution_id"`
		FlowID      FlowID      `json:"flow_id"`
		Status      Status      `json:"status"`
		TaskCount   int         `json:"task_count"`
	}

	// ExecutionFailedEvent is emitted when an execution fails fatally
	ExecutionFailedEvent struct {
		ExecutionID ExecutionID `json:"execution_id"`
		FlowID      FlowID      `json:"flow_id"`
		Error       string      `json:"error"`
	}

	EventType string
)

const (
	EventTypeExecutionStarted   EventType = "execution_started"
	EventTypeTaskStarted        EventType = "task_started"
	EventTypeTaskCompleted      EventType = "task_completed"
	EventTypeTaskFailed         EventType = "task_failed"
	EventTypeExecutionCompleted EventType = "execution_completed"
	EventTypeExecutionFailed    EventType = "execution_failed"
)
