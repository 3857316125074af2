package log

import "log/slog"

func ExecutionID[T ~string](id T) slog.Attr {
	return slog.String("execution_id", string(id))
}

func FlowID[T ~string](id T) slog.Attr {
	return slog.String("flow_id", string(id))
}

func TaskName[T ~string](name T) slog.Attr {
	return slog.String("task", string(name))
}

func Status[T ~string](status T) slog.Attr {
	return slog.String("status", string(status))
}

func Username(name string) slog.Attr {
	return slog.String("username", name)
}

func Role[T ~string](role T) slog.Attr {
	return slog.String("role", string(role))
}

func Error(err error) slog.Attr {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return slog.String("error", msg)
}

func ErrorString(msg string) slog.Attr {
	return slog.String("error", msg)
}
