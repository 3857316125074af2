package api

import "maps"

// Args represents a map of named values passed to or produced by tasks.
// Accumulated execution context is carried between tasks as Args, with each
// task's output data merged in under "<task_name>_result"
type Args map[Name]any

// Set creates a new Args with the specified name-value pair added
func (a Args) Set(name Name, value any) Args {
	if a == nil {
		return Args{name: value}
	}
	res := maps.Clone(a)
	res[name] = value
	return res
}

// GetString retrieves a string value from args, returning defaultValue if
// not found or wrong type
func (a Args) GetString(name Name, defaultValue string) string {
	val, ok := a[name]
	if !ok {
		return defaultValue
	}
	str, ok := val.(string)
	if !ok {
		return defaultValue
	}
	return str
}

// GetBool retrieves a boolean value from args, returning defaultValue if
// not found or wrong type
func (a Args) GetBool(name Name, defaultValue bool) bool {
	val, ok := a[name]
	if !ok {
		return defaultValue
	}
	b, ok := val.(bool)
	if !ok {
		return defaultValue
	}
	return b
}

// GetInt retrieves an integer value from args, returning defaultValue if
// not found or wrong type. Supports both int and float64 (converting from
// JSON numbers)
func (a Args) GetInt(name Name, defaultValue int) int {
	val, ok := a[name]
	if !ok {
		return defaultValue
	}
	if i, ok := val.(int); ok {
		return i
	}
	if f, ok := val.(float64); ok {
		return int(f)
	}
	return defaultValue
}

// GetArgs retrieves a nested Args value, accepting both Args and the
// map[string]any shape produced by JSON decoding. Returns nil if the value
// is absent or not a map
func (a Args) GetArgs(name Name) Args {
	val, ok := a[name]
	if !ok {
		return nil
	}
	switch m := val.(type) {
	case Args:
		return m
	case map[Name]any:
		return m
	case map[string]any:
		res := make(Args, len(m))
		for k, v := range m {
			res[Name(k)] = v
		}
		return res
	default:
		return nil
	}
}
