package events

import "github.com/kode4food/sluice/pkg/api"

type EventFilter func(*Event) bool

// FilterEvents matches events whose type is one of eventTypes
func FilterEvents(eventTypes ...api.EventType) EventFilter {
	lookup := map[api.EventType]bool{}
	for _, et := range eventTypes {
		lookup[et] = true
	}
	return func(ev *Event) bool {
		return lookup[ev.Type]
	}
}

// FilterExecution matches events raised by the identified execution
func FilterExecution(id api.ExecutionID) EventFilter {
	return func(ev *Event) bool {
		return ev.ExecutionID == id
	}
}

// AndFilters matches events that satisfy every provided filter
func AndFilters(filters ...EventFilter) EventFilter {
	return func(ev *Event) bool {
		for _, filter := range filters {
			if !filter(ev) {
				return false
			}
		}
		return true
	}
}
