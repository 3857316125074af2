// Package engine implements the core flow execution engine
//
// This package contains the task registry, the in-memory execution
// store, and the run loop that walks a flow's tasks and conditions
// until it reaches the end marker
package engine
