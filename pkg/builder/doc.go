// Package builder provides a fluent API for assembling flow definitions
//
// The builder package offers copy-on-write construction of flows, their
// tasks, and the conditions that route between them. Built flows are
// validated before being handed to the engine
package builder
