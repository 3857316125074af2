// Package api defines the core data types for the flow engine
//
// This package contains all the shared types used across the engine and
// server, including flow definitions, task contracts, execution state,
// lifecycle events, and HTTP messages
package api
