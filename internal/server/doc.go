// Package server implements the HTTP API server for the flow engine
//
// This package provides REST endpoints for executing flows, inspecting
// executions and tasks, managing users and tokens, and streaming engine
// events over WebSocket connections
package server
