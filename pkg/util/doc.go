// Package util provides common utility functions and data structures
//
// This package includes a generic set implementation used by the HTTP
// server to track active WebSocket connections
package util
