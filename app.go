// Package sluice identifies the flow execution service. The entry point
// and the HTTP server share these values for logging and health reporting
package sluice

const (
	// Name is the service name reported in logs and health checks
	Name = "sluice"

	// Version is the service version reported in logs and health checks
	Version = "1.0.0"
)
