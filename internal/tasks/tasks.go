// Package tasks provides the built-in sample tasks wired into the flow
// engine at startup. Each task follows the registry contract: it receives
// the accumulated execution context as Args and returns a TaskOutput
// carrying a status plus optional data or error
package tasks

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/kode4food/sluice/internal/engine"
	"github.com/kode4food/sluice/pkg/api"
)

// Built-in task names
const (
	FetchData        api.Name = "fetch_data"
	ProcessData      api.Name = "process_data"
	StoreData        api.Name = "store_data"
	ValidateData     api.Name = "validate_data"
	SendNotification api.Name = "send_notification"
)

const storageLocation = "database://main/processed_data"

// RegisterAll registers the built-in sample tasks with the provided
// registry. Registration is explicit so that bootstrap controls exactly
// what the engine can execute
func RegisterAll(reg *engine.Registry) {
	reg.Register(FetchData, fetchData)
	reg.Register(ProcessData, processData)
	reg.Register(StoreData, storeData)
	reg.Register(ValidateData, validateData)
	reg.Register(SendNotification, sendNotification)
}

func fetchData(context.Context, api.Args) *api.TaskOutput {
	records := []api.Args{
		{"id": 1, "value": "data1"},
		{"id": 2, "value": "data2"},
		{"id": 3, "value": "data3"},
	}
	slog.Info("Fetched records", slog.Int("count", len(records)))
	return &api.TaskOutput{
		Status: api.StatusSuccess,
		Data: api.Args{
			"records":     records,
			"total_count": len(records),
			"source":      "external_api",
		},
	}
}

func processData(_ context.Context, args api.Args) *api.TaskOutput {
	fetched := args.GetArgs("fetch_data_result")
	if fetched == nil {
		return &api.TaskOutput{
			Status: api.StatusFailure,
			Error:  "no fetched data in context",
		}
	}
	records := jsonArray(fetched, "records")
	processed := make([]api.Args, 0, len(records))
	for _, record := range records {
		processed = append(processed, api.Args{
			"id":        record.Get("id").Int(),
			"value":     strings.ToUpper(record.Get("value").String()),
			"processed": true,
			"timestamp": timestamp(),
		})
	}
	slog.Info("Processed records", slog.Int("count", len(processed)))
	return &api.TaskOutput{
		Status: api.StatusSuccess,
		Data: api.Args{
			"processed_records": processed,
			"processed_count":   len(processed),
			"processing_status": "completed",
		},
	}
}

func storeData(_ context.Context, args api.Args) *api.TaskOutput {
	processed := args.GetArgs("process_data_result")
	if processed == nil {
		return &api.TaskOutput{
			Status: api.StatusFailure,
			Error:  "no processed data in context",
		}
	}
	count := len(jsonArray(processed, "processed_records"))
	slog.Info("Stored records", slog.Int("count", count))
	return &api.TaskOutput{
		Status: api.StatusSuccess,
		Data: api.Args{
			"stored_count":      count,
			"storage_location":  storageLocation,
			"storage_timestamp": timestamp(),
			"storage_status":    "success",
		},
	}
}

func validateData(context.Context, api.Args) *api.TaskOutput {
	// three of four validations pass, mirroring an unreliable upstream
	if rand.IntN(4) == 0 {
		return &api.TaskOutput{
			Status: api.StatusFailure,
			Error:  "data validation failed: invalid data format",
		}
	}
	return &api.TaskOutput{
		Status: api.StatusSuccess,
		Data:   api.Args{"validation_status": "passed"},
	}
}

func sendNotification(context.Context, api.Args) *api.TaskOutput {
	recipients := []string{"admin@example.com"}
	slog.Info("Notification sent", slog.Int("recipients", len(recipients)))
	return &api.TaskOutput{
		Status: api.StatusSuccess,
		Data: api.Args{
			"notification_sent": true,
			"recipients":        recipients,
			"timestamp":         timestamp(),
		},
	}
}

// jsonArray extracts an array value from a context entry by path. Context
// entries may be native Args from in-process execution or generic maps
// decoded from a request body, so the entry is flattened to JSON before
// traversal
func jsonArray(args api.Args, path string) []gjson.Result {
	doc, err := json.Marshal(args)
	if err != nil {
		return nil
	}
	return gjson.GetBytes(doc, path).Array()
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
