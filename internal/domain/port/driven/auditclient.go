package driven

import (
	"context"

	"github.com/ericfisherdev/tprmkit/internal/domain/model"
)

// AuditClient defines the driven port for the vendor-risk REST API. Every
// method maps onto exactly one authenticated request and returns the decoded
// response body unmodified.
type AuditClient interface {
	// ListRecords lists ops-audit records. include is a comma-separated list of
	// relationships to sideload; empty means none.
	ListRecords(ctx context.Context, include string, filters model.Query) (model.Payload, error)
	GetRecord(ctx context.Context, id model.RecordID, include string) (model.Payload, error)
	// CloneRecord clones a template or existing record. name and extra are
	// optional; when both are empty no request body is sent.
	CloneRecord(ctx context.Context, templateID model.RecordID, name string, extra map[string]any) (model.Payload, error)
	CancelRecord(ctx context.Context, id model.RecordID) (model.Payload, error)
	DeleteRecord(ctx context.Context, id model.RecordID) (model.Payload, error)
	// MergeRecords merges sourceIDs into targetID.
	MergeRecords(ctx context.Context, targetID model.RecordID, sourceIDs []model.RecordID) (model.Payload, error)

	// ListNotifications lists notification messages, which carry export
	// download links once an export completes.
	ListNotifications(ctx context.Context, filters model.Query) (model.Payload, error)
	// TriggerExport starts an asynchronous audit-form export.
	TriggerExport(ctx context.Context, id model.RecordID) (model.Payload, error)
}
