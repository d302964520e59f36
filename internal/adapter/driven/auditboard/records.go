package auditboard

import (
	"context"
	"errors"
	"maps"
	"net/http"
	"net/url"

	"github.com/ericfisherdev/tprmkit/internal/domain/model"
)

// errEmptyID is returned before dispatch when a record ID is empty.
var errEmptyID = errors.New("record id is required")

// ListRecords lists ops-audit records. The response carries an "ops_audits"
// list plus any sideloaded relationships named in include.
func (c *Client) ListRecords(ctx context.Context, include string, filters model.Query) (model.Payload, error) {
	query := model.Query{}
	maps.Copy(query, filters)
	if include != "" {
		query["include"] = include
	}
	return c.Do(ctx, http.MethodGet, "/ops_audits", query, nil)
}

// GetRecord fetches a single ops-audit record.
func (c *Client) GetRecord(ctx context.Context, id model.RecordID, include string) (model.Payload, error) {
	p, err := recordPath(id, "")
	if err != nil {
		return nil, err
	}

	var query model.Query
	if include != "" {
		query = model.Query{"include": include}
	}
	return c.Do(ctx, http.MethodGet, p, query, nil)
}

// CloneRecord clones a template or existing record. extra fields are sent
// as-is; name, when non-empty, overrides any "name" in extra. When there is
// nothing to send the request has no body.
func (c *Client) CloneRecord(ctx context.Context, templateID model.RecordID, name string, extra map[string]any) (model.Payload, error) {
	p, err := recordPath(templateID, "/clone")
	if err != nil {
		return nil, err
	}

	body := make(map[string]any, len(extra)+1)
	maps.Copy(body, extra)
	if name != "" {
		body["name"] = name
	}

	if len(body) == 0 {
		return c.Do(ctx, http.MethodPost, p, nil, nil)
	}
	return c.Do(ctx, http.MethodPost, p, nil, body)
}

// CancelRecord cancels a record and returns its updated representation.
func (c *Client) CancelRecord(ctx context.Context, id model.RecordID) (model.Payload, error) {
	p, err := recordPath(id, "/cancel")
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, http.MethodPut, p, nil, nil)
}

// DeleteRecord deletes a record.
func (c *Client) DeleteRecord(ctx context.Context, id model.RecordID) (model.Payload, error) {
	p, err := recordPath(id, "")
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, http.MethodDelete, p, nil, nil)
}

// mergeRequest is the body of a merge call.
type mergeRequest struct {
	SourceIDs []model.RecordID `json:"source_ops_audit_ids"`
}

// MergeRecords merges the source records into the target.
func (c *Client) MergeRecords(ctx context.Context, targetID model.RecordID, sourceIDs []model.RecordID) (model.Payload, error) {
	p, err := recordPath(targetID, "/merge")
	if err != nil {
		return nil, err
	}
	if len(sourceIDs) == 0 {
		return nil, errors.New("merge requires at least one source record id")
	}
	for _, id := range sourceIDs {
		if id == "" {
			return nil, errEmptyID
		}
	}
	return c.Do(ctx, http.MethodPost, p, nil, mergeRequest{SourceIDs: sourceIDs})
}

// ListNotifications lists notification messages. Completed exports appear
// here with a "download_url".
func (c *Client) ListNotifications(ctx context.Context, filters model.Query) (model.Payload, error) {
	return c.Do(ctx, http.MethodGet, "/notification_messages", filters, nil)
}

// TriggerExport starts an asynchronous audit-form export for a record.
func (c *Client) TriggerExport(ctx context.Context, id model.RecordID) (model.Payload, error) {
	p, err := recordPath(id, "/export_audit_forms")
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, http.MethodPost, p, nil, nil)
}

// recordPath builds "/ops_audits/{id}{suffix}" with the ID path-escaped.
func recordPath(id model.RecordID, suffix string) (string, error) {
	if id == "" {
		return "", errEmptyID
	}
	return "/ops_audits/" + url.PathEscape(string(id)) + suffix, nil
}
