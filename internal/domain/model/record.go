package model

// RecordID names an ops-audit record on the remote system. It is opaque and
// only ever threaded through URL paths.
type RecordID string

// Payload is a decoded JSON object returned by the remote API. Its schema is
// owned by the vendor and is passed through without transformation.
type Payload map[string]any

// Query holds query-string filters for list operations.
type Query map[string]string

// Records returns the "ops_audits" list from a list response, skipping
// entries that are not JSON objects.
func (p Payload) Records() []Payload {
	return p.objects("ops_audits")
}

// Notifications returns the "notification_messages" list from a notification
// list response.
func (p Payload) Notifications() []Payload {
	return p.objects("notification_messages")
}

// String returns the value at key when it is a non-empty string.
func (p Payload) String(key string) (string, bool) {
	s, ok := p[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func (p Payload) objects(key string) []Payload {
	raw, ok := p[key].([]any)
	if !ok {
		return nil
	}

	out := make([]Payload, 0, len(raw))
	for _, item := range raw {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, Payload(obj))
		}
	}
	return out
}
