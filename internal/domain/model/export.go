package model

// ExportResult describes the outcome of an audit-form export. Trigger holds
// the raw response to the export request. DownloadURL is set only when the
// caller waited and a notification carrying a download link arrived before
// the deadline.
type ExportResult struct {
	Trigger     Payload
	DownloadURL string
	Found       bool
}
