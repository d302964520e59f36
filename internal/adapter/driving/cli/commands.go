package cli

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/tprmkit/internal/application"
	"github.com/ericfisherdev/tprmkit/internal/domain/model"
)

// listPreview caps how many records the list summary prints.
const listPreview = 10

func (a *app) newListCommand() *cobra.Command {
	var include string
	var filters map[string]string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List OpsAudit records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd.Context(), func(ctx context.Context, s *session) error {
				payload, err := s.client.ListRecords(ctx, include, toQuery(filters))
				if err != nil {
					return fmt.Errorf("list records: %w", err)
				}
				a.printer.records(payload.Records(), listPreview)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&include, "include", "", "Comma-separated relationships to sideload")
	cmd.Flags().StringToStringVar(&filters, "filter", nil, "Query filter as key=value (repeatable)")
	return cmd
}

func (a *app) newGetCommand() *cobra.Command {
	var id, include string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show one OpsAudit record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd.Context(), func(ctx context.Context, s *session) error {
				payload, err := s.client.GetRecord(ctx, model.RecordID(id), include)
				if err != nil {
					return fmt.Errorf("get record %s: %w", id, err)
				}
				return a.printer.record(payload)
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "OpsAudit ID")
	cmd.Flags().StringVar(&include, "include", "", "Comma-separated relationships to sideload")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func (a *app) newCloneCommand() *cobra.Command {
	var id, name string
	var fields map[string]string

	cmd := &cobra.Command{
		Use:   "clone",
		Short: "Clone a template or existing OpsAudit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd.Context(), func(ctx context.Context, s *session) error {
				var extra map[string]any
				if len(fields) > 0 {
					extra = make(map[string]any, len(fields))
					for k, v := range fields {
						extra[k] = v
					}
				}

				payload, err := s.client.CloneRecord(ctx, model.RecordID(id), name, extra)
				if err != nil {
					return fmt.Errorf("clone record %s: %w", id, err)
				}
				a.printer.success("Cloned OpsAudit %s", id)
				return a.printer.record(payload)
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Template or source OpsAudit ID")
	cmd.Flags().StringVar(&name, "name", "", "Name for the new OpsAudit")
	cmd.Flags().StringToStringVar(&fields, "field", nil, "Additional attribute as key=value (repeatable)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func (a *app) newCancelCommand() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel an OpsAudit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd.Context(), func(ctx context.Context, s *session) error {
				if _, err := s.client.CancelRecord(ctx, model.RecordID(id)); err != nil {
					return fmt.Errorf("cancel record %s: %w", id, err)
				}
				a.printer.success("Cancelled OpsAudit %s", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "OpsAudit ID")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func (a *app) newDeleteCommand() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an OpsAudit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd.Context(), func(ctx context.Context, s *session) error {
				if _, err := s.client.DeleteRecord(ctx, model.RecordID(id)); err != nil {
					return fmt.Errorf("delete record %s: %w", id, err)
				}
				a.printer.success("Deleted OpsAudit %s", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "OpsAudit ID")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func (a *app) newMergeCommand() *cobra.Command {
	var id string
	var sources []string

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge source OpsAudits into a target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd.Context(), func(ctx context.Context, s *session) error {
				ids := make([]model.RecordID, 0, len(sources))
				for _, src := range sources {
					ids = append(ids, model.RecordID(src))
				}

				if _, err := s.client.MergeRecords(ctx, model.RecordID(id), ids); err != nil {
					return fmt.Errorf("merge into %s: %w", id, err)
				}
				a.printer.success("Merged %d OpsAudit(s) into %s", len(ids), id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Target OpsAudit ID")
	cmd.Flags().StringSliceVar(&sources, "source", nil, "Source OpsAudit ID (repeatable or comma-separated)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("source")
	return cmd
}

func (a *app) newExportCommand() *cobra.Command {
	var id string
	var wait, noWait bool
	var timeout, interval time.Duration

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export an OpsAudit's audit forms and wait for the download link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd.Context(), func(ctx context.Context, s *session) error {
				waitForLink := wait && !noWait
				maxWait := s.cfg.ExportTimeout
				if cmd.Flags().Changed("timeout") {
					maxWait = timeout
				}

				svc := application.NewExportService(s.client, a.opts.Clock, s.logger)
				result, err := svc.Export(ctx, model.RecordID(id), application.ExportOptions{
					Wait:         waitForLink,
					MaxWait:      maxWait,
					PollInterval: interval,
				})
				if err != nil {
					return fmt.Errorf("export record %s: %w", id, err)
				}

				switch {
				case !waitForLink:
					a.printer.success("Export triggered for OpsAudit %s", id)
				case result.Found:
					a.printer.success("Export ready for OpsAudit %s", id)
					a.printer.field("Download URL", result.DownloadURL)
				default:
					a.printer.warn("No download link for OpsAudit %s after %s", id, maxWait)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "OpsAudit ID")
	cmd.Flags().BoolVar(&wait, "wait", true, "Poll notifications until the download link appears")
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "Only trigger the export; same as --wait=false")
	cmd.Flags().DurationVar(&timeout, "timeout", application.DefaultExportMaxWait, "Maximum time to wait (AUDITBOARD_EXPORT_TIMEOUT)")
	cmd.Flags().DurationVar(&interval, "poll-interval", application.DefaultExportPollInterval, "Time between notification polls")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func (a *app) newNotificationsCommand() *cobra.Command {
	var filters map[string]string

	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "List notification messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd.Context(), func(ctx context.Context, s *session) error {
				payload, err := s.client.ListNotifications(ctx, toQuery(filters))
				if err != nil {
					return fmt.Errorf("list notifications: %w", err)
				}
				a.printer.notifications(payload.Notifications())
				return nil
			})
		},
	}
	cmd.Flags().StringToStringVar(&filters, "filter", nil, "Query filter as key=value (repeatable)")
	return cmd
}

func toQuery(m map[string]string) model.Query {
	if len(m) == 0 {
		return nil
	}
	q := make(model.Query, len(m))
	maps.Copy(q, m)
	return q
}
