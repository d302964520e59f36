package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/ericfisherdev/tprmkit/internal/domain/model"
)

// printer writes human-readable summaries. Styling degrades to plain text
// when the writer is not a terminal.
type printer struct {
	w      io.Writer
	header lipgloss.Style
	id     lipgloss.Style
	ok     lipgloss.Style
	warned lipgloss.Style
	label  lipgloss.Style
	muted  lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:      w,
		header: r.NewStyle().Bold(true),
		id:     r.NewStyle().Foreground(lipgloss.Color("#74c0fc")),
		ok:     r.NewStyle().Foreground(lipgloss.Color("#51cf66")),
		warned: r.NewStyle().Foreground(lipgloss.Color("#fcc419")),
		label:  r.NewStyle().Bold(true),
		muted:  r.NewStyle().Foreground(lipgloss.Color("#868e96")),
	}
}

func (p *printer) records(records []model.Payload, limit int) {
	fmt.Fprintln(p.w, p.header.Render(fmt.Sprintf("Found %d OpsAudits", len(records))))
	for i, rec := range records {
		if i == limit {
			fmt.Fprintln(p.w, p.muted.Render(fmt.Sprintf("  ... and %d more", len(records)-limit)))
			break
		}
		name, _ := rec.String("name")
		fmt.Fprintf(p.w, "  - %s: %s\n", p.id.Render(idOf(rec)), name)
	}
}

func (p *printer) notifications(msgs []model.Payload) {
	fmt.Fprintln(p.w, p.header.Render(fmt.Sprintf("Found %d notifications", len(msgs))))
	for _, msg := range msgs {
		text, _ := msg.String("message")
		line := fmt.Sprintf("  - %s: %s", p.id.Render(idOf(msg)), text)
		if url, ok := msg.String("download_url"); ok {
			line += " " + p.muted.Render("["+url+"]")
		}
		fmt.Fprintln(p.w, line)
	}
}

func (p *printer) record(payload model.Payload) error {
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("format response: %w", err)
	}
	fmt.Fprintln(p.w, string(out))
	return nil
}

func (p *printer) success(format string, args ...any) {
	fmt.Fprintln(p.w, p.ok.Render(fmt.Sprintf(format, args...)))
}

func (p *printer) warn(format string, args ...any) {
	fmt.Fprintln(p.w, p.warned.Render(fmt.Sprintf(format, args...)))
}

func (p *printer) field(name, value string) {
	fmt.Fprintf(p.w, "%s %s\n", p.label.Render(name+":"), value)
}

func idOf(p model.Payload) string {
	if v, ok := p["id"]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return "?"
}
