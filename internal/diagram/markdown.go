package diagram

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ericfisherdev/tprmkit/internal/domain/model"
)

// diagramRef matches a cross-reference to another catalog diagram.
var diagramRef = regexp.MustCompile(`\[\[([a-z0-9_]+)\]\]`)

var (
	mdRenderer    goldmark.Markdown
	htmlSanitizer *bluemonday.Policy
)

func init() {
	mdRenderer = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	htmlSanitizer = bluemonday.UGCPolicy()
}

// RenderMarkdown converts a markdown string to sanitized HTML.
// Returns empty string for empty input.
func RenderMarkdown(src string) string {
	if src == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(src), &buf); err != nil {
		return htmlSanitizer.Sanitize(src)
	}

	return htmlSanitizer.Sanitize(buf.String())
}

// RenderDescription renders a diagram's summary and notes for the viewer.
// Cross-references resolve to in-page anchors of the referenced section.
func RenderDescription(d model.Diagram) string {
	src := d.Description
	if d.Notes != "" {
		src += "\n\n" + d.Notes
	}
	return RenderMarkdown(ExpandRefs(src, func(slug string) string { return "#" + slug }))
}

// ExpandRefs rewrites "[[slug]]" references as markdown links titled with
// the referenced diagram and pointing at href(slug). Unknown slugs are left
// as written.
func ExpandRefs(src string, href func(slug string) string) string {
	if !strings.Contains(src, "[[") {
		return src
	}
	return diagramRef.ReplaceAllStringFunc(src, func(ref string) string {
		slug := ref[2 : len(ref)-2]
		d, ok := Lookup(slug)
		if !ok {
			return ref
		}
		return "[" + d.Title + "](" + href(slug) + ")"
	})
}
