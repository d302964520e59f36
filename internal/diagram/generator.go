package diagram

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ericfisherdev/tprmkit/internal/clock"
	"github.com/ericfisherdev/tprmkit/internal/diagram/templates"
	"github.com/ericfisherdev/tprmkit/internal/domain/model"
)

// Format selects which artifacts Generate produces.
type Format string

// Supported output formats.
const (
	FormatHTML    Format = "html"
	FormatMermaid Format = "mermaid"
	FormatPNG     Format = "png"
	FormatSVG     Format = "svg"
	FormatAll     Format = "all"
)

// Output file names, relative to the output directory.
const (
	ViewerFile = "TPRM_Diagrams.html"
	IndexFile  = "README.md"
	mermaidDir = "mermaid"
	pngDir     = "png"
	svgDir     = "svg"
)

// pngWidth is the page width passed to mmdc for PNG renders.
const pngWidth = 1200

// timestampLayout formats the generation time in the viewer and index.
const timestampLayout = "2006-01-02 15:04"

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHTML, FormatMermaid, FormatPNG, FormatSVG, FormatAll:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q: want one of html, mermaid, png, svg, all", s)
	}
}

func (f Format) includes(kind Format) bool {
	return f == FormatAll || f == kind
}

// Options controls a Generate run.
type Options struct {
	OutputDir string
	// Format defaults to FormatAll.
	Format Format
}

// Result lists the files written by a Generate run, in write order.
type Result struct {
	Files []string
}

// Generator writes the diagram catalog to disk.
type Generator struct {
	diagrams []model.Diagram
	mmdc     *MermaidCLI
	clock    clock.Clock
	logger   *slog.Logger
}

// NewGenerator creates a Generator over the built-in catalog.
func NewGenerator(mmdc *MermaidCLI, c clock.Clock, logger *slog.Logger) *Generator {
	return &Generator{
		diagrams: Catalog(),
		mmdc:     mmdc,
		clock:    c,
		logger:   logger,
	}
}

// Generate writes the requested artifacts under opts.OutputDir. Mermaid
// sources are written whenever PNG or SVG output is requested since mmdc
// renders from them. Missing mmdc skips image output with a warning, and a
// failed render skips only that file. README.md is always written last.
func (g *Generator) Generate(ctx context.Context, opts Options) (*Result, error) {
	format := opts.Format
	if format == "" {
		format = FormatAll
	}
	format, err := ParseFormat(string(format))
	if err != nil {
		return nil, err
	}
	if opts.OutputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	res := &Result{}
	generatedAt := g.clock.Now()

	withSources := format.includes(FormatMermaid) || format.includes(FormatPNG) || format.includes(FormatSVG)
	if withSources {
		if err := g.writeMermaid(opts.OutputDir, res); err != nil {
			return nil, err
		}
	}

	if format.includes(FormatHTML) {
		if err := g.writeViewerFile(ctx, opts.OutputDir, withSources, res); err != nil {
			return nil, err
		}
	}

	if format.includes(FormatPNG) {
		if err := g.renderImages(ctx, opts.OutputDir, pngDir, pngWidth, res); err != nil {
			return nil, err
		}
	}

	if format.includes(FormatSVG) {
		if err := g.renderImages(ctx, opts.OutputDir, svgDir, 0, res); err != nil {
			return nil, err
		}
	}

	index := filepath.Join(opts.OutputDir, IndexFile)
	if err := writeFile(index, []byte(g.Index(generatedAt)), res); err != nil {
		return nil, err
	}

	g.logger.Info("diagrams generated",
		"output_dir", opts.OutputDir,
		"format", format,
		"files", len(res.Files),
	)
	return res, nil
}

func (g *Generator) writeMermaid(outputDir string, res *Result) error {
	dir := filepath.Join(outputDir, mermaidDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create mermaid directory: %w", err)
	}

	for _, d := range g.diagrams {
		path := filepath.Join(dir, d.Slug+".mmd")
		if err := writeFile(path, []byte(MermaidFile(d)), res); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) writeViewerFile(ctx context.Context, outputDir string, withSources bool, res *Result) error {
	path := filepath.Join(outputDir, ViewerFile)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := g.writeViewer(ctx, f, withSources); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	res.Files = append(res.Files, path)
	g.logger.Debug("file written", "path", path)
	return nil
}

// WriteViewer renders the HTML viewer for every catalog diagram to w, with
// each section linking to its source under mermaid/. Used when serving, where
// the sources are always available.
func (g *Generator) WriteViewer(ctx context.Context, w io.Writer) error {
	return g.writeViewer(ctx, w, true)
}

func (g *Generator) writeViewer(ctx context.Context, w io.Writer, withSources bool) error {
	vm := templates.ViewerModel{
		GeneratedAt: g.clock.Now().Format(timestampLayout),
		Diagrams:    make([]templates.DiagramView, 0, len(g.diagrams)),
	}
	for _, d := range g.diagrams {
		view := templates.DiagramView{
			Slug:            d.Slug,
			Title:           d.Title,
			DescriptionHTML: RenderDescription(d),
			Mermaid:         d.Mermaid,
		}
		if withSources {
			view.SourceURL = mermaidDir + "/" + d.Slug + ".mmd"
		}
		vm.Diagrams = append(vm.Diagrams, view)
	}

	if err := templates.Viewer(vm).Render(ctx, w); err != nil {
		return fmt.Errorf("render viewer: %w", err)
	}
	return nil
}

func (g *Generator) renderImages(ctx context.Context, outputDir, kind string, width int, res *Result) error {
	bin, err := g.mmdc.Resolve()
	if err != nil {
		g.logger.Warn("skipping image generation", "format", kind, "error", err)
		return nil
	}

	dir := filepath.Join(outputDir, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s directory: %w", kind, err)
	}

	for _, d := range g.diagrams {
		if err := ctx.Err(); err != nil {
			return err
		}

		input := filepath.Join(outputDir, mermaidDir, d.Slug+".mmd")
		output := filepath.Join(dir, d.Slug+"."+kind)
		if err := g.mmdc.Render(ctx, bin, input, output, width); err != nil {
			g.logger.Error("diagram render failed", "diagram", d.Slug, "format", kind, "error", err)
			continue
		}

		res.Files = append(res.Files, output)
		g.logger.Debug("file written", "path", output)
	}
	return nil
}

// Index renders the markdown index listing every diagram and its files.
func (g *Generator) Index(generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString("# TPRM Process Diagrams\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", generatedAt.Format(timestampLayout))
	b.WriteString("## Diagrams\n\n")
	b.WriteString("| Diagram | Description | Files |\n")
	b.WriteString("|---------|-------------|-------|\n")
	for _, d := range g.diagrams {
		fmt.Fprintf(&b, "| %s | %s | [mmd](%s/%s.mmd) [svg](%s/%s.svg) [png](%s/%s.png) |\n",
			d.Title, d.Description,
			mermaidDir, d.Slug,
			svgDir, d.Slug,
			pngDir, d.Slug,
		)
	}

	b.WriteString(indexFooter)
	return b.String()
}

const indexFooter = `
## Viewing Options

1. **HTML Viewer**: Open ` + "`" + ViewerFile + "`" + ` in a browser for interactive viewing with download options

2. **Mermaid Files**: Import ` + "`.mmd`" + ` files into:
   - [Mermaid Live Editor](https://mermaid.live)
   - VS Code with Mermaid extension
   - Notion, GitHub, GitLab (native support)

3. **Lucidchart Import**:
   - Use SVG files for direct import
   - Or recreate using the visual patterns in HTML viewer

4. **Image Files**: PNG/SVG files for documentation and presentations

5. **Local Server**: ` + "`tprmdiagrams serve --addr 127.0.0.1:8080`" + ` serves the viewer and Mermaid sources

## Regenerating Diagrams

` + "```bash\ntprmdiagrams generate --output-dir ./diagrams --format all\n```" + `

### Options

- ` + "`--format html`" + `: HTML viewer only
- ` + "`--format mermaid`" + `: Mermaid source files only
- ` + "`--format png`" + `: PNG images (requires mermaid-cli)
- ` + "`--format svg`" + `: SVG images (requires mermaid-cli)
- ` + "`--format all`" + `: All formats (default)
`

func writeFile(path string, data []byte, res *Result) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	res.Files = append(res.Files, path)
	return nil
}
