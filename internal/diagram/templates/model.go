// Package templates holds the templ components for the diagram viewer.
package templates

// ViewerModel is the data rendered by Viewer.
type ViewerModel struct {
	GeneratedAt string
	Diagrams    []DiagramView
}

// DiagramView is one diagram section. DescriptionHTML must already be
// sanitized; it is written without escaping. SourceURL, when set, links the
// section to its .mmd file.
type DiagramView struct {
	Slug            string
	Title           string
	DescriptionHTML string
	SourceURL       string
	Mermaid         string
}
