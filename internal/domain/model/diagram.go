package model

// Diagram is a static TPRM process flowchart. Mermaid holds the flowchart
// source. Description is a one-line plain summary; Notes is markdown naming
// the accountable role and related diagrams as "[[slug]]" references.
type Diagram struct {
	Slug        string
	Title       string
	Description string
	Notes       string
	Mermaid     string
}
