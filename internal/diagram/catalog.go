// Package diagram generates the TPRM process flow diagrams: Mermaid sources,
// a browsable HTML viewer, a markdown index, and optional PNG/SVG renders.
package diagram

import (
	"embed"
	"fmt"
	"strings"

	"github.com/ericfisherdev/tprmkit/internal/domain/model"
)

//go:embed catalog/*.mmd
var catalogFS embed.FS

// catalogEntries fixes the display order of the catalog.
var catalogEntries = []struct {
	slug        string
	title       string
	description string
	notes       string
}{
	{
		"tprm_lifecycle", "TPRM Lifecycle",
		"Overview of the Third Party Risk Management lifecycle phases",
		"Owned by the **TPRM Manager**. Each phase has its own flow: [[vendor_onboarding]], " +
			"[[risk_assessment]], [[contract_management]], [[ongoing_monitoring]] and [[vendor_offboarding]].",
	},
	{
		"vendor_onboarding", "Vendor Onboarding Process",
		"Complete workflow for onboarding new third-party vendors",
		"The **Business Unit** is accountable for the request; the **TPRM Analyst** runs intake. " +
			"Tiering follows [[risk_tier_matrix]].",
	},
	{
		"risk_assessment", "Risk Assessment Process",
		"Risk scoring and assessment workflow",
		"**TPRM Analyst** responsible, **TPRM Manager** accountable. " +
			"High and critical tiers continue to [[due_diligence]].",
	},
	{
		"due_diligence", "Due Diligence Process",
		"Swimlane diagram for due diligence workflow",
		"**TPRM Analyst** responsible, **TPRM Manager** accountable, **Security** and **Legal** consulted. " +
			"Findings feed [[contract_management]].",
	},
	{
		"contract_management", "Contract & SLA Management",
		"Contract negotiation and management workflow",
		"**Legal** is responsible and accountable; **TPRM** supplies security requirements.",
	},
	{
		"ongoing_monitoring", "Ongoing Monitoring Process",
		"Continuous vendor monitoring and reassessment workflow",
		"**TPRM Analyst** responsible, **TPRM Manager** accountable. " +
			"Triggered events escalate to [[incident_response]]; reassessment repeats [[risk_assessment]].",
	},
	{
		"incident_response", "Vendor Incident Response",
		"Process for responding to vendor security incidents",
		"**Security** is accountable; the **TPRM Analyst** coordinates with the vendor. " +
			"Repeated incidents can trigger [[vendor_offboarding]].",
	},
	{
		"vendor_offboarding", "Vendor Offboarding Process",
		"Complete workflow for offboarding vendors",
		"**TPRM Manager** accountable; **IT** revokes access and the **TPRM Analyst** confirms data return.",
	},
	{
		"raci_matrix", "RACI Matrix",
		"Responsibility assignment matrix for TPRM processes",
		"Roles: **Business Unit**, **TPRM Analyst**, **TPRM Manager**, **Security**, **Legal**, **IT**. " +
			"Covers every flow in [[tprm_lifecycle]].",
	},
	{
		"risk_tier_matrix", "Risk Tier Decision Matrix",
		"Visual guide for determining vendor risk tiers",
		"The **TPRM Manager** approves the tier. Scores from [[risk_assessment]] map to a tier, " +
			"and the tier sets the [[ongoing_monitoring]] cadence.",
	},
}

var catalog = mustLoadCatalog()

// Catalog returns the TPRM diagrams in display order. The returned slice is a
// copy and may be modified by the caller.
func Catalog() []model.Diagram {
	out := make([]model.Diagram, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog diagram with the given slug.
func Lookup(slug string) (model.Diagram, bool) {
	for _, d := range catalog {
		if d.Slug == slug {
			return d, true
		}
	}
	return model.Diagram{}, false
}

func mustLoadCatalog() []model.Diagram {
	diagrams := make([]model.Diagram, 0, len(catalogEntries))
	for _, e := range catalogEntries {
		src, err := catalogFS.ReadFile("catalog/" + e.slug + ".mmd")
		if err != nil {
			panic(fmt.Sprintf("diagram catalog: %v", err))
		}
		diagrams = append(diagrams, model.Diagram{
			Slug:        e.slug,
			Title:       e.title,
			Description: e.description,
			Notes:       e.notes,
			Mermaid:     strings.TrimSpace(string(src)),
		})
	}
	return diagrams
}

// MermaidFile renders a diagram as a standalone .mmd document: a title
// directive, a description comment, then the trimmed source.
func MermaidFile(d model.Diagram) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%%%%{ title: %s }%%%%\n", d.Title)
	fmt.Fprintf(&b, "%%%% %s %%%%\n\n", d.Description)
	b.WriteString(strings.TrimSpace(d.Mermaid))
	return b.String()
}
