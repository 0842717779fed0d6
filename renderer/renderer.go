// Package renderer turns simulation reports into presentation formats:
// markdown for the terminal, PNG charts, and PDF documents.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/prometalle/metalsim"
)

//go:embed templates/*.md
var templates embed.FS

// SummaryMarkdown renders the full simulation report to a markdown string.
func SummaryMarkdown(r *metalsim.SimulationReport) string {
	partials := map[string]string{
		"summary_title":     "summary_title.md",
		"summary_positions": "summary_positions.md",
		"summary_timeline":  "summary_timeline.md",
	}
	return renderTemplate("summary", "summary.md", partials, r)
}

// ScheduleMarkdown renders a purchase-events preview to a markdown string.
func ScheduleMarkdown(events []metalsim.PurchaseEvent) string {
	return renderTemplate("schedule", "schedule.md", nil, events)
}

// renderTemplate is a generic utility to render a main template that depends
// on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
