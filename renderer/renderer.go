// Package renderer turns report structures into markdown. Each report
// has a main template and a set of partials, all embedded next to this
// file; the commands print the result through a terminal markdown
// renderer or save it under the reports directory.
package renderer

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/etnz/microcap"
)

//go:embed *.md
var templates embed.FS

// DailyMarkdown renders the daily report to a markdown string.
func DailyMarkdown(r *microcap.DailyReport) string {
	partials := map[string]string{
		"daily_positions":  "daily_positions.md",
		"daily_alerts":     "daily_alerts.md",
		"daily_benchmarks": "daily_benchmarks.md",
		"daily_ai":         "daily_ai.md",
	}
	return renderTemplate("daily", "daily.md", partials, r)
}

// PerformanceMarkdown renders the performance report to a markdown string.
func PerformanceMarkdown(r *microcap.PerformanceReport) string {
	return renderTemplate("performance", "performance.md", nil, r)
}

// ResearchMarkdown renders a research note to a markdown string.
func ResearchMarkdown(r *microcap.ResearchReport) string {
	return renderTemplate("research", "research.md", nil, r)
}

// StatusMarkdown renders the provider status report to a markdown string.
func StatusMarkdown(r *microcap.StatusReport) string {
	return renderTemplate("status", "status.md", nil, r)
}

// renderTemplate is a generic utility to render a main template that
// depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := templates.ReadFile(mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := templates.ReadFile(file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Funcs(funcs).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

var funcs = template.FuncMap{
	"f3": func(v float64) string { return fmt.Sprintf("%.3f", v) },
	"checkmark": func(ok bool) string {
		if ok {
			return "✅"
		}
		return "❌"
	},
}
