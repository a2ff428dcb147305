package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// RenderDay renders the itinerary of a day to a markdown string.
func RenderDay(d *Day) string {
	partials := map[string]string{
		"day_title":   "day_title.md",
		"day_entries": "day_entries.md",
	}
	return renderTemplate("day", "day.md", partials, d)
}

// RenderDates renders the list of trip dates.
func RenderDates(d *Dates) string {
	return renderTemplate("dates", "dates.md", nil, d)
}

// RenderExpenses renders the ledger, its totals and breakdown.
func RenderExpenses(e *Expenses) string {
	partials := map[string]string{
		"expenses_summary": "expenses_summary.md",
		"expenses_list":    "expenses_list.md",
	}
	return renderTemplate("expenses", "expenses.md", partials, e)
}

// RenderBookings renders the flights and stays.
func RenderBookings(b *Bookings) string {
	partials := map[string]string{
		"bookings_flights": "bookings_flights.md",
		"bookings_stays":   "bookings_stays.md",
	}
	return renderTemplate("bookings", "bookings.md", partials, b)
}

// RenderChecklist renders the three preparation lists.
func RenderChecklist(c *Checklist) string {
	return renderTemplate("checklist", "checklist.md", nil, c)
}

// RenderConversion renders a CAD to TWD conversion.
func RenderConversion(c *Conversion) string {
	return renderTemplate("conversion", "conversion.md", nil, c)
}

// RenderForecast renders an aurora forecast.
func RenderForecast(f *Forecast) string {
	return renderTemplate("forecast", "forecast.md", nil, f)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
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

// cell escapes s for a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "|", `\|`)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.Join(lines, "<br>")
}
