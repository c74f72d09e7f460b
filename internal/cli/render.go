package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mesh-intelligence/rflinks/internal/store"
	"github.com/mesh-intelligence/rflinks/pkg/types"
)

// columnTitles label the table columns, in types.Fields order.
var columnTitles = []string{
	"Link ID", "POP", "BTS", "Client", "Base IP", "Client IP", "Loopback IP", "Location",
}

// notAvailable stands in for an empty loopback address.
const notAvailable = "N/A"

// styles holds the lipgloss styles bound to one output writer.
type styles struct {
	header lipgloss.Style
	cell   lipgloss.Style
	border lipgloss.Style
	muted  lipgloss.Style
	label  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		header: r.NewStyle().Bold(true).Padding(0, 1),
		cell:   r.NewStyle().Padding(0, 1),
		border: r.NewStyle().Foreground(lipgloss.Color("8")),
		muted:  r.NewStyle().Faint(true),
		label:  r.NewStyle().Bold(true),
	}
}

// displayRow returns the table cells for rec.
func displayRow(rec types.Record) []string {
	row := rec.Values()
	if rec.LoopbackIP == "" {
		row[6] = notAvailable
	}
	return row
}

// renderTable writes records as a bordered table. An empty slice prints
// a notice instead.
func renderTable(w io.Writer, records []types.Record) {
	st := newStyles(w)
	if len(records) == 0 {
		fmt.Fprintln(w, st.muted.Render("No links found"))
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.border).
		Headers(columnTitles...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.header
			}
			return st.cell
		})
	for _, rec := range records {
		t.Row(displayRow(rec)...)
	}
	fmt.Fprintln(w, t.Render())
}

// renderPageFooter writes the "Page X of Y" line below a table.
func renderPageFooter(w io.Writer, page, pages, matched int) {
	st := newStyles(w)
	if pages == 0 {
		pages = 1
	}
	fmt.Fprintln(w, st.muted.Render(fmt.Sprintf("Page %d of %d (%d links)", page, pages, matched)))
}

// renderRecord writes one record as a label/value list.
func renderRecord(w io.Writer, rec types.Record) {
	st := newStyles(w)
	row := displayRow(rec)
	for i, title := range columnTitles {
		fmt.Fprintf(w, "%s %s\n", st.label.Render(fmt.Sprintf("%-12s", title+":")), row[i])
	}
}

// renderStats writes the aggregate counts.
func renderStats(w io.Writer, stats store.Stats) {
	st := newStyles(w)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.border).
		Headers("Total Links", "Unique Locations", "Unique POPs").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.header
			}
			return st.cell
		}).
		Row(fmt.Sprint(stats.Total), fmt.Sprint(stats.UniqueLocations), fmt.Sprint(stats.UniquePOPs))
	fmt.Fprintln(w, t.Render())
}
