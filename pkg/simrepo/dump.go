package simrepo

import (
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
)

// Dump writes every entry as a formatted table to w, sorted by id, for
// debug/inspection use.
func (r *Repository) Dump(w io.Writer) {
	entries := r.All()
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Tag", "Type", "Title", "Livery"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, e := range entries {
		table.Append([]string{e.ID, e.Tag, e.Type.String(), e.Title, e.Livery})
	}
	table.Render()
}
