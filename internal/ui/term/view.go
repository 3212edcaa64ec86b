package term

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/chemstack/chemconsole/internal/ui"
)

// ResourceView is the bound widget set for one resource: a table, an edit
// surface and (for composite records) a detail surface.
type ResourceView struct {
	label string
	out   io.Writer

	table  *Table
	detail *Detail
}

func NewResourceView(label string, out io.Writer) *ResourceView {
	return &ResourceView{
		label:  label,
		out:    out,
		table:  &Table{out: out},
		detail: &Detail{out: out},
	}
}

func (v *ResourceView) Table() ui.Table {
	return v.table
}

func (v *ResourceView) ShowMessage(message string) {
	v.table.clear()
	fmt.Fprintf(v.out, "  %s\n", message)
}

func (v *ResourceView) OpenEditor(title string) {
	fmt.Fprintf(v.out, "--- %s ---\n", title)
}

func (v *ResourceView) CloseEditor() {
	fmt.Fprintln(v.out, "---")
}

func (v *ResourceView) Detail() ui.Detail {
	return v.detail
}

func (v *ResourceView) OpenDetail(title string) {
	fmt.Fprintf(v.out, "--- %s ---\n", title)
}

// Print renders the current table contents, aligned.
func (v *ResourceView) Print() {
	v.table.print()
}

// Invoke fires the button with the given label on the row whose first cell
// equals key. It reports false when no such rendered button exists, which
// is exactly the case for actions the role was not permitted to see.
func (v *ResourceView) Invoke(key, label string) bool {
	return v.table.invoke(key, label)
}

// Table buffers rendered rows until the console prints them.
type Table struct {
	out io.Writer

	columns      []string
	actionColumn bool
	placeholder  string
	rows         [][]string
	buttons      [][]ui.Button
}

func (t *Table) Reset(columns []string, actionColumn bool) {
	t.columns = columns
	t.actionColumn = actionColumn
	t.clear()
}

func (t *Table) clear() {
	t.placeholder = ""
	t.rows = nil
	t.buttons = nil
}

func (t *Table) Placeholder(message string) {
	t.clear()
	t.placeholder = message
}

func (t *Table) AddRow(cells []string, buttons []ui.Button) {
	t.rows = append(t.rows, cells)
	t.buttons = append(t.buttons, buttons)
}

func (t *Table) print() {
	w := tabwriter.NewWriter(t.out, 2, 4, 2, ' ', 0)

	header := ""
	for _, col := range t.columns {
		header += col + "\t"
	}
	if t.actionColumn {
		header += "actions\t"
	}
	fmt.Fprintln(w, header)

	if t.placeholder != "" {
		fmt.Fprintf(w, "%s\n", t.placeholder)
		w.Flush()
		return
	}

	for i, row := range t.rows {
		line := ""
		for _, cell := range row {
			line += cell + "\t"
		}
		if t.actionColumn {
			for _, b := range t.buttons[i] {
				line += "[" + b.Label + "]"
			}
			line += "\t"
		}
		fmt.Fprintln(w, line)
	}
	w.Flush()
}

func (t *Table) invoke(key, label string) bool {
	for i, row := range t.rows {
		if len(row) == 0 || row[0] != key {
			continue
		}
		for _, b := range t.buttons[i] {
			if b.Label == label && b.OnClick != nil {
				b.OnClick()
				return true
			}
		}
		return false
	}
	return false
}

// Detail prints a composite record's fields and its nested line items. The
// items are written directly rather than through the generic table
// renderer: they have their own column semantics and never carry actions.
type Detail struct {
	out io.Writer
}

func (d *Detail) SetFields(fields []ui.DetailField) {
	w := tabwriter.NewWriter(d.out, 2, 4, 2, ' ', 0)
	for _, f := range fields {
		fmt.Fprintf(w, "%s:\t%s\n", f.Label, f.Value)
	}
	w.Flush()
}

func (d *Detail) SetItems(columns []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(d.out, "  no line items")
		return
	}

	w := tabwriter.NewWriter(d.out, 2, 4, 2, ' ', 0)
	header := "  "
	for _, col := range columns {
		header += col + "\t"
	}
	fmt.Fprintln(w, header)
	for _, row := range rows {
		line := "  "
		for _, cell := range row {
			line += cell + "\t"
		}
		fmt.Fprintln(w, line)
	}
	w.Flush()
}
