package view

import (
	"github.com/chemstack/chemconsole/internal/permission"
	"github.com/chemstack/chemconsole/internal/ui"
)

const emptyPlaceholder = "no data"

// Action is one row-scoped button. An action with an empty Resource carries
// no permission requirement and always renders.
type Action[T any] struct {
	Label    string
	Style    string
	Resource permission.Resource
	Verb     permission.Verb
	Handler  func(T)
}

// RenderTable clears the target table and renders every row with one cell
// per column key, in order, followed by one button per action the role is
// permitted. It contains no resource-specific logic; all five resource lists
// render through it unchanged.
func RenderTable[T any](
	target ui.Table,
	rows []T,
	columns []string,
	cells func(T) []string,
	actions []Action[T],
	role permission.Role,
	perms permission.Checker,
) {
	target.Reset(columns, len(actions) > 0)

	if len(rows) == 0 {
		target.Placeholder(emptyPlaceholder)
		return
	}

	for _, row := range rows {
		var buttons []ui.Button
		for _, action := range actions {
			if action.Resource != "" && !perms.Allowed(role, action.Resource, action.Verb) {
				continue
			}
			record := row
			handler := action.Handler
			buttons = append(buttons, ui.Button{
				Label:   action.Label,
				Style:   action.Style,
				OnClick: func() { handler(record) },
			})
		}
		target.AddRow(cells(row), buttons)
	}
}
