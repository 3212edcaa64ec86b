// Package ui declares the widget surface the console renders into. The
// console logic only ever talks to these interfaces; the terminal
// implementation lives in ui/term and a browser or TUI front end could be
// swapped in without touching any controller.
package ui

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Button is one row-scoped action rendered into a table's action cell.
type Button struct {
	Label   string
	Style   string
	OnClick func()
}

// Table is the tabular widget a resource list renders into.
type Table interface {
	// Reset clears the table and installs the column headers. actionColumn
	// reports whether an action cell follows the data cells.
	Reset(columns []string, actionColumn bool)
	// Placeholder replaces the body with a single message row spanning all
	// columns.
	Placeholder(message string)
	AddRow(cells []string, buttons []Button)
}

// DetailField is one labeled value on a record detail surface.
type DetailField struct {
	Label string
	Value string
}

// Detail is the read-only surface showing a composite record and its line
// items. The line items are rendered directly by the surface, not through
// the generic table renderer: they carry different column semantics and no
// actions.
type Detail interface {
	SetFields(fields []DetailField)
	SetItems(columns []string, rows [][]string)
}

// ResourceView is the widget set bound to one resource, handed to its
// controller once at construction.
type ResourceView interface {
	Table() Table
	// ShowMessage replaces the table body with a standalone message, used
	// for the client-side "no permission" gate.
	ShowMessage(message string)
	OpenEditor(title string)
	CloseEditor()
}

// DetailView extends ResourceView for the composite records that have a
// detail surface.
type DetailView interface {
	ResourceView
	Detail() Detail
	OpenDetail(title string)
}

type Alerter interface {
	// Alert shows a transient, dismissible notification.
	Alert(level Level, message string)
}

type Confirmer interface {
	// Confirm blocks on an explicit yes/no answer. Destructive operations
	// must call it before issuing any request.
	Confirm(prompt string) bool
}

// Surface is the application-wide chrome: login page, sidebar, heading and
// notifications.
type Surface interface {
	Alerter
	Confirmer

	ShowLogin()
	ShowMain()
	// SetLoginError shows an inline error on the login surface; an empty
	// message hides it.
	SetLoginError(message string)
	SetUserInfo(text string)

	HideAllViews()
	ShowView(id string)
	SetHeading(text string)
	SetNavActive(id string)
	SetNavVisible(id string, visible bool)
}
