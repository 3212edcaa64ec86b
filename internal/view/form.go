package view

// FormMode distinguishes the create and update submissions of a shared edit
// surface.
type FormMode string

const (
	ModeAdd  FormMode = "add"
	ModeEdit FormMode = "edit"
)
