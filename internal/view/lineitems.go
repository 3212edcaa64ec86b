package view

import "github.com/google/uuid"

// LineRow is one input row of a composite-record create form. The id exists
// only to disambiguate rows inside the form; it is never sent to the
// backend.
type LineRow[T any] struct {
	ID    string
	Value T
}

// LineItemForm is the ordered, growable list of line-item rows backing a
// composite-record create workflow. Rows keep insertion order; removal
// deletes exactly one row. Submission sends whatever rows are present,
// including none: the form does not enforce a minimum.
type LineItemForm[T any] struct {
	rows []LineRow[T]
}

func NewLineItemForm[T any]() *LineItemForm[T] {
	return &LineItemForm[T]{}
}

// Add appends a row and returns its generated id.
func (f *LineItemForm[T]) Add(value T) string {
	id := uuid.NewString()
	f.rows = append(f.rows, LineRow[T]{ID: id, Value: value})
	return id
}

// Update replaces the value of the row with the given id.
func (f *LineItemForm[T]) Update(id string, value T) bool {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Value = value
			return true
		}
	}
	return false
}

// Remove deletes the row with the given id, preserving the order of the
// remaining rows.
func (f *LineItemForm[T]) Remove(id string) bool {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return true
		}
	}
	return false
}

// Rows returns the current rows in order.
func (f *LineItemForm[T]) Rows() []LineRow[T] {
	out := make([]LineRow[T], len(f.rows))
	copy(out, f.rows)
	return out
}

// Items collects the row values in order, exactly as they will be sent.
func (f *LineItemForm[T]) Items() []T {
	items := make([]T, 0, len(f.rows))
	for _, row := range f.rows {
		items = append(items, row.Value)
	}
	return items
}

func (f *LineItemForm[T]) Len() int {
	return len(f.rows)
}

// Reset drops all rows, for reopening the form.
func (f *LineItemForm[T]) Reset() {
	f.rows = nil
}
