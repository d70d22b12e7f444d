package editor

import "errors"

var (
	// ErrNotEditing is returned when a mutation arrives while the owning
	// group is not in edit mode.
	ErrNotEditing = errors.New("group is not in edit mode")

	// ErrFieldNotEditable is returned when the policy gate refuses a field.
	ErrFieldNotEditable = errors.New("field is not editable")

	// ErrIndexOutOfRange is returned by array-field operations addressing a
	// row that does not exist.
	ErrIndexOutOfRange = errors.New("index out of range")
)
