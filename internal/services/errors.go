package services

import "errors"

// Filter service errors
var (
	// ErrTableNotLoaded is returned when a mode needs a table slot that is empty.
	ErrTableNotLoaded = errors.New("table not loaded")
	// ErrInvalidSlot is returned for a slot name other than first or second.
	ErrInvalidSlot = errors.New("invalid table slot")
)

// TableNotLoadedError names the empty slot. It matches ErrTableNotLoaded
// with errors.Is.
type TableNotLoadedError struct {
	Slot Slot
}

func (e *TableNotLoadedError) Error() string {
	return "table not loaded: " + string(e.Slot)
}

// Is reports whether target is ErrTableNotLoaded.
func (e *TableNotLoadedError) Is(target error) bool {
	return target == ErrTableNotLoaded
}
