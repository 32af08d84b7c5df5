package domain

import "errors"

var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrTableNotFound          = errors.New("table not found")
	ErrItemNotFound           = errors.New("order item not found")
	ErrInvalidTransition      = errors.New("invalid order transition")
	ErrTableOccupied          = errors.New("table is occupied")
	ErrCapacityExceeded       = errors.New("party exceeds table capacity")
	ErrConflict               = errors.New("order was modified concurrently")
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
	ErrUndoUnavailable        = errors.New("undo is no longer available")
	ErrStaleUndo              = errors.New("order changed since the drop, undo refused")
	ErrInvalidOrder           = errors.New("invalid order payload")
	ErrEmptyOrder             = errors.New("order has no items")
	ErrInvalidTable           = errors.New("invalid table")
	ErrDuplicateLabel         = errors.New("table label already in use")
	ErrReservedLabel          = errors.New("table label is reserved")
	ErrForbidden              = errors.New("role is not allowed to perform this action")
)
