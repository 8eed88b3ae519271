package optimus

import "errors"

var (
	// ErrNoColumns is returned when an operation is given an empty column list.
	ErrNoColumns = errors.New("no columns given")
	// ErrColumnNotFound is returned for column names missing from the frame.
	ErrColumnNotFound = errors.New("column not found")
	// ErrDuplicateColumn is returned when a column is named more than once.
	ErrDuplicateColumn = errors.New("duplicate column")
	// ErrColumnType is returned when a column's kind does not suit the operation.
	ErrColumnType = errors.New("unsupported column type")
	// ErrPosition is returned by MoveColumn for anything but "after" or "before".
	ErrPosition = errors.New("position must be \"after\" or \"before\"")
	// ErrUnknownType is returned for type names AsType cannot map.
	ErrUnknownType = errors.New("unknown type name")
	// ErrInvalidArgument covers remaining argument checks.
	ErrInvalidArgument = errors.New("invalid argument")
)
