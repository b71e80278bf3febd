package board

import "errors"

var (
	// ErrInvalidConfig reports board dimensions or a mine count that cannot be played.
	ErrInvalidConfig = errors.New("invalid board config")
	// ErrAlreadyPlaced is returned when mines are placed twice on the same board.
	ErrAlreadyPlaced = errors.New("mines already placed")
)
