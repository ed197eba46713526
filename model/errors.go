package model

import "github.com/pkg/errors"

var (
	// ErrInvalidDimension is returned when a grid is built or resized with a
	// non-positive width or height.
	ErrInvalidDimension = errors.New("invalid grid dimension")

	// ErrOutOfBounds is returned when a coordinate falls outside the grid.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
)
