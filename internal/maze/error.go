package maze

import "errors"

var (
	ErrInvalidDimension   = errors.New("maze dimensions must be positive")
	ErrInvalidWeightRange = errors.New("weight range must be positive")
	ErrInvalidWeights     = errors.New("weights do not fit the grid")
	ErrOutOfBounds        = errors.New("coordinate is outside the grid")
	ErrEmptyGrid          = errors.New("grid has no cells")
	ErrAdjacencyMissing   = errors.New("grid adjacency has not been computed")
	ErrGridUsed           = errors.New("grid already holds a generated maze")
	ErrNotSeeded          = errors.New("generator has no start cell")
	ErrAlreadySeeded      = errors.New("generator is already seeded")
)
