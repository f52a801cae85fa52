package poisson

import "errors"

// Every error returned by this package wraps one of these sentinels;
// match them with errors.Is.
var (
	// ErrInvalidRegion is returned when the matte selects no pixel, or every
	// pixel of the source so no boundary is left to anchor the solve.
	ErrInvalidRegion = errors.New("poisson: invalid region")

	// ErrOutOfBounds is returned when the paste offset puts an interior pixel,
	// or one of its 4-neighbours, outside the target raster.
	ErrOutOfBounds = errors.New("poisson: paste out of bounds")

	// ErrSingularSystem is returned when the coefficient matrix cannot be factorized.
	ErrSingularSystem = errors.New("poisson: singular system")

	ErrNilRaster = errors.New("poisson: nil raster")

	ErrDimensionMismatch = errors.New("poisson: dimension mismatch")
)
