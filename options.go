package poisson

// PlacementPolicy decides what happens when the pasted region does not fit
// inside the target raster.
type PlacementPolicy int

const (
	// PlacementReject fails the composite with ErrOutOfBounds.
	PlacementReject PlacementPolicy = iota
	// PlacementClip drops interior pixels whose target position, or one of
	// its 4-neighbours, falls outside the target.
	PlacementClip
)

func (p PlacementPolicy) String() string {
	if p == PlacementClip {
		return "clip"
	}
	return "reject"
}

// Options controls how Composite builds and solves the system.
type Options struct {
	// Guidance field construction.
	// MixedGradients lets strong target detail show through a smooth paste.
	// SourceGradients reproduces the source texture exactly up to a smooth offset.
	Gradients GradientMode
	// Behaviour when the region sticks out of the target.
	Placement PlacementPolicy
	// Solve the three colour channels concurrently.
	// The factorization is computed once and shared either way.
	Parallel bool
}

// DefaultOptions uses mixed gradients, rejects out-of-bounds placement and solves channels in parallel.
func DefaultOptions() Options {
	return Options{
		Gradients: MixedGradients,
		Placement: PlacementReject,
		Parallel:  true,
	}
}
