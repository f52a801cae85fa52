package poisson

import (
	"fmt"
	"image"
	"log/slog"
)

// Composite pastes the part of src selected by m into a copy of dst, with
// the source origin placed at (offX, offY). Inside the region the colours
// solve the Poisson equation guided by the source and target gradients;
// every other pixel is copied from dst unchanged.
//
// src, m and dst are only read. On error no image is returned.
func Composite(src *Raster, m Matte, dst *Raster, offX, offY int, opt Options) (*Raster, error) {
	log := Logger()
	off := image.Pt(offX, offY)
	region, err := PlaceRegion(src, m, dst, off, opt.Placement)
	if err != nil {
		return nil, err
	}
	log.Debug("poisson: region indexed",
		slog.Int("unknowns", region.N),
		slog.Int("bandwidth", region.Bandwidth()),
		slog.Any("offset", off))

	a := BuildLaplacian(region)
	f, err := Factorize(a)
	if err != nil {
		return nil, fmt.Errorf("composite: %w", err)
	}

	var bs [3][]float64
	for ci, c := range Channels {
		bs[ci] = BuildGuidance(src, dst, region, off, c, opt.Gradients)
	}
	xs, err := SolveChannels(f, bs, opt.Parallel)
	if err != nil {
		return nil, fmt.Errorf("composite: %w", err)
	}

	out := dst.Clone()
	region.Each(func(i, x, y int) {
		out.Set(x+off.X, y+off.Y, Encode(xs[0][i], xs[1][i], xs[2][i]))
	})
	log.Debug("poisson: composite done", slog.Int("nnz", a.NNZ()), slog.String("gradients", opt.Gradients.String()))
	return out, nil
}

// CompositeImage is Composite for image.Image values. off is the position
// of the source origin inside dst's bounds.
func CompositeImage(src image.Image, m Matte, dst image.Image, off image.Point, opt Options) (*image.NRGBA, error) {
	if src == nil || dst == nil {
		return nil, ErrNilRaster
	}
	out, err := Composite(RasterFromImage(src), m, RasterFromImage(dst), off.X, off.Y, opt)
	if err != nil {
		return nil, err
	}
	return out.Image(), nil
}

// PlaceRegion indexes the pixels of src selected by m and checks them
// against dst at offset off, exactly as Composite does. The returned region
// holds the pixels Composite solves for: under PlacementClip that excludes
// the ones dropped at the target's edge.
func PlaceRegion(src *Raster, m Matte, dst *Raster, off image.Point, policy PlacementPolicy) (*Region, error) {
	if src == nil || dst == nil {
		return nil, ErrNilRaster
	}
	if m == nil {
		return nil, fmt.Errorf("composite: nil matte: %w", ErrInvalidRegion)
	}
	region := IndexRegion(m, src.W, src.H)
	if region.N == 0 {
		return nil, fmt.Errorf("composite: empty matte: %w", ErrInvalidRegion)
	}
	if region.Full() {
		return nil, fmt.Errorf("composite: matte covers the whole %dx%d source: %w", src.W, src.H, ErrInvalidRegion)
	}
	return place(region, dst, off, policy)
}

// place checks that every interior pixel and its 4-neighbours land inside
// dst. Under PlacementClip the offending pixels are removed instead.
func place(r *Region, dst *Raster, off image.Point, policy PlacementPolicy) (*Region, error) {
	fits := func(x, y int) bool {
		tx, ty := x+off.X, y+off.Y
		if !dst.In(tx, ty) {
			return false
		}
		for _, d := range neighbours {
			if !dst.In(tx+d.X, ty+d.Y) {
				return false
			}
		}
		return true
	}
	outside := 0
	r.Each(func(_, x, y int) {
		if !fits(x, y) {
			outside++
		}
	})
	if outside == 0 {
		return r, nil
	}
	if policy != PlacementClip {
		return nil, fmt.Errorf("composite: %d of %d pixels at offset %v leave the %dx%d target: %w",
			outside, r.N, off, dst.W, dst.H, ErrOutOfBounds)
	}
	clipped := r.Restrict(fits)
	Logger().Debug("poisson: placement clipped", slog.Int("dropped", outside), slog.Int("kept", clipped.N))
	if clipped.N == 0 {
		return nil, fmt.Errorf("composite: nothing left after clipping at offset %v: %w", off, ErrInvalidRegion)
	}
	return clipped, nil
}
