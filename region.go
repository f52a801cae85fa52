package poisson

import "image"

// Region assigns each interior pixel of a W×H frame a dense unknown index.
// Indices follow row-major order (y outer, x inner, both ascending); every
// matrix row and vector entry downstream relies on this order.
type Region struct {
	W, H int
	// N is the number of interior pixels.
	N     int
	index []int // len = W*H, -1 for pixels outside the region
	coord []image.Point
}

// IndexRegion enumerates the pixels of the w×h frame for which m reports inside.
func IndexRegion(m Matte, w, h int) *Region {
	return indexWith(w, h, m.Contains)
}

func indexWith(w, h int, inside func(x, y int) bool) *Region {
	r := &Region{
		W:     w,
		H:     h,
		index: make([]int, w*h),
	}
	next := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if inside(x, y) {
				r.index[y*w+x] = next
				r.coord = append(r.coord, image.Pt(x, y))
				next++
				continue
			}
			r.index[y*w+x] = -1
		}
	}
	r.N = next
	return r
}

// Index returns the unknown index of (x, y) or -1 when the pixel is not interior.
func (r *Region) Index(x, y int) int {
	if x < 0 || y < 0 || x >= r.W || y >= r.H {
		return -1
	}
	return r.index[y*r.W+x]
}

func (r *Region) Inside(x, y int) bool {
	return r.Index(x, y) >= 0
}

// Coord is the inverse of Index.
func (r *Region) Coord(i int) image.Point {
	return r.coord[i]
}

// Each visits the interior pixels in index order.
func (r *Region) Each(fn func(i, x, y int)) {
	for i, p := range r.coord {
		fn(i, p.X, p.Y)
	}
}

// Full reports whether every pixel of the frame is interior.
func (r *Region) Full() bool {
	return r.N == r.W*r.H
}

// Bandwidth is the largest index distance between two interior 4-neighbours.
func (r *Region) Bandwidth() int {
	k := 0
	r.Each(func(i, x, y int) {
		if j := r.Index(x+1, y); j >= 0 {
			k = max(k, j-i)
		}
		if j := r.Index(x, y+1); j >= 0 {
			k = max(k, j-i)
		}
	})
	return k
}

// Restrict re-indexes the interior pixels for which keep returns true.
func (r *Region) Restrict(keep func(x, y int) bool) *Region {
	return indexWith(r.W, r.H, func(x, y int) bool {
		return r.Inside(x, y) && keep(x, y)
	})
}
