package poisson

import (
	"image"

	"golang.org/x/image/colornames"
)

// Matte decides which source pixels belong to the pasted region.
type Matte interface {
	Contains(x, y int) bool
}

// MatteFunc adapts an ordinary function to the Matte interface.
type MatteFunc func(x, y int) bool

func (f MatteFunc) Contains(x, y int) bool { return f(x, y) }

// Polygon is a closed polygon in source raster coordinates. The last vertex
// connects back to the first.
type Polygon []image.Point

// Bounds returns the smallest rectangle containing every vertex.
func (p Polygon) Bounds() image.Rectangle {
	if len(p) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: p[0], Max: p[0]}
	for _, v := range p[1:] {
		r.Min.X = min(r.Min.X, v.X)
		r.Min.Y = min(r.Min.Y, v.Y)
		r.Max.X = max(r.Max.X, v.X)
		r.Max.Y = max(r.Max.Y, v.Y)
	}
	return r
}

// Contains applies the even-odd rule to the point (x, y). Points exactly on
// a left or top edge count as inside, points on a right or bottom edge as
// outside, so two polygons sharing an edge never both claim a pixel.
func (p Polygon) Contains(x, y int) bool {
	n := len(p)
	if n <= 2 {
		return false
	}
	// half-open box test: Max is exclusive
	if !image.Pt(x, y).In(p.Bounds()) {
		return false
	}
	px, py := float64(x), float64(y)
	hits := 0
	lastX, lastY := p[n-1].X, p[n-1].Y
	for i := 0; i < n; i++ {
		curX, curY := p[i].X, p[i].Y
		prevX, prevY := lastX, lastY
		lastX, lastY = curX, curY
		if curY == prevY {
			continue
		}
		var leftX int
		if curX < prevX {
			if px >= float64(prevX) {
				continue
			}
			leftX = curX
		} else {
			if px >= float64(curX) {
				continue
			}
			leftX = prevX
		}
		var t1, t2 float64
		if curY < prevY {
			if py < float64(curY) || py >= float64(prevY) {
				continue
			}
			if px < float64(leftX) {
				hits++
				continue
			}
			t1 = px - float64(curX)
			t2 = py - float64(curY)
		} else {
			if py < float64(prevY) || py >= float64(curY) {
				continue
			}
			if px < float64(leftX) {
				hits++
				continue
			}
			t1 = px - float64(prevX)
			t2 = py - float64(prevY)
		}
		if t1 < t2/float64(prevY-curY)*float64(prevX-curX) {
			hits++
		}
	}
	return hits&1 != 0
}

// RasterMatte treats pixels whose red component is saturated as inside.
type RasterMatte struct {
	*Raster
}

func (m RasterMatte) Contains(x, y int) bool {
	if m.Raster == nil || !m.In(x, y) {
		return false
	}
	return m.At(x, y).Red() == 0xFF
}

// CreateMatte rasterizes poly into a w×h matte: red inside, opaque black outside.
func CreateMatte(w, h int, poly Polygon) *Raster {
	inside := Pack(colornames.Red.R, colornames.Red.G, colornames.Red.B, 0xFF)
	outside := Pack(colornames.Black.R, colornames.Black.G, colornames.Black.B, 0xFF)
	out := NewRaster(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if poly.Contains(x, y) {
				out.Pix[y*w+x] = inside
			} else {
				out.Pix[y*w+x] = outside
			}
		}
	}
	return out
}
