package poisson

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
)

// Pixel is a packed 0xAARRGGBB colour value.
type Pixel uint32

// Pack builds a Pixel from 8-bit components.
func Pack(r, g, b, a uint8) Pixel {
	return Pixel(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGBA8 unpacks the 8-bit components.
func (p Pixel) RGBA8() (r, g, b, a uint8) {
	return uint8(p >> 16), uint8(p >> 8), uint8(p), uint8(p >> 24)
}

func (p Pixel) Red() uint8   { return uint8(p >> 16) }
func (p Pixel) Green() uint8 { return uint8(p >> 8) }
func (p Pixel) Blue() uint8  { return uint8(p) }
func (p Pixel) Alpha() uint8 { return uint8(p >> 24) }

// Channel returns a single normalized colour channel.
func (p Pixel) Channel(c Channel) float64 {
	switch c {
	case Red:
		return float64(p.Red()) / 255.0
	case Green:
		return float64(p.Green()) / 255.0
	default:
		return float64(p.Blue()) / 255.0
	}
}

// Decode returns the red, green and blue components normalized to [0,1].
func Decode(p Pixel) (r, g, b float64) {
	return float64(p.Red()) / 255.0, float64(p.Green()) / 255.0, float64(p.Blue()) / 255.0
}

// Encode converts normalized channels back into an opaque Pixel.
// Values are scaled by 255, rounded to nearest and saturated to [0,255].
func Encode(r, g, b float64) Pixel {
	r8, g8, b8 := colorful.Color{R: r, G: g, B: b}.Clamped().RGB255()
	return Pack(r8, g8, b8, 0xFF)
}

// ============ RASTER ============

// Raster is a fixed-size grid of packed pixels stored row-major (y*W+x).
type Raster struct {
	W, H int
	Pix  []Pixel
}

// NewRaster returns a transparent black raster of size w x h.
func NewRaster(w, h int) *Raster {
	return &Raster{
		W:   w,
		H:   h,
		Pix: make([]Pixel, w*h),
	}
}

// RasterFromImage converts img into a Raster of non-premultiplied 8-bit pixels.
// The image origin is moved to (0,0).
func RasterFromImage(img image.Image) *Raster {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	r := NewRaster(w, h)
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
		bounds = nrgba.Bounds()
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := nrgba.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y)
			r.Pix[y*w+x] = Pack(c.R, c.G, c.B, c.A)
		}
	}
	return r
}

// In reports whether (x, y) lies inside the raster.
func (r *Raster) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < r.W && y < r.H
}

// At returns the pixel at (x, y). Callers must check bounds with In.
func (r *Raster) At(x, y int) Pixel {
	return r.Pix[y*r.W+x]
}

// Set stores p at (x, y). The point must be inside the raster.
func (r *Raster) Set(x, y int, p Pixel) {
	r.Pix[y*r.W+x] = p
}

// Bounds returns the raster rectangle anchored at the origin.
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.W, r.H)
}

// Clone returns a deep copy of r.
func (r *Raster) Clone() *Raster {
	out := &Raster{W: r.W, H: r.H, Pix: make([]Pixel, len(r.Pix))}
	copy(out.Pix, r.Pix)
	return out
}

// Image converts the raster into an *image.NRGBA.
func (r *Raster) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.W, r.H))
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			cr, cg, cb, ca := r.At(x, y).RGBA8()
			img.SetNRGBA(x, y, color.NRGBA{R: cr, G: cg, B: cb, A: ca})
		}
	}
	return img
}
