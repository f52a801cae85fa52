package poisson

import "golang.org/x/image/colornames"

// PixelOp selects one of the per-pixel operators applied by ApplyOp.
type PixelOp int

const (
	// ClearToWhite replaces every pixel with opaque white.
	ClearToWhite PixelOp = iota
	// ChangeOpacity rewrites the alpha of every non-transparent pixel.
	ChangeOpacity
)

func (op PixelOp) String() string {
	switch op {
	case ClearToWhite:
		return "clear-to-white"
	case ChangeOpacity:
		return "change-opacity"
	default:
		return "unknown"
	}
}

// ApplyOp returns a new raster with op applied to every pixel of r.
// opacity is only used by ChangeOpacity and is expected in [0,1].
func ApplyOp(r *Raster, op PixelOp, opacity float64) *Raster {
	out := NewRaster(r.W, r.H)
	white := Pack(colornames.White.R, colornames.White.G, colornames.White.B, 0xFF)
	alpha := uint8(max(0, min(255, int(opacity*255))))
	for i, p := range r.Pix {
		switch op {
		case ClearToWhite:
			out.Pix[i] = white
		case ChangeOpacity:
			if p.Alpha() == 0 {
				out.Pix[i] = p
				continue
			}
			out.Pix[i] = Pixel(uint32(alpha)<<24 | uint32(p)&0x00FFFFFF)
		default:
			out.Pix[i] = p
		}
	}
	return out
}
