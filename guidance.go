package poisson

import (
	"image"
	"math"
)

// Channel identifies one colour channel of a Pixel.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

// Channels lists the solved channels in output order.
var Channels = [3]Channel{Red, Green, Blue}

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	default:
		return "blue"
	}
}

// GradientMode selects how source and target gradients form the guidance field.
type GradientMode int

const (
	// MixedGradients keeps whichever of the two gradients is stronger.
	MixedGradients GradientMode = iota
	// SourceGradients imports the source gradients unchanged.
	SourceGradients
)

func (m GradientMode) String() string {
	if m == SourceGradients {
		return "source"
	}
	return "mixed"
}

// MixGradient returns dTarget when its magnitude is strictly larger than
// dSource's, otherwise dSource. Equal magnitudes resolve to the source.
func MixGradient(dTarget, dSource float64) float64 {
	if math.Abs(dTarget) > math.Abs(dSource) {
		return dTarget
	}
	return dSource
}

// BuildGuidance computes the right-hand side for channel c. Source pixels
// live in src at their own coordinates; target pixels are read from dst
// shifted by off. Every interior pixel's target position and its four
// neighbours must lie inside dst.
func BuildGuidance(src, dst *Raster, r *Region, off image.Point, c Channel, mode GradientMode) []float64 {
	b := make([]float64, r.N)
	r.Each(func(i, x, y int) {
		tx, ty := x+off.X, y+off.Y
		gp := src.At(x, y).Channel(c)
		fp := dst.At(tx, ty).Channel(c)
		grad := 0.0
		for _, d := range neighbours {
			qx, qy := x+d.X, y+d.Y
			fq := dst.At(tx+d.X, ty+d.Y).Channel(c)
			gq := gp
			if src.In(qx, qy) {
				gq = src.At(qx, qy).Channel(c)
			}
			if mode == SourceGradients {
				grad += gp - gq
			} else {
				grad += MixGradient(fp-fq, gp-gq)
			}
			if !r.Inside(qx, qy) {
				// Dirichlet boundary value
				grad += fq
			}
		}
		b[i] = grad
	})
	return b
}
