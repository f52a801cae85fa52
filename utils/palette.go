package utils

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"github.com/setanarut/poisson"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

type weightedColor struct {
	Col    colorful.Color
	Weight float64
}

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

// ParsePaletteMethod accepts the names returned by String.
func ParsePaletteMethod(s string) (PaletteMethod, error) {
	switch s {
	case "kmeans":
		return PaletteMethodKMeans, nil
	case "dominantcolor", "":
		return PaletteMethodDominantColor, nil
	default:
		return 0, fmt.Errorf("unknown palette method %q", s)
	}
}

// RegionSamples reads the colours of the region's pixels from img, shifted
// by off, in index order. Pixels outside img and fully transparent pixels
// are skipped.
func RegionSamples(img *poisson.Raster, region *poisson.Region, off image.Point) []colorful.Color {
	samples := make([]colorful.Color, 0, region.N)
	region.Each(func(_, x, y int) {
		tx, ty := x+off.X, y+off.Y
		if !img.In(tx, ty) {
			return
		}
		p := img.At(tx, ty)
		if p.Alpha() == 0 {
			return
		}
		r, g, b := poisson.Decode(p)
		samples = append(samples, colorful.Color{R: r, G: g, B: b})
	})
	return samples
}

// ExtractRegionPalette returns up to k representative colours of the pixels
// in region, sampled from img at offset off, darkest first.
func ExtractRegionPalette(img *poisson.Raster, region *poisson.Region, off image.Point, k int, method PaletteMethod) []colorful.Color {
	p := ExtractPalette(RegionSamples(img, region, off), k, method)
	SortPaletteByBrightness(p)
	return p
}

// sampleTile lays samples out row by row in a near-square opaque image.
// dominantcolor only accepts an image and shrinks the long side to 256, so a
// thin strip would collapse to zero rows. Cells past the last sample repeat
// the samples from the start.
func sampleTile(samples []colorful.Color) *image.NRGBA {
	side := int(math.Ceil(math.Sqrt(float64(len(samples)))))
	tile := image.NewNRGBA(image.Rect(0, 0, side, side))
	for i := 0; i < side*side; i++ {
		r, g, b := samples[i%len(samples)].Clamped().RGB255()
		tile.SetNRGBA(i%side, i/side, color.NRGBA{R: r, G: g, B: b, A: 255})
	}
	return tile
}

// SortPaletteByBrightness orders colors from darkest to brightest.
func SortPaletteByBrightness(palette []colorful.Color) {
	slices.SortFunc(palette, func(a, b colorful.Color) int {
		ri, gi, bi := a.LinearRgb()
		rj, gj, bj := b.LinearRgb()
		yi := 0.2126*ri + 0.7152*gi + 0.0722*bi
		yj := 0.2126*rj + 0.7152*gj + 0.0722*bj
		if yi < yj {
			return -1
		}
		if yi > yj {
			return 1
		}
		return 0
	})
}

// PaletteShift pairs the two palettes by brightness rank and returns the
// CIE76 distance of each pair. The shorter palette bounds the result.
func PaletteShift(before, after []colorful.Color) []float64 {
	n := min(len(before), len(after))
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = before[i].DistanceLab(after[i])
	}
	return out
}

// ExtractDominantPalette clusters the samples with dominantcolor and keeps
// k well separated candidates.
func ExtractDominantPalette(samples []colorful.Color, k int) []colorful.Color {
	if k <= 0 || len(samples) == 0 {
		return nil
	}

	nCandidates := max(24, k*8)
	candidates := dominantcolor.FindWeight(sampleTile(samples), nCandidates)
	if len(candidates) == 0 {
		candidates = append(candidates, dominantcolor.Color{
			RGBA:   color.RGBA{R: 128, G: 128, B: 128, A: 255},
			Weight: 1.0,
		})
	}

	weighted := make([]weightedColor, 0, len(candidates))
	for _, c := range candidates {
		col, _ := colorful.MakeColor(c.RGBA)
		weighted = append(weighted, weightedColor{Col: col.Clamped(), Weight: max(c.Weight, 1e-6)})
	}
	return SelectDiverseWeightedColors(weighted, k)
}

// SelectDiverseWeightedColors greedily picks k colours that are far apart in
// Lab space, favouring heavily weighted candidates.
func SelectDiverseWeightedColors(cands []weightedColor, k int) []colorful.Color {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	type item struct {
		col colorful.Color
		lab [3]float64
		w   float64
	}
	items := make([]item, 0, len(cands))
	maxW := 0.0
	for _, c := range cands {
		col := c.Col.Clamped()
		l, a, b := col.Lab()
		w := max(c.Weight, 1e-6)
		maxW = max(maxW, w)
		items = append(items, item{
			col: col,
			lab: [3]float64{l, a, b},
			w:   w,
		})
	}
	k = min(k, len(items))

	selectedIdx := make([]int, 0, k)
	selected := make([]bool, len(items))

	bestSeed := 0
	for i := 1; i < len(items); i++ {
		if items[i].w > items[bestSeed].w {
			bestSeed = i
		}
	}
	selectedIdx = append(selectedIdx, bestSeed)
	selected[bestSeed] = true

	for len(selectedIdx) < k {
		bestIdx := -1
		bestScore := -1.0
		for i := range items {
			if selected[i] {
				continue
			}
			minD2 := math.MaxFloat64
			for _, s := range selectedIdx {
				d0 := items[i].lab[0] - items[s].lab[0]
				d1 := items[i].lab[1] - items[s].lab[1]
				d2 := items[i].lab[2] - items[s].lab[2]
				minD2 = min(minD2, d0*d0+d1*d1+d2*d2)
			}
			normW := items[i].w / maxW
			score := math.Sqrt(minD2) * (0.55 + 0.45*math.Sqrt(normW))
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}
		selected[bestIdx] = true
		selectedIdx = append(selectedIdx, bestIdx)
	}

	out := make([]colorful.Color, 0, len(selectedIdx))
	for _, idx := range selectedIdx {
		out = append(out, items[idx].col)
	}
	return out
}

// ExtractKMeansPalette runs k-means over the samples directly, with more
// clusters than requested, and keeps k well separated centres weighted by
// population.
func ExtractKMeansPalette(samples []colorful.Color, k int) []colorful.Color {
	if k <= 0 || len(samples) == 0 {
		return nil
	}

	// Subsample to keep kmeans tractable on large regions.
	const maxSamples = 12000
	step := len(samples)/maxSamples + 1
	dataset := make(clusters.Observations, 0, min(len(samples), maxSamples))
	for i := 0; i < len(samples); i += step {
		c := samples[i]
		dataset = append(dataset, clusters.Coordinates{c.R, c.G, c.B})
	}

	workK := min(max(k*4, k+2), len(dataset))
	km := kmeans.New()
	cc, err := km.Partition(dataset, workK)
	if err != nil || len(cc) == 0 {
		return nil
	}

	// Sort by cluster population so dominant colors come first.
	slices.SortFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	weighted := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		weighted = append(weighted, weightedColor{Col: col, Weight: float64(len(c.Observations))})
	}
	return SelectDiverseWeightedColors(weighted, k)
}

// ExtractPalette picks up to k colours from samples with the given method.
// An empty k-means result falls back to dominantcolor.
func ExtractPalette(samples []colorful.Color, k int, method PaletteMethod) []colorful.Color {
	switch method {
	case PaletteMethodKMeans:
		p := ExtractKMeansPalette(samples, k)
		if len(p) != 0 {
			return p
		}
		slog.Warn("palette: kmeans returned empty palette, falling back to dominantcolor")
		return ExtractDominantPalette(samples, k)
	default:
		return ExtractDominantPalette(samples, k)
	}
}
