package main

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/setanarut/poisson"
	"github.com/setanarut/poisson/utils"
	"github.com/stretchr/testify/require"
)

func fill(w, h int, p poisson.Pixel) *poisson.Raster {
	r := poisson.NewRaster(w, h)
	for i := range r.Pix {
		r.Pix[i] = p
	}
	return r
}

func checker(w, h int) *poisson.Raster {
	r := poisson.NewRaster(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(40 + (x*17+y*29)%180)
			r.Set(x, y, poisson.Pack(v, 255-v, uint8(x*y%256), 255))
		}
	}
	return r
}

func pointsMatte(pts ...image.Point) poisson.Matte {
	return poisson.MatteFunc(func(x, y int) bool {
		for _, p := range pts {
			if p.X == x && p.Y == y {
				return true
			}
		}
		return false
	})
}

func TestParseGradients(t *testing.T) {
	t.Parallel()

	m, err := parseGradients("mixed")
	require.NoError(t, err)
	require.Equal(t, poisson.MixedGradients, m)
	m, err = parseGradients("source")
	require.NoError(t, err)
	require.Equal(t, poisson.SourceGradients, m)
	_, err = parseGradients("Mixed")
	require.Error(t, err)
	_, err = parseGradients("")
	require.Error(t, err)
}

func TestNaivePaste(t *testing.T) {
	t.Parallel()

	red := poisson.Pack(200, 10, 10, 255)
	grey := poisson.Pack(90, 90, 90, 255)
	src := fill(3, 3, red)
	dst := fill(5, 5, grey)
	region := poisson.IndexRegion(pointsMatte(image.Pt(1, 1), image.Pt(2, 1)), 3, 3)

	// (2,1) lands on (5,4), one past the right edge
	out := naivePaste(src, region, dst, image.Pt(3, 3), 1)

	require.Equal(t, image.Rect(0, 0, 5, 5), out.Bounds())
	require.Equal(t, color.NRGBA{R: 200, G: 10, B: 10, A: 255}, out.NRGBAAt(4, 4))
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if x == 4 && y == 4 {
				continue
			}
			require.Equal(t, color.NRGBA{R: 90, G: 90, B: 90, A: 255}, out.NRGBAAt(x, y), "(%d,%d)", x, y)
		}
	}
}

func TestNaivePasteOpacity(t *testing.T) {
	t.Parallel()

	src := fill(3, 3, poisson.Pack(255, 255, 255, 255))
	dst := fill(3, 3, poisson.Pack(0, 0, 0, 255))
	region := poisson.IndexRegion(pointsMatte(image.Pt(1, 1)), 3, 3)

	out := naivePaste(src, region, dst, image.Point{}, 0.5)
	c := out.NRGBAAt(1, 1)
	require.Equal(t, uint8(255), c.A)
	require.InDelta(t, 127, int(c.R), 2)
	require.Equal(t, color.NRGBA{A: 255}, out.NRGBAAt(0, 0))
}

func TestCutout(t *testing.T) {
	t.Parallel()

	src := checker(4, 4)
	region := poisson.IndexRegion(pointsMatte(image.Pt(1, 2), image.Pt(2, 2)), 4, 4)
	out := cutout(src, region)

	white := poisson.Pack(255, 255, 255, 255)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if y == 2 && (x == 1 || x == 2) {
				require.Equal(t, src.At(x, y), out.At(x, y))
				continue
			}
			require.Equal(t, white, out.At(x, y), "(%d,%d)", x, y)
		}
	}
}

func TestReportPaletteClippedRegion(t *testing.T) {
	t.Parallel()

	src := checker(24, 24)
	dst := checker(30, 30)
	m := poisson.Polygon{image.Pt(1, 1), image.Pt(23, 1), image.Pt(23, 23), image.Pt(1, 23)}
	off := image.Pt(12, 12)

	region, err := poisson.PlaceRegion(src, m, dst, off, poisson.PlacementClip)
	require.NoError(t, err)
	require.Less(t, region.N, poisson.IndexRegion(m, src.W, src.H).N)
	// every kept pixel was blended, so the report never reads past the target
	region.Each(func(_, x, y int) {
		require.True(t, dst.In(x+off.X, y+off.Y))
	})

	big, err := poisson.PlaceRegion(src, m, checker(40, 40), image.Pt(5, 5), poisson.PlacementReject)
	require.NoError(t, err)
	require.Greater(t, big.N, 256)

	for _, method := range []utils.PaletteMethod{utils.PaletteMethodDominantColor, utils.PaletteMethodKMeans} {
		require.NotPanics(t, func() {
			reportPalette(src, dst, region, off, 4, method)
			reportPalette(src, checker(40, 40), big, image.Pt(5, 5), 4, method)
		})
	}
}

func TestMatteFlagsPolygon(t *testing.T) {
	t.Parallel()

	mf := matteFlags{polygon: "0,0 4,0 4,4 0,4"}
	m, err := mf.matte()
	require.NoError(t, err)
	require.True(t, m.Contains(1, 1))
	require.False(t, m.Contains(4, 4))

	mf = matteFlags{polygon: "0,0 4,0"}
	_, err = mf.matte()
	require.Error(t, err)
}

func TestPasteCommand(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "source.png")
	dstPath := filepath.Join(dir, "target.png")
	outPath := filepath.Join(dir, "out.png")
	require.NoError(t, utils.SaveRaster(checker(12, 12), srcPath))
	dst := fill(20, 20, poisson.Pack(30, 60, 90, 255))
	require.NoError(t, utils.SaveRaster(dst, dstPath))

	var logs bytes.Buffer
	root := newRootCmd()
	root.SetErr(&logs)
	root.SetArgs([]string{"paste",
		"-s", srcPath, "-t", dstPath, "-o", outPath,
		"--polygon", "2,2 8,2 8,8 2,8",
		"-x", "4", "-y", "4",
		"--palette", "3",
	})
	require.NoError(t, root.Execute())
	require.Contains(t, logs.String(), "composite written")
	require.Contains(t, logs.String(), "palette")

	out, err := utils.ReadRaster(outPath)
	require.NoError(t, err)
	require.Equal(t, dst.Bounds(), out.Bounds())
	// pasted pixels sit at target 6..11
	require.Equal(t, dst.At(5, 5), out.At(5, 5))
	require.Equal(t, dst.At(12, 12), out.At(12, 12))
	require.NotEqual(t, dst.At(8, 8), out.At(8, 8))

	// the region's neighbours leave the target unless clipped
	root = newRootCmd()
	root.SetErr(&logs)
	root.SetArgs([]string{"paste",
		"-s", srcPath, "-t", dstPath, "-o", outPath,
		"--polygon", "2,2 8,2 8,8 2,8",
		"-x", "14", "-y", "14",
	})
	require.ErrorIs(t, root.Execute(), poisson.ErrOutOfBounds)
}
