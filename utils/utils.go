package utils

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/setanarut/poisson"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ReadImage decodes a PNG, JPEG, BMP, TIFF or WebP file.
func ReadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// ReadRaster is ReadImage followed by poisson.RasterFromImage.
func ReadRaster(path string) (*poisson.Raster, error) {
	img, err := ReadImage(path)
	if err != nil {
		return nil, err
	}
	return poisson.RasterFromImage(img), nil
}

// SaveImage writes img to filename as PNG.
func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SaveRaster writes r to filename as PNG.
func SaveRaster(r *poisson.Raster, filename string) error {
	return SaveImage(r.Image(), filename)
}

// SavePalette writes the palette as a row of tileSize squares to filename as PNG.
func SavePalette(palette []colorful.Color, tileSize int, filename string) error {
	if len(palette) == 0 {
		return fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}

	w := tileSize * len(palette)
	h := tileSize
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for i, c := range palette {
		r, g, b := c.Clamped().RGB255()
		x0 := i * tileSize
		x1 := x0 + tileSize
		for y := 0; y < h; y++ {
			for x := x0; x < x1; x++ {
				img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
			}
		}
	}

	return SaveImage(img, filename)
}

// ParsePolygon reads vertices written as "x,y" pairs separated by spaces,
// semicolons or newlines, e.g. "10,10 40,10 25,30".
func ParsePolygon(s string) (poisson.Polygon, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ';' || r == '\n' || r == '\t' || r == '\r'
	})
	poly := make(poisson.Polygon, 0, len(fields))
	for _, f := range fields {
		xs, ys, ok := strings.Cut(f, ",")
		if !ok {
			return nil, fmt.Errorf("polygon vertex %q: want x,y", f)
		}
		x, err := strconv.Atoi(strings.TrimSpace(xs))
		if err != nil {
			return nil, fmt.Errorf("polygon vertex %q: %w", f, err)
		}
		y, err := strconv.Atoi(strings.TrimSpace(ys))
		if err != nil {
			return nil, fmt.Errorf("polygon vertex %q: %w", f, err)
		}
		poly = append(poly, image.Pt(x, y))
	}
	if len(poly) < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 vertices, got %d", len(poly))
	}
	return poly, nil
}

// ReadPolygon parses a vertex list from r, one "x,y" pair per line.
// Blank lines and lines starting with '#' are skipped.
func ReadPolygon(r io.Reader) (poisson.Polygon, error) {
	var b strings.Builder
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ParsePolygon(b.String())
}
