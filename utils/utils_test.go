package utils

import (
	"image"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/setanarut/poisson"
	"github.com/stretchr/testify/require"
)

func TestParsePolygon(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    poisson.Polygon
		wantErr bool
	}{
		{"spaces", "10,10 40,10 25,30", poisson.Polygon{{10, 10}, {40, 10}, {25, 30}}, false},
		{"semicolons", "0,0;4,0;4,4;0,4", poisson.Polygon{{0, 0}, {4, 0}, {4, 4}, {0, 4}}, false},
		{"space inside a vertex", " 1, 2  3 ,4\n5,6 ", nil, true},
		{"newlines", "1,2\n3,4\r\n5,6\n", poisson.Polygon{{1, 2}, {3, 4}, {5, 6}}, false},
		{"too few", "1,2 3,4", nil, true},
		{"missing comma", "1,2 3 4,5", nil, true},
		{"not a number", "1,2 a,4 5,6", nil, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParsePolygon(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestReadPolygon(t *testing.T) {
	t.Parallel()

	in := "# lasso\n0,0\n\n8,0\n8,6\n0,6\n"
	poly, err := ReadPolygon(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, poisson.Polygon{{0, 0}, {8, 0}, {8, 6}, {0, 6}}, poly)
}

func TestSaveAndReadRaster(t *testing.T) {
	t.Parallel()

	r := poisson.CreateMatte(7, 5, poisson.Polygon{{1, 1}, {6, 1}, {3, 4}})
	path := filepath.Join(t.TempDir(), "matte.png")
	require.NoError(t, SaveRaster(r, path))

	back, err := ReadRaster(path)
	require.NoError(t, err)
	require.Equal(t, r, back)

	_, err = ReadImage(filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
}

func TestSavePalette(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "palette.png")
	require.Error(t, SavePalette(nil, 8, path))

	pal := []colorful.Color{{R: 1}, {G: 1}}
	require.NoError(t, SavePalette(pal, 8, path))
	img, err := ReadImage(path)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 16, 8), img.Bounds())
	r, g, _, _ := img.At(12, 3).RGBA()
	require.Zero(t, r)
	require.Equal(t, uint32(0xFFFF), g)
}
