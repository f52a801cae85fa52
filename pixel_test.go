package poisson

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackUnpack(t *testing.T) {
	t.Parallel()

	p := Pack(0x12, 0x34, 0x56, 0x78)
	require.Equal(t, Pixel(0x78123456), p)
	r, g, b, a := p.RGBA8()
	require.Equal(t, []uint8{0x12, 0x34, 0x56, 0x78}, []uint8{r, g, b, a})
	require.Equal(t, uint8(0x12), p.Red())
	require.Equal(t, uint8(0x34), p.Green())
	require.Equal(t, uint8(0x56), p.Blue())
	require.Equal(t, uint8(0x78), p.Alpha())
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	for v := 0; v < 256; v++ {
		p := Pack(uint8(v), uint8(255-v), uint8(v/2), 0xFF)
		r, g, b := Decode(p)
		require.Equal(t, p, Encode(r, g, b), "value %d", v)
		require.InDelta(t, float64(v)/255.0, p.Channel(Red), 1e-15)
	}
}

func TestEncodeSaturates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		r, g, b float64
		want    Pixel
	}{
		{"below zero", -0.3, -10, 0, Pack(0, 0, 0, 0xFF)},
		{"above one", 1.2, 1.0000001, 50, Pack(255, 255, 255, 0xFF)},
		{"mixed", -1, 2, 0.5, Pack(0, 255, 128, 0xFF)},
		{"rounds to nearest", 100.4 / 255, 100.6 / 255, 0, Pack(100, 101, 0, 0xFF)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Encode(tc.r, tc.g, tc.b))
		})
	}
}

func TestRasterFromImage(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(10, 20, 13, 22))
	img.SetRGBA(10, 20, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	img.SetRGBA(12, 21, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	r := RasterFromImage(img)
	require.Equal(t, 3, r.W)
	require.Equal(t, 2, r.H)
	require.Equal(t, Pack(1, 2, 3, 255), r.At(0, 0))
	require.Equal(t, Pack(200, 100, 50, 255), r.At(2, 1))
	require.Equal(t, Pack(0, 0, 0, 0), r.At(1, 0))

	back := r.Image()
	require.Equal(t, image.Rect(0, 0, 3, 2), back.Bounds())
	require.Equal(t, color.NRGBA{R: 200, G: 100, B: 50, A: 255}, back.NRGBAAt(2, 1))
	require.Equal(t, r, RasterFromImage(back))
}

func TestRasterClone(t *testing.T) {
	t.Parallel()

	r := NewRaster(2, 2)
	r.Set(1, 1, Pack(9, 9, 9, 9))
	c := r.Clone()
	require.Equal(t, r, c)
	c.Set(0, 0, Pack(1, 1, 1, 1))
	require.Equal(t, Pixel(0), r.At(0, 0))
	require.True(t, r.In(1, 1))
	require.False(t, r.In(2, 0))
	require.False(t, r.In(0, -1))
}
