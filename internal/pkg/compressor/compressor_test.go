package compressor

import (
	"bytes"
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noisePNG encodes a random-noise image, which compresses poorly and is
// guaranteed to exceed the compression threshold at these dimensions.
func noisePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	rng := rand.New(rand.NewSource(42))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func TestCompressPassThroughBelowThreshold(t *testing.T) {
	c := NewImageCompressor(DefaultThreshold, DefaultMaxWidth, DefaultQuality)

	data := make([]byte, 100*1024)
	out, mime := c.Compress(data, "image/png")

	assert.Equal(t, "image/png", mime)
	require.Len(t, out, len(data))
	// Same backing array, not a re-encoded copy.
	assert.Same(t, &data[0], &out[0])
}

func TestCompressResizesWideImages(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		height     int
		wantWidth  int
		wantHeight int
	}{
		{
			name:       "landscape above cap",
			width:      2000,
			height:     1000,
			wantWidth:  1200,
			wantHeight: 600,
		},
		{
			name:       "portrait above cap",
			width:      1600,
			height:     2000,
			wantWidth:  1200,
			wantHeight: 1500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewImageCompressor(DefaultThreshold, DefaultMaxWidth, DefaultQuality)

			data := noisePNG(t, tt.width, tt.height)
			require.Greater(t, len(data), DefaultThreshold)

			out, mime := c.Compress(data, "image/png")

			assert.Equal(t, "image/jpeg", mime)
			assert.Less(t, len(out), len(data))

			img, err := imaging.Decode(bytes.NewReader(out))
			require.NoError(t, err)
			assert.Equal(t, tt.wantWidth, img.Bounds().Dx())
			assert.Equal(t, tt.wantHeight, img.Bounds().Dy())
		})
	}
}

func TestCompressKeepsNarrowDimensions(t *testing.T) {
	c := NewImageCompressor(DefaultThreshold, DefaultMaxWidth, DefaultQuality)

	data := noisePNG(t, 800, 900)
	require.Greater(t, len(data), DefaultThreshold)

	out, mime := c.Compress(data, "image/png")
	assert.Equal(t, "image/jpeg", mime)

	img, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 900, img.Bounds().Dy())
}

func TestCompressDecodeFailureReturnsOriginal(t *testing.T) {
	c := NewImageCompressor(DefaultThreshold, DefaultMaxWidth, DefaultQuality)

	rng := rand.New(rand.NewSource(7))
	data := make([]byte, 600*1024)
	rng.Read(data)

	out, mime := c.Compress(data, "image/png")

	assert.Equal(t, "image/png", mime)
	require.Len(t, out, len(data))
	assert.Same(t, &data[0], &out[0])
}
