package application

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/devbush/photoccrop/internal/adapters/codec"
	"github.com/devbush/photoccrop/internal/adapters/mask"
	"github.com/devbush/photoccrop/internal/ports"
)

func newTestService(t *testing.T, fs afero.Fs, workers int) *CropService {
	t.Helper()
	return newTestServiceWithCodec(t, fs, workers, nil)
}

func newTestServiceWithCodec(t *testing.T, fs afero.Fs, workers int, c ports.ImageCodec) *CropService {
	t.Helper()

	if c == nil {
		real, err := codec.New(codec.FilterLanczos)
		require.NoError(t, err)
		c = real
	}

	masks, err := mask.NewCached(mask.NewGenerator(), 4)
	require.NoError(t, err)

	return NewCropService(fs, c, masks, CropOptions{Workers: workers})
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}
	return img
}

func writePNGFixture(t *testing.T, fs afero.Fs, path string, w, h int) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, gradient(w, h)))
	require.NoError(t, afero.WriteFile(fs, path, buf.Bytes(), 0644))
}

func writeJPEGFixture(t *testing.T, fs afero.Fs, path string, w, h int) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, gradient(w, h), &jpeg.Options{Quality: 90}))
	require.NoError(t, afero.WriteFile(fs, path, buf.Bytes(), 0644))
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
}

func decodePNG(t *testing.T, fs afero.Fs, path string) image.Image {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

// slowCodec delays decoding so concurrent runs overlap predictably
type slowCodec struct {
	*codec.Codec
	delay time.Duration
}

func (s *slowCodec) Decode(r io.Reader) (image.Image, error) {
	time.Sleep(s.delay)
	return s.Codec.Decode(r)
}
