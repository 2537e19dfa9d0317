package codec

import (
	"fmt"
	"image"
	"io"
	"strings"

	// Register decoders for every supported input format.
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/devbush/photoccrop/internal/ports"
)

// Filter names accepted by ParseFilter
const (
	FilterLanczos    = "lanczos"
	FilterCatmullRom = "catmullrom"
	FilterLinear     = "linear"
	FilterNearest    = "nearest"
)

var filters = map[string]imaging.ResampleFilter{
	FilterLanczos:    imaging.Lanczos,
	FilterCatmullRom: imaging.CatmullRom,
	FilterLinear:     imaging.Linear,
	FilterNearest:    imaging.NearestNeighbor,
}

// ParseFilter maps a filter name to a resample filter
func ParseFilter(name string) (imaging.ResampleFilter, error) {
	f, ok := filters[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return imaging.ResampleFilter{}, fmt.Errorf("unknown resample filter: %s", name)
	}
	return f, nil
}

// Codec implements ports.ImageCodec on top of imaging and x/image
type Codec struct {
	filter imaging.ResampleFilter
}

// New creates a codec resizing with the named filter; empty means lanczos.
func New(filter string) (*Codec, error) {
	if filter == "" {
		filter = FilterLanczos
	}
	f, err := ParseFilter(filter)
	if err != nil {
		return nil, err
	}
	return &Codec{filter: f}, nil
}

func (c *Codec) Decode(r io.Reader) (image.Image, error) {
	return imaging.Decode(r, imaging.AutoOrientation(true))
}

func (c *Codec) DecodeConfig(r io.Reader) (image.Config, string, error) {
	return image.DecodeConfig(r)
}

func (c *Codec) Fill(img image.Image, width, height int) image.Image {
	return imaging.Fill(img, width, height, imaging.Center, c.filter)
}

// CompositeDestIn draws img through mask with the Src operator onto a
// transparent canvas, which yields destination-in: color survives where the
// mask is opaque and alpha is multiplied by the mask alpha.
func (c *Codec) CompositeDestIn(img image.Image, mask *image.Alpha) image.Image {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.DrawMask(dst, dst.Bounds(), img, b.Min, mask, mask.Bounds().Min, draw.Src)
	return dst
}

func (c *Codec) EncodePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

var _ ports.ImageCodec = (*Codec)(nil)
