package ports

import (
	"image"
	"io"
)

// ImageCodec handles raster decoding, resizing, compositing and encoding.
type ImageCodec interface {
	// Decode reads a full image, applying any orientation stored in its metadata.
	Decode(r io.Reader) (image.Image, error)

	// DecodeConfig reads only the header and returns dimensions and format name.
	DecodeConfig(r io.Reader) (image.Config, string, error)

	// Fill scales img to cover a width x height box and crops the overflow, centered.
	Fill(img image.Image, width, height int) image.Image

	// CompositeDestIn keeps img only where mask is opaque, scaling alpha by the mask.
	CompositeDestIn(img image.Image, mask *image.Alpha) image.Image

	// EncodePNG writes img as PNG.
	EncodePNG(w io.Writer, img image.Image) error
}
