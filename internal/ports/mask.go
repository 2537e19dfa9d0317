package ports

import "image"

// MaskGenerator produces circular alpha masks
type MaskGenerator interface {
	// CircularMask returns a diameter x diameter mask with an opaque centered disk.
	CircularMask(diameter int) (*image.Alpha, error)
}
