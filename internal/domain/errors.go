package domain

import "errors"

var (
	// Input errors
	ErrInputNotFound     = errors.New("input file does not exist")
	ErrInputDirNotFound  = errors.New("input directory does not exist")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrNoImagesFound     = errors.New("no images found in the input directory")

	// Output errors
	ErrOutputDirUnwritable = errors.New("output location is not writable")

	// Processing errors
	ErrInvalidDimension = errors.New("circle diameter must be greater than zero")
	ErrCodecFailure     = errors.New("image codec failure")

	// Batch control
	ErrCancelled = errors.New("batch cancelled")
)
