package application

import (
	"context"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/devbush/photoccrop/internal/domain"
	"github.com/devbush/photoccrop/internal/ports"
)

// CropOptions configures the crop service
type CropOptions struct {
	Formats domain.Formats     // zero value means domain.DefaultFormats()
	Workers int                // batch concurrency, <= 1 runs sequentially
	Logger  logrus.FieldLogger // nil discards logs
}

// CropService crops photos into circles, one at a time or a folder at a time
type CropService struct {
	fs      afero.Fs
	codec   ports.ImageCodec
	masks   ports.MaskGenerator
	formats domain.Formats
	workers int
	log     logrus.FieldLogger
}

// NewCropService creates a new crop service
func NewCropService(
	fs afero.Fs,
	codec ports.ImageCodec,
	masks ports.MaskGenerator,
	opts CropOptions,
) *CropService {
	formats := opts.Formats
	if len(formats.Extensions()) == 0 {
		formats = domain.DefaultFormats()
	}

	log := opts.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	return &CropService{
		fs:      fs,
		codec:   codec,
		masks:   masks,
		formats: formats,
		workers: workers,
		log:     log,
	}
}

// Formats returns the accepted input formats
func (s *CropService) Formats() domain.Formats {
	return s.formats
}

// WithWorkers returns a copy of the service running batches on n workers
func (s *CropService) WithWorkers(n int) *CropService {
	cp := *s
	cp.workers = max(1, n)
	return &cp
}

// TransformOne crops a single image into a circle and writes it as PNG.
// Every failure is reported in the outcome; nothing is returned as an error.
func (s *CropService) TransformOne(ctx context.Context, req domain.ProcessingRequest) domain.ProcessingOutcome {
	start := time.Now()

	outcome := domain.ProcessingOutcome{
		InputPath:  req.InputPath,
		OutputPath: req.OutputPath,
		Diameter:   req.Diameter,
	}

	log := s.log.WithFields(logrus.Fields{
		"file":     req.InputPath,
		"output":   req.OutputPath,
		"diameter": req.Diameter,
	})

	if err := s.transform(req); err != nil {
		outcome.Err = err
		outcome.ErrorMessage = err.Error()
		log.WithError(err).Debug("crop failed")
	} else {
		outcome.Success = true
	}

	outcome.Duration = time.Since(start)
	if outcome.Success {
		log.WithField("duration", outcome.Duration).Debug("cropped")
	}
	return outcome
}

func (s *CropService) transform(req domain.ProcessingRequest) error {
	// Input must be an existing regular file
	info, err := s.fs.Stat(req.InputPath)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", domain.ErrInputNotFound, req.InputPath)
	}

	if !s.formats.IsSupported(req.InputPath) {
		ext := filepath.Ext(req.InputPath)
		if ext == "" {
			ext = "(no extension)"
		}
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, ext)
	}

	outDir := filepath.Dir(req.OutputPath)
	if err := s.fs.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrOutputDirUnwritable, outDir, err)
	}

	mask, err := s.masks.CircularMask(req.Diameter)
	if err != nil {
		return err
	}

	img, err := s.decode(req.InputPath)
	if err != nil {
		return err
	}

	resized := s.codec.Fill(img, req.Diameter, req.Diameter)
	circle := s.codec.CompositeDestIn(resized, mask)

	return s.writePNG(req.OutputPath, circle)
}

func (s *CropService) decode(path string) (image.Image, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrInputNotFound, path, err)
	}
	defer f.Close()

	img, err := s.codec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrCodecFailure, filepath.Base(path), err)
	}
	return img, nil
}

// writePNG encodes img to path, removing the file if encoding fails part way
func (s *CropService) writePNG(path string, img image.Image) error {
	f, err := s.fs.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrOutputDirUnwritable, path, err)
	}

	if err := s.codec.EncodePNG(f, img); err != nil {
		f.Close()
		_ = s.fs.Remove(path)
		return fmt.Errorf("%w: encode %s: %w", domain.ErrCodecFailure, filepath.Base(path), err)
	}

	if err := f.Close(); err != nil {
		_ = s.fs.Remove(path)
		return fmt.Errorf("%w: %s: %w", domain.ErrOutputDirUnwritable, path, err)
	}
	return nil
}

// Inspect reads an image header and reports its dimensions, format and size
func (s *CropService) Inspect(ctx context.Context, path string) (*domain.ImageInfo, error) {
	info, err := s.fs.Stat(path)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInputNotFound, path)
	}

	f, err := s.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrInputNotFound, path, err)
	}
	defer f.Close()

	cfg, format, err := s.codec.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrCodecFailure, filepath.Base(path), err)
	}

	return &domain.ImageInfo{
		Path:      path,
		Width:     cfg.Width,
		Height:    cfg.Height,
		Format:    format,
		SizeBytes: info.Size(),
	}, nil
}
