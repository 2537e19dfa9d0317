package application

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/devbush/photoccrop/internal/domain"
)

// ProcessBatch crops every supported image directly inside inputDir and writes
// <name>_c.png files to outputDir.
//
// Pipeline-level problems (missing input directory, no images, output
// directory not creatable, invalid diameter) fail the whole call before any
// file is touched. Per-file problems are recorded in that file's outcome and
// the batch still reports Success. Cancelling ctx stops scheduling new files;
// the outcome then lists only the files processed so far.
func (s *CropService) ProcessBatch(
	ctx context.Context,
	inputDir, outputDir string,
	diameter int,
	onProgress domain.ProgressObserver,
) domain.BatchOutcome {
	start := time.Now()

	result := domain.BatchOutcome{
		RunID:     uuid.NewString(),
		InputDir:  inputDir,
		OutputDir: outputDir,
		Diameter:  diameter,
	}

	log := s.log.WithFields(logrus.Fields{
		"run_id":   result.RunID,
		"input":    inputDir,
		"output":   outputDir,
		"diameter": diameter,
	})

	fail := func(err error) domain.BatchOutcome {
		result.Err = err
		result.ErrorMessage = err.Error()
		result.Duration = time.Since(start)
		log.WithError(err).Warn("batch failed before processing")
		return result
	}

	if diameter <= 0 {
		return fail(fmt.Errorf("%w: got %d", domain.ErrInvalidDimension, diameter))
	}

	files, err := s.discover(inputDir)
	if err != nil {
		return fail(err)
	}
	if len(files) == 0 {
		return fail(fmt.Errorf("%w: %s", domain.ErrNoImagesFound, inputDir))
	}

	if err := s.fs.MkdirAll(outputDir, 0755); err != nil {
		return fail(fmt.Errorf("%w: %s: %w", domain.ErrOutputDirUnwritable, outputDir, err))
	}

	result.TotalFiles = len(files)
	log.WithField("files", len(files)).Info("batch started")

	tracker := newProgressTracker(len(files), onProgress)
	if s.workers > 1 && len(files) > 1 {
		s.runPool(ctx, files, outputDir, diameter, tracker)
	} else {
		s.runSequential(ctx, files, outputDir, diameter, tracker)
	}

	result.Outcomes = tracker.outcomes
	result.SuccessfulCount = tracker.successful
	result.FailedCount = tracker.failed
	result.Duration = time.Since(start)

	if len(tracker.outcomes) < len(files) {
		err := fmt.Errorf("%w after %d of %d files: %w", domain.ErrCancelled, len(tracker.outcomes), len(files), ctx.Err())
		result.Cancelled = true
		result.Err = err
		result.ErrorMessage = err.Error()
		log.WithField("processed", len(tracker.outcomes)).Warn("batch cancelled")
		return result
	}

	result.Success = true
	log.WithFields(logrus.Fields{
		"successful": result.SuccessfulCount,
		"failed":     result.FailedCount,
		"duration":   result.Duration,
	}).Info("batch completed")

	return result
}

// discover lists supported image files directly inside dir, in name order
func (s *CropService) discover(dir string) ([]string, error) {
	info, err := s.fs.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInputDirNotFound, dir)
	}

	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrInputDirNotFound, dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !s.formats.IsSupported(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

func (s *CropService) batchRequest(inputPath, outputDir string, diameter int) domain.ProcessingRequest {
	return domain.ProcessingRequest{
		InputPath:  inputPath,
		OutputPath: filepath.Join(outputDir, domain.BatchOutputName(inputPath)),
		Diameter:   diameter,
	}
}

func (s *CropService) runSequential(ctx context.Context, files []string, outputDir string, diameter int, tracker *progressTracker) {
	for _, in := range files {
		if ctx.Err() != nil {
			return
		}
		tracker.record(s.TransformOne(ctx, s.batchRequest(in, outputDir, diameter)))
	}
}

type indexedOutcome struct {
	index   int
	outcome domain.ProcessingOutcome
	skipped bool
}

// runPool crops files on a bounded set of workers. Completions are buffered
// so the tracker still sees them in enumeration order.
func (s *CropService) runPool(ctx context.Context, files []string, outputDir string, diameter int, tracker *progressTracker) {
	results := make(chan indexedOutcome, len(files))

	var g errgroup.Group
	g.SetLimit(min(s.workers, len(files)))

	go func() {
		for i, in := range files {
			i, in := i, in // per-iteration copies (go directive predates 1.22 loopvar semantics)
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				// A worker slot may free up after cancellation
				if ctx.Err() != nil {
					results <- indexedOutcome{index: i, skipped: true}
					return nil
				}
				results <- indexedOutcome{
					index:   i,
					outcome: s.TransformOne(ctx, s.batchRequest(in, outputDir, diameter)),
				}
				return nil
			})
		}
		_ = g.Wait()
		close(results)
	}()

	pending := make([]*indexedOutcome, len(files))
	next := 0
	for r := range results {
		r := r
		pending[r.index] = &r
		for next < len(pending) && pending[next] != nil {
			if !pending[next].skipped {
				tracker.record(pending[next].outcome)
			}
			next++
		}
	}

	// After cancellation there can be gaps; report what finished, still in order
	for ; next < len(pending); next++ {
		if pending[next] != nil && !pending[next].skipped {
			tracker.record(pending[next].outcome)
		}
	}
}

// progressTracker accumulates outcomes and notifies the observer after each one
type progressTracker struct {
	total      int
	successful int
	failed     int
	outcomes   []domain.ProcessingOutcome
	observer   domain.ProgressObserver
}

func newProgressTracker(total int, observer domain.ProgressObserver) *progressTracker {
	return &progressTracker{
		total:    total,
		outcomes: make([]domain.ProcessingOutcome, 0, total),
		observer: observer,
	}
}

func (p *progressTracker) record(o domain.ProcessingOutcome) {
	p.outcomes = append(p.outcomes, o)
	if o.Success {
		p.successful++
	} else {
		p.failed++
	}

	if p.observer == nil {
		return
	}

	processed := len(p.outcomes)
	p.observer(domain.ProgressEvent{
		CurrentIndex:    processed,
		TotalFiles:      p.total,
		SuccessfulSoFar: p.successful,
		FailedSoFar:     p.failed,
		CurrentFileName: filepath.Base(o.InputPath),
		Percentage:      Percentage(processed, p.total),
	})
}

// Percentage returns round(100 * done / total), clamped to [0, 100]
func Percentage(done, total int) int {
	if total <= 0 || done <= 0 {
		return 0
	}
	if done >= total {
		return 100
	}
	return int(math.Round(100 * float64(done) / float64(total)))
}
