package domain

import (
	"fmt"
	"time"
)

// ProcessingRequest describes one crop
type ProcessingRequest struct {
	InputPath  string
	OutputPath string
	Diameter   int
}

// ProcessingOutcome is the result of cropping one image.
// Failures are carried in Err/ErrorMessage rather than returned.
type ProcessingOutcome struct {
	Success      bool          `json:"success"`
	InputPath    string        `json:"input_path"`
	OutputPath   string        `json:"output_path"`
	Diameter     int           `json:"diameter"`
	Err          error         `json:"-"`
	ErrorMessage string        `json:"error,omitempty"`
	Duration     time.Duration `json:"duration"`
}

// BatchOutcome aggregates the outcomes of one batch run
type BatchOutcome struct {
	RunID           string              `json:"run_id"`
	Success         bool                `json:"success"`
	Cancelled       bool                `json:"cancelled,omitempty"`
	TotalFiles      int                 `json:"total_files"`
	SuccessfulCount int                 `json:"successful"`
	FailedCount     int                 `json:"failed"`
	Outcomes        []ProcessingOutcome `json:"outcomes"`
	InputDir        string              `json:"input_dir"`
	OutputDir       string              `json:"output_dir"`
	Diameter        int                 `json:"diameter"`
	Err             error               `json:"-"`
	ErrorMessage    string              `json:"error,omitempty"`
	Duration        time.Duration       `json:"duration"`
}

// Failures returns only the failed outcomes, in processing order
func (b *BatchOutcome) Failures() []ProcessingOutcome {
	var failed []ProcessingOutcome
	for _, o := range b.Outcomes {
		if !o.Success {
			failed = append(failed, o)
		}
	}
	return failed
}

// Summary renders the counters as a single line
func (b *BatchOutcome) Summary() string {
	return fmt.Sprintf("%d succeeded, %d failed", b.SuccessfulCount, b.FailedCount)
}

// ProgressEvent is emitted once per processed file
type ProgressEvent struct {
	CurrentIndex    int
	TotalFiles      int
	SuccessfulSoFar int
	FailedSoFar     int
	CurrentFileName string
	Percentage      int
}

// ProgressObserver receives progress events synchronously from the batch loop.
type ProgressObserver func(ProgressEvent)

// ImageInfo describes an image file without decoding its pixels
type ImageInfo struct {
	Path      string `json:"path"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Format    string `json:"format"`
	SizeBytes int64  `json:"size_bytes"`
}
