package gallery

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"imagechart/internal/entity"
	"imagechart/internal/pkg/compressor"
)

const defaultUploadTimeout = 60 * time.Second

// FailureKind classifies why a submission did not complete. The
// pipeline never retries; each kind maps to a distinct user message.
type FailureKind int

const (
	FailureTimeout FailureKind = iota
	FailureServer
	FailureNetwork
	FailureUnexpected
)

// UploadError wraps a failed submission with its classification and a
// message suitable for direct display.
type UploadError struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (e *UploadError) Error() string { return e.Message }
func (e *UploadError) Unwrap() error { return e.Err }

// UploadPipeline turns the staging area into a single batch submission:
// compress what is oversized, send everything in one request, report
// monotone progress, and on success clear the staging area and trigger
// a data reload.
type UploadPipeline struct {
	api        API
	staging    *StagingArea
	compressor compressor.ImageCompressor
	timeout    time.Duration
	onProgress func(percent int)
	onReload   func()
}

type UploadOption func(*UploadPipeline)

func WithTimeout(d time.Duration) UploadOption {
	return func(p *UploadPipeline) { p.timeout = d }
}

func WithProgress(fn func(percent int)) UploadOption {
	return func(p *UploadPipeline) { p.onProgress = fn }
}

func WithReload(fn func()) UploadOption {
	return func(p *UploadPipeline) { p.onReload = fn }
}

func WithCompressor(c compressor.ImageCompressor) UploadOption {
	return func(p *UploadPipeline) { p.compressor = c }
}

func NewUploadPipeline(api API, staging *StagingArea, opts ...UploadOption) *UploadPipeline {
	p := &UploadPipeline{
		api:        api,
		staging:    staging,
		compressor: compressor.NewImageCompressor(compressor.DefaultThreshold, compressor.DefaultMaxWidth, compressor.DefaultQuality),
		timeout:    defaultUploadTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Submit sends every staged file in one batch. Metadata is read at call
// time, so edits made after staging are honored. On any failure the
// staging area is left intact for a manual retry.
func (p *UploadPipeline) Submit(ctx context.Context) ([]*entity.ImageEntry, error) {
	staged := p.staging.Files()
	if len(staged) == 0 {
		return nil, entity.ErrNothingStaged
	}

	batch := UploadBatch{Files: make([]UploadRecord, len(staged))}
	for i, f := range staged {
		data, mimeType := p.compressor.Compress(f.Data, f.MimeType)
		batch.Files[i] = UploadRecord{
			Name:        f.Name,
			MimeType:    mimeType,
			Data:        data,
			Description: f.Description,
			Theme:       f.Theme,
			CategoryID:  f.CategoryID,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	created, err := p.api.UploadBatch(ctx, batch, p.monotoneProgress())
	if err != nil {
		return nil, classifyUploadError(err)
	}

	p.staging.Clear()
	if p.onReload != nil {
		p.onReload()
	}
	return created, nil
}

// monotoneProgress clamps reported percentages to [0,100] and never lets
// the value move backwards, whatever the transport reports.
func (p *UploadPipeline) monotoneProgress() func(int) {
	if p.onProgress == nil {
		return nil
	}
	last := -1
	return func(percent int) {
		if percent < 0 {
			percent = 0
		}
		if percent > 100 {
			percent = 100
		}
		if percent <= last {
			return
		}
		last = percent
		p.onProgress(percent)
	}
}

func classifyUploadError(err error) *UploadError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &UploadError{
			Kind:    FailureTimeout,
			Message: "upload timed out, try again with fewer or smaller files",
			Err:     err,
		}
	}

	var apiErr *entity.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = "the server rejected the upload"
		}
		return &UploadError{Kind: FailureServer, Message: msg, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &UploadError{
			Kind:    FailureTimeout,
			Message: "upload timed out, try again with fewer or smaller files",
			Err:     err,
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &UploadError{
			Kind:    FailureNetwork,
			Message: "could not reach the server, check your connection",
			Err:     err,
		}
	}

	return &UploadError{
		Kind:    FailureUnexpected,
		Message: fmt.Sprintf("upload failed: %v", err),
		Err:     err,
	}
}
