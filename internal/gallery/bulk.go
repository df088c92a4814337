package gallery

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"imagechart/internal/entity"
)

// ErrDeclined is returned when the user does not confirm a destructive
// bulk action; nothing was sent to the server.
var ErrDeclined = errors.New("bulk action declined")

const (
	defaultStagger     = 300 * time.Millisecond
	defaultArchiveName = "images.zip"
)

// BulkResult counts the per-item outcomes of a bulk delete.
type BulkResult struct {
	Succeeded int
	Failed    int
}

func (r BulkResult) Summary() string {
	return fmt.Sprintf("%d deleted, %d failed", r.Succeeded, r.Failed)
}

// BulkCoordinator runs delete and download over the current selection.
// Both operations are terminal: afterwards the selection is expected to
// be cleared by the caller's reload.
type BulkCoordinator struct {
	api       API
	confirm   func(count int) bool
	save      func(name string, data []byte) error
	archive   func(files []entity.ImageFile) ([]byte, error)
	onReload  func()
	onMessage func(string)
	stagger   time.Duration
}

type BulkOption func(*BulkCoordinator)

func WithConfirm(fn func(count int) bool) BulkOption {
	return func(c *BulkCoordinator) { c.confirm = fn }
}

func WithBulkReload(fn func()) BulkOption {
	return func(c *BulkCoordinator) { c.onReload = fn }
}

func WithBulkMessages(fn func(string)) BulkOption {
	return func(c *BulkCoordinator) { c.onMessage = fn }
}

func WithStagger(d time.Duration) BulkOption {
	return func(c *BulkCoordinator) { c.stagger = d }
}

func WithArchiver(fn func(files []entity.ImageFile) ([]byte, error)) BulkOption {
	return func(c *BulkCoordinator) { c.archive = fn }
}

// NewBulkCoordinator wires the coordinator; save receives every produced
// artifact (the archive, or individual files on fallback).
func NewBulkCoordinator(api API, save func(name string, data []byte) error, opts ...BulkOption) *BulkCoordinator {
	c := &BulkCoordinator{
		api:     api,
		save:    save,
		archive: zipArchive,
		stagger: defaultStagger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BulkDelete removes every selected image after a single confirmation
// naming the count. Deletes run concurrently; one failure does not stop
// the others. The grid is reloaded when at least one delete succeeded.
func (c *BulkCoordinator) BulkDelete(ctx context.Context, ids []string) (BulkResult, error) {
	if len(ids) == 0 {
		return BulkResult{}, entity.ErrEmptySelection
	}
	if c.confirm != nil && !c.confirm(len(ids)) {
		return BulkResult{}, ErrDeclined
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		result BulkResult
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			err := c.api.DeleteImage(ctx, id)
			mu.Lock()
			if err != nil {
				result.Failed++
			} else {
				result.Succeeded++
			}
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	if c.onMessage != nil {
		if result.Succeeded == 0 {
			c.onMessage(fmt.Sprintf("failed to delete %d image(s)", result.Failed))
		} else {
			c.onMessage(result.Summary())
		}
	}
	if result.Succeeded > 0 && c.onReload != nil {
		c.onReload()
	}
	return result, nil
}

// BulkDownload fetches every selected image and hands the user a single
// archive. If building the archive fails, it falls back to saving the
// files one by one with a short pause between them.
func (c *BulkCoordinator) BulkDownload(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return entity.ErrEmptySelection
	}

	files, err := c.api.BulkFetchImages(ctx, ids)
	if err != nil {
		return fmt.Errorf("fetch images for download: %w", err)
	}
	if len(files) == 0 {
		return entity.ErrImageNotFound
	}

	data, err := c.archive(files)
	if err == nil {
		return c.save(defaultArchiveName, data)
	}

	if c.onMessage != nil {
		c.onMessage("could not build archive, downloading files individually")
	}
	for i, f := range files {
		if saveErr := c.save(downloadName(f), f.Data); saveErr != nil {
			return saveErr
		}
		if i < len(files)-1 {
			select {
			case <-time.After(c.stagger):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

func downloadName(f entity.ImageFile) string {
	if f.Name != "" {
		return f.Name
	}
	return f.ID
}

// zipArchive packs the files into a zip, deduplicating colliding names.
func zipArchive(files []entity.ImageFile) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	seen := make(map[string]int)
	for _, f := range files {
		name := downloadName(f)
		if n := seen[name]; n > 0 {
			name = fmt.Sprintf("%d_%s", n, name)
		}
		seen[downloadName(f)]++
		w, err := zw.Create(name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(f.Data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
