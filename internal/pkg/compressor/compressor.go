package compressor

import (
	"bytes"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
)

const (
	DefaultThreshold = 500 * 1024
	DefaultMaxWidth  = 1200
	DefaultQuality   = 70
)

type ImageCompressor interface {
	Compress(data []byte, mimeType string) ([]byte, string)
}

type imageCompressor struct {
	threshold int64
	maxWidth  int
	quality   int
}

func NewImageCompressor(threshold int64, maxWidth, quality int) ImageCompressor {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &imageCompressor{threshold: threshold, maxWidth: maxWidth, quality: quality}
}

// Compress re-encodes an oversized image as JPEG, capping its width and
// preserving aspect ratio. Files at or below the threshold are returned
// as-is, and any decode or encode failure falls back to the original
// bytes: compression is never fatal to an upload.
func (c *imageCompressor) Compress(data []byte, mimeType string) ([]byte, string) {
	if int64(len(data)) <= c.threshold {
		return data, mimeType
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		logrus.Warnf("compression skipped, decode failed: %v", err)
		return data, mimeType
	}

	if img.Bounds().Dx() > c.maxWidth {
		// Height 0 keeps the aspect ratio.
		img = imaging.Resize(img, c.maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(c.quality)); err != nil {
		logrus.Warnf("compression skipped, encode failed: %v", err)
		return data, mimeType
	}

	// Keep the original when re-encoding did not actually help.
	if buf.Len() >= len(data) {
		return data, mimeType
	}

	return buf.Bytes(), "image/jpeg"
}
