package vision

import (
	"context"
	"errors"
)

var (
	// ErrExtractionFailed wraps any failure to pull text out of an image.
	ErrExtractionFailed = errors.New("text extraction failed")
	// ErrNotConfigured is returned when no extraction backend is set up.
	ErrNotConfigured = errors.New("vision client not configured")
)

// Client extracts printed text from a page image.
type Client interface {
	Extract(ctx context.Context, image []byte, mimeType string) (string, error)
}

// Placeholder is used when no API key is configured. Every call fails,
// which surfaces the misconfiguration instead of silently storing empty
// OCR text.
type Placeholder struct{}

func (Placeholder) Extract(ctx context.Context, image []byte, mimeType string) (string, error) {
	return "", ErrNotConfigured
}

var _ Client = Placeholder{}
