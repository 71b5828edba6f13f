// Package ocr extracts text from book page images through an external
// recognition capability.
package ocr

import (
	"context"
	"errors"
	"net/http"

	mapset "github.com/deckarep/golang-set/v2"
)

// MaxImageSize bounds uploaded page images.
const MaxImageSize = 10 * 1024 * 1024

var (
	// ErrInvalidImage is returned when the payload is not a supported image.
	ErrInvalidImage = errors.New("invalid or unsupported image")
	// ErrServiceUnavailable is returned when the provider fails or rejects the call.
	ErrServiceUnavailable = errors.New("ocr service unavailable")
	// ErrQuotaExceeded is returned when the provider rate limits the account.
	ErrQuotaExceeded = errors.New("ocr quota exceeded")
	// ErrTimeout is returned when the provider call exceeds its deadline.
	ErrTimeout = errors.New("ocr request timed out")
)

var allowedTypes = mapset.NewSet("image/jpeg", "image/png", "image/webp")

// Input is a single image submitted for text extraction.
type Input struct {
	Data        []byte
	ContentType string
}

// Client is the provider capability: one image in, extracted text out.
// Implementations classify failures onto the package sentinel errors.
type Client interface {
	Name() string
	ExtractText(ctx context.Context, in Input) (string, error)
}

// Validate checks the input against the supported formats and size bound
// before any provider is invoked.
func Validate(in Input) error {
	if len(in.Data) == 0 || len(in.Data) >= MaxImageSize {
		return ErrInvalidImage
	}

	contentType := in.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(in.Data)
	}

	if !allowedTypes.Contains(contentType) {
		return ErrInvalidImage
	}

	return nil
}
