package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractClient runs extraction through a local tesseract install.
// It needs no network or API key, at the cost of lower accuracy on
// photographed pages.
type TesseractClient struct {
	languages     []string
	clientFactory func() *gosseract.Client
}

// NewTesseractClient builds a tesseract-backed client with optional
// language hints (e.g. "eng", "deu").
func NewTesseractClient(languages ...string) *TesseractClient {
	return &TesseractClient{
		languages:     languages,
		clientFactory: gosseract.NewClient,
	}
}

func (t *TesseractClient) Name() string { return "tesseract" }

func (t *TesseractClient) ExtractText(ctx context.Context, in Input) (string, error) {
	if err := Validate(in); err != nil {
		return "", err
	}

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", ErrTimeout, ctx.Err())
	default:
	}

	c := t.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(in.Data); err != nil {
		return "", fmt.Errorf("%w: set image: %v", ErrInvalidImage, err)
	}

	if len(t.languages) > 0 {
		if err := c.SetLanguage(t.languages...); err != nil {
			return "", fmt.Errorf("%w: set languages: %v", ErrServiceUnavailable, err)
		}
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	return strings.TrimSpace(text), nil
}
