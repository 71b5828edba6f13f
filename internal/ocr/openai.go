package ocr

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sirupsen/logrus"
)

const extractionPrompt = `Extract and transcribe all the text from this book page image.
Maintain the paragraph structure. If there are headings, format them as markdown headings.
Only return the extracted text, no additional commentary.`

// OpenAIClient extracts text by sending the page image to a vision chat
// completion model.
type OpenAIClient struct {
	model string
	opts  []option.RequestOption
}

// NewOpenAIClient builds the client from an API key and optional base URL
// override. The model defaults to gpt-4o-mini when empty.
func NewOpenAIClient(apiKey, baseURL, model string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key missing")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIClient{model: model, opts: opts}, nil
}

func (o *OpenAIClient) Name() string { return "openai" }

func (o *OpenAIClient) ExtractText(ctx context.Context, in Input) (string, error) {
	if err := Validate(in); err != nil {
		return "", err
	}

	client := openai.NewClient(o.opts...)

	contentType := in.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(in.Data)
	}

	dataURI := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(in.Data))
	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(extractionPrompt),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: dataURI}),
	}

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(parts)},
	})
	if err != nil {
		return "", classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ErrServiceUnavailable)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func classifyOpenAIError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	var apierr *openai.Error
	if errors.As(err, &apierr) {
		logrus.Warnf("openai ocr call failed with status %d", apierr.StatusCode)
		return fmt.Errorf("%w: status %d", classifyStatus(apierr.StatusCode), apierr.StatusCode)
	}

	return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
}

func classifyStatus(status int) error {
	switch status {
	case 429:
		return ErrQuotaExceeded
	case 400, 413, 415:
		return ErrInvalidImage
	case 408, 504:
		return ErrTimeout
	default:
		return ErrServiceUnavailable
	}
}
