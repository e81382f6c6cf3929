package classifier

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"google.golang.org/genai"

	"ecoscan/internal/common"
)

// Retry policy for classifier calls: the first attempt plus two retries
// with exponential backoff starting at half a second.
const (
	maxRetries       = 2
	retryBackoffBase = 500 * time.Millisecond
)

// Gemini talks to the Gemini API via the genai SDK. The image travels
// inline with the prompt; no server-side file upload step is needed.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGemini creates a Gemini classifier for the given model. The timeout
// bounds every individual remote attempt.
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Gemini{client: client, model: model, timeout: timeout}, nil
}

// Classify sends the image and prompt to the model and returns the raw text
// reply. Transient failures are retried with backoff; exhaustion or timeout
// surfaces as common.ErrorRemoteService.
func (g *Gemini) Classify(ctx context.Context, image Image, prompt string) (string, error) {
	mime := image.MIMEType
	if mime == "" {
		mime = "image/jpeg"
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image.Data, mime),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}

	var text string
	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(retryBackoffBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		resp, err := g.client.Models.GenerateContent(callCtx, g.model, contents, nil)
		if err != nil {
			return retry.RetryableError(err)
		}

		text = resp.Text()
		if text == "" {
			return retry.RetryableError(fmt.Errorf("empty model response"))
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorRemoteService, err)
	}

	return text, nil
}
