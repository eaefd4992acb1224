package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// LLMClient is a single invocation of the generative model. Implementations
// never retry; every failure is returned as an *UpstreamError.
type LLMClient interface {
	GenerateContent(ctx context.Context, prompt string, temperature float64) (string, error)
	StreamContent(ctx context.Context, prompt string, temperature float64) ([]string, error)
}

// GeminiConfig configures the Gemini adapter
type GeminiConfig struct {
	APIKey         string
	Model          string
	AttemptTimeout time.Duration
	// BaseURL overrides the Gemini API endpoint
	BaseURL    string
	HTTPClient *http.Client
}

// GeminiClient implements LLMClient on top of the Gemini API
type GeminiClient struct {
	models  *genai.Models
	model   string
	timeout time.Duration
	logger  zerolog.Logger
}

var _ LLMClient = (*GeminiClient)(nil)

// NewGeminiClient creates a Gemini-backed LLMClient
func NewGeminiClient(ctx context.Context, cfg GeminiConfig, logger zerolog.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, &UpstreamError{Kind: KindClientUnavailable, Message: "GEMINI_API_KEY is not set"}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.BaseURL,
		},
	})
	if err != nil {
		return nil, &UpstreamError{Kind: KindClientUnavailable, Message: "failed to init Gemini client", Err: err}
	}

	logger.Info().Str("model", cfg.Model).Msg("Gemini client initialized")
	return &GeminiClient{
		models:  client.Models,
		model:   cfg.Model,
		timeout: cfg.AttemptTimeout,
		logger:  logger.With().Str("component", "gemini").Logger(),
	}, nil
}

// recipeSchema is the structured-output schema sent with every request
var recipeSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":       {Type: genai.TypeString},
		"description": {Type: genai.TypeString},
		"prepTime":    {Type: genai.TypeString},
		"cookTime":    {Type: genai.TypeString},
		"servings":    {Type: genai.TypeString},
		"ingredientsUsed": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":     {Type: genai.TypeString},
					"quantity": {Type: genai.TypeString},
					"unit":     {Type: genai.TypeString},
				},
				Required: []string{"name", "quantity", "unit"},
			},
		},
		"instructions": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"notes": {Type: genai.TypeString, Nullable: genai.Ptr(true)},
	},
	Required:         []string{"title", "description", "prepTime", "cookTime", "servings", "ingredientsUsed", "instructions"},
	PropertyOrdering: []string{"title", "description", "prepTime", "cookTime", "servings", "ingredientsUsed", "instructions", "notes"},
}

func (c *GeminiClient) config(temperature float64) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   recipeSchema,
		Temperature:      genai.Ptr(float32(temperature)),
	}
}

func (c *GeminiClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// GenerateContent runs one model call and returns its raw text
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, temperature float64) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), c.config(temperature))
	if err != nil {
		ue := ClassifyGeminiError(err)
		c.logger.Error().Err(err).Str("kind", string(ue.Kind)).Int("status", ue.StatusCode).Msg("gemini call failed")
		return "", ue
	}
	if ue := safetyBlock(resp); ue != nil {
		c.logger.Warn().Str("kind", string(ue.Kind)).Msg(ue.Message)
		return "", ue
	}
	return resp.Text(), nil
}

// StreamContent runs one streaming model call and collects its text chunks
func (c *GeminiClient) StreamContent(ctx context.Context, prompt string, temperature float64) ([]string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var chunks []string
	for part, err := range c.models.GenerateContentStream(ctx, c.model, genai.Text(prompt), c.config(temperature)) {
		if err != nil {
			ue := ClassifyGeminiError(err)
			c.logger.Error().Err(err).Str("kind", string(ue.Kind)).Msg("gemini stream failed")
			return nil, ue
		}
		if ue := safetyBlock(part); ue != nil {
			return nil, ue
		}
		if text := part.Text(); text != "" {
			chunks = append(chunks, text)
		}
	}
	return chunks, nil
}

func safetyBlock(resp *genai.GenerateContentResponse) *UpstreamError {
	if resp == nil {
		return nil
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return &UpstreamError{Kind: KindSafetyBlocked, Message: fmt.Sprintf("prompt blocked: %s", fb.BlockReason)}
	}
	for _, cand := range resp.Candidates {
		if cand != nil && cand.FinishReason == genai.FinishReasonSafety {
			return &UpstreamError{Kind: KindSafetyBlocked, Message: "candidate blocked by safety filters"}
		}
	}
	return nil
}

// ClassifyGeminiError maps an SDK or transport error onto an UpstreamError
func ClassifyGeminiError(err error) *UpstreamError {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &UpstreamError{Kind: KindConnectivity, Message: "attempt timed out", Err: err}
	}

	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		return classifyAPIError(apiErr, err)
	case errors.As(err, &apiErrPtr) && apiErrPtr != nil:
		return classifyAPIError(*apiErrPtr, err)
	}

	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return &UpstreamError{Kind: KindConnectivity, Message: "cannot reach Gemini", Err: err}
	}

	return &UpstreamError{Kind: KindUnclassified, Message: "unclassified", Err: err}
}

func classifyAPIError(apiErr genai.APIError, err error) *UpstreamError {
	ue := &UpstreamError{StatusCode: apiErr.Code, Message: apiErr.Message, Err: err}
	switch {
	case apiErr.Code == http.StatusUnauthorized || apiErr.Status == "UNAUTHENTICATED":
		ue.Kind = KindAuth
	case apiErr.Code == http.StatusBadRequest && strings.Contains(strings.ToLower(apiErr.Message), "api key"):
		ue.Kind = KindAuth
	case apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED":
		ue.Kind = KindRateLimited
	case apiErr.Code == http.StatusForbidden || apiErr.Status == "PERMISSION_DENIED":
		ue.Kind = KindPermissionDenied
	case apiErr.Code == http.StatusNotFound || apiErr.Status == "NOT_FOUND":
		ue.Kind = KindNotFound
	case apiErr.Code == http.StatusBadRequest || apiErr.Status == "INVALID_ARGUMENT":
		ue.Kind = KindInvalidRequest
	default:
		ue.Kind = KindUnclassified
	}
	return ue
}
