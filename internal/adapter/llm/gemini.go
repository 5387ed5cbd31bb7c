// Package llm asks a Gemini model for the SEO analysis of a crawl.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/user/seo-report/internal/entity"
)

// ErrNotConfigured is returned by an analyst without an API key.
var ErrNotConfigured = errors.New("analyst is not configured: set GEMINI_API_KEY")

const apiVersion = "v1beta"

// Gemini implements repository.AnalystRepository over the generateContent API.
type Gemini struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGemini builds the analyst. An empty apiKey yields an analyst whose every
// call fails with ErrNotConfigured.
func NewGemini(ctx context.Context, endpoint, model, apiKey string, httpClient *http.Client, logger *zap.Logger) (*Gemini, error) {
	g := &Gemini{model: model, logger: logger}
	if apiKey == "" {
		return g, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    endpoint,
			APIVersion: apiVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	g.client = client
	return g, nil
}

// Analyze sends the crawl to the model and returns the analysis document.
func (g *Gemini) Analyze(ctx context.Context, data *entity.CrawlData) ([]byte, error) {
	if g.client == nil {
		return nil, ErrNotConfigured
	}

	prompt, err := BuildPrompt(data)
	if err != nil {
		return nil, err
	}
	reply, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	doc, err := ParseAnalysis(reply)
	if err != nil {
		return nil, &entity.AppError{Kind: entity.ParsingFailed, Message: "analyst returned invalid JSON format", Cause: err}
	}
	if err := CheckSchema(doc); err != nil {
		g.logger.Warn("analyst reply deviates from schema", zap.String("url", data.URL), zap.Error(err))
	}
	return doc, nil
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.7),
	})
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Candidates) == 0 {
		return "", &entity.AppError{Kind: entity.ParsingFailed, Message: "analyst returned no candidates"}
	}
	return resp.Text(), nil
}

func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &entity.AppError{Kind: entity.Unknown, UpstreamStatus: apiErr.Code, Message: "analyst request failed: " + apiErr.Message, Cause: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &entity.AppError{Kind: entity.Unknown, UpstreamStatus: apiErrPtr.Code, Message: "analyst request failed: " + apiErrPtr.Message, Cause: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &entity.AppError{Kind: entity.Timeout, Message: "analyst timed out", Cause: err}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &entity.AppError{Kind: entity.Unreachable, Message: "could not reach analyst", Cause: err}
	}
	return &entity.AppError{Kind: entity.ParsingFailed, Message: "analyst response is not valid", Cause: err}
}
