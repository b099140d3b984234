// Package extract provides HTTP clients for the external extraction
// services used by the import parsers: a webpage recipe extractor and
// an OCR service for photos.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/cookingwith/core/internal/domain/importing"
	"github.com/cookingwith/core/internal/infrastructure/config"
	"github.com/cookingwith/core/internal/ports/outbound"
)

// WebpageClient implements outbound.PageExtractor against the structured
// extraction service
type WebpageClient struct {
	baseURL   string
	userAgent string
	client    *http.Client
	logger    *zap.Logger
}

// NewWebpageClient creates a new webpage extraction client
func NewWebpageClient(cfg *config.Config, logger *zap.Logger) outbound.PageExtractor {
	timeout := cfg.Extractor.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &WebpageClient{
		baseURL:   cfg.Extractor.WebpageURL,
		userAgent: cfg.Extractor.UserAgent,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger.Named("webpage-extractor"),
	}
}

type extractRequest struct {
	URL       string `json:"url"`
	UserAgent string `json:"user_agent,omitempty"`
}

type extractResponse struct {
	Recipe *importing.ParsedRecipe `json:"recipe"`
	Error  string                  `json:"error,omitempty"`
}

// Extract sends the URL to the extraction service and returns the
// structured recipe it found
func (c *WebpageClient) Extract(ctx context.Context, url string) (*importing.ParsedRecipe, error) {
	body, err := json.Marshal(extractRequest{URL: url, UserAgent: c.userAgent})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal extract request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create extract request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extraction service unreachable: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read extract response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("extraction service returned status %d: %s", resp.StatusCode, string(data))
	}

	var parsed extractResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode extract response: %w", err)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("extraction failed: %s", parsed.Error)
	}
	if parsed.Recipe == nil {
		return nil, fmt.Errorf("extraction returned no recipe")
	}

	c.logger.Debug("Webpage extracted",
		zap.String("url", url),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("ingredients", len(parsed.Recipe.Ingredients)),
		zap.Int("instructions", len(parsed.Recipe.Instructions)))

	return parsed.Recipe, nil
}
