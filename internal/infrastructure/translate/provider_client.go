// Package translate provides the HTTP client for the hosted translation
// provider used by the translation processor.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/cookingwith/core/internal/infrastructure/config"
	"github.com/cookingwith/core/internal/ports/outbound"
)

// ProviderClient implements outbound.TranslationProvider against a
// hosted translation API with batch and single-text endpoints
type ProviderClient struct {
	baseURL  string
	apiKey   string
	provider string
	client   *http.Client
	logger   *zap.Logger
}

// NewProviderClient creates a new translation provider client
func NewProviderClient(cfg *config.Config, logger *zap.Logger) outbound.TranslationProvider {
	timeout := cfg.Translator.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &ProviderClient{
		baseURL:  cfg.Translator.BaseURL,
		apiKey:   cfg.Translator.APIKey,
		provider: cfg.Translator.Provider,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger.Named("translation-provider"),
	}
}

type batchRequest struct {
	Texts          []string `json:"texts"`
	TargetLanguage string   `json:"target_language"`
	SourceLanguage string   `json:"source_language"`
}

type batchResponse struct {
	Translations []string `json:"translations"`
	Error        string   `json:"error,omitempty"`
}

type singleRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
	SourceLanguage string `json:"source_language"`
}

type singleResponse struct {
	Translation string `json:"translation"`
	Error       string `json:"error,omitempty"`
}

// Name returns the configured provider name recorded on translation rows
func (c *ProviderClient) Name() string {
	return c.provider
}

// TranslateBatch translates all texts in one round trip. The provider
// guarantees one result per input in the same order; a short response
// is surfaced as an error so the caller can fall back.
func (c *ProviderClient) TranslateBatch(ctx context.Context, texts []string, targetLanguage, sourceLanguage string) ([]string, error) {
	var out batchResponse
	err := c.post(ctx, "/translate/batch", batchRequest{
		Texts:          texts,
		TargetLanguage: targetLanguage,
		SourceLanguage: sourceLanguage,
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Error != "" {
		return nil, fmt.Errorf("batch translation failed: %s", out.Error)
	}
	if len(out.Translations) != len(texts) {
		return nil, fmt.Errorf("batch translation returned %d results for %d inputs", len(out.Translations), len(texts))
	}
	return out.Translations, nil
}

// TranslateOne translates a single text
func (c *ProviderClient) TranslateOne(ctx context.Context, text, targetLanguage, sourceLanguage string) (string, error) {
	var out singleResponse
	err := c.post(ctx, "/translate", singleRequest{
		Text:           text,
		TargetLanguage: targetLanguage,
		SourceLanguage: sourceLanguage,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.Error != "" {
		return "", fmt.Errorf("translation failed: %s", out.Error)
	}
	return out.Translation, nil
}

func (c *ProviderClient) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal translation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create translation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("translation service unreachable: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read translation response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("translation service returned status %d: %s", resp.StatusCode, string(data))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode translation response: %w", err)
	}

	c.logger.Debug("Translation request completed",
		zap.String("path", path),
		zap.Duration("elapsed", time.Since(start)))

	return nil
}
