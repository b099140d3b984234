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

	"github.com/cookingwith/core/internal/infrastructure/config"
	"github.com/cookingwith/core/internal/ports/outbound"
)

// OCRClient implements outbound.TextExtractor against the OCR service.
// The image reference is whatever the upload layer produced: a storage
// key or a data URL, opaque to this client.
type OCRClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewOCRClient creates a new OCR client
func NewOCRClient(cfg *config.Config, logger *zap.Logger) outbound.TextExtractor {
	timeout := cfg.Extractor.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &OCRClient{
		baseURL: cfg.Extractor.OCRURL,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger.Named("ocr-client"),
	}
}

type ocrRequest struct {
	Image string `json:"image"`
}

type ocrResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// ExtractText runs OCR on the referenced image and returns the raw text
func (c *OCRClient) ExtractText(ctx context.Context, imageRef string) (string, error) {
	body, err := json.Marshal(ocrRequest{Image: imageRef})
	if err != nil {
		return "", fmt.Errorf("failed to marshal ocr request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ocr", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create ocr request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr service unreachable: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read ocr response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ocr service returned status %d: %s", resp.StatusCode, string(data))
	}

	var parsed ocrResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode ocr response: %w", err)
	}
	if parsed.Error != "" {
		return "", fmt.Errorf("ocr failed: %s", parsed.Error)
	}

	c.logger.Debug("Image text extracted",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("chars", len(parsed.Text)))

	return parsed.Text, nil
}
