package parser

import (
	"context"
	"net/url"

	"github.com/cookingwith/core/internal/domain/importing"
	"github.com/cookingwith/core/internal/ports/outbound"
	"github.com/cookingwith/core/pkg/errors"
	"go.uber.org/zap"
)

// webpageConfidence is used for domains not present in the source table
const webpageConfidence = 0.75

// WebpageParser scrapes a recipe page through the page extractor
// boundary, consulting the lazily loaded table of known recipe sites to
// tune confidence. An unreachable page, or one with no recognizable
// recipe structure at all, is a hard parse error.
type WebpageParser struct {
	extractor outbound.PageExtractor
	sources   *SourceTable
	logger    *zap.Logger
}

// NewWebpageParser creates a webpage parser
func NewWebpageParser(extractor outbound.PageExtractor, sources *SourceTable, logger *zap.Logger) *WebpageParser {
	return &WebpageParser{
		extractor: extractor,
		sources:   sources,
		logger:    logger.Named("webpage-parser"),
	}
}

// Parse fetches and extracts a recipe from a URL
func (p *WebpageParser) Parse(ctx context.Context, sourceURL string) (*importing.ParsedRecipe, error) {
	u, err := url.Parse(sourceURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.NewParseError(string(importing.MethodWebpage), err)
	}

	parsed, err := p.extractor.Extract(ctx, sourceURL)
	if err != nil {
		return nil, errors.NewParseError(string(importing.MethodWebpage), err)
	}

	if len(parsed.Ingredients) == 0 && len(parsed.Instructions) == 0 {
		return nil, errors.NewParseError(string(importing.MethodWebpage), nil)
	}

	parsed.SourceURL = sourceURL
	if parsed.ConfidenceScore == 0 {
		parsed.ConfidenceScore = webpageConfidence
	}

	domain := importing.DomainOf(sourceURL)
	if rule, ok := p.sources.Lookup(domain); ok && rule.Confidence > 0 {
		parsed.ConfidenceScore = rule.Confidence
	}

	p.logger.Debug("parsed recipe from webpage",
		zap.String("domain", domain),
		zap.Float64("confidence", parsed.ConfidenceScore),
	)

	return parsed.Normalize(), nil
}
