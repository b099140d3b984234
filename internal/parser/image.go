package parser

import (
	"context"

	"github.com/cookingwith/core/internal/domain/importing"
	"github.com/cookingwith/core/internal/ports/outbound"
	"github.com/cookingwith/core/pkg/errors"
	"go.uber.org/zap"
)

// imageConfidence is lower than text because OCR output is noisier
const imageConfidence = 0.6

// ImageParser runs OCR on an image reference and then applies the same
// structural heuristics as the text parser. An unreadable image is a
// hard parse error.
type ImageParser struct {
	ocr    outbound.TextExtractor
	logger *zap.Logger
}

// NewImageParser creates an image parser over the OCR boundary
func NewImageParser(ocr outbound.TextExtractor, logger *zap.Logger) *ImageParser {
	return &ImageParser{
		ocr:    ocr,
		logger: logger.Named("image-parser"),
	}
}

// Parse extracts text from the image and segments it into a recipe
func (p *ImageParser) Parse(ctx context.Context, imageRef string) (*importing.ParsedRecipe, error) {
	if imageRef == "" {
		return nil, errors.NewParseError(string(importing.MethodImage), nil)
	}

	text, err := p.ocr.ExtractText(ctx, imageRef)
	if err != nil {
		return nil, errors.NewParseError(string(importing.MethodImage), err)
	}

	seg := segment(text)
	parsed := seg.toParsedRecipe(imageConfidence)

	p.logger.Debug("parsed recipe from image text",
		zap.String("title", parsed.Title),
		zap.Int("ocr_chars", len(text)),
	)

	return parsed, nil
}
