package parser

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cookingwith/core/internal/domain/importing"
	"github.com/cookingwith/core/pkg/errors"
	"go.uber.org/zap"
)

// textConfidence is the base confidence for heuristic free-text parses
const textConfidence = 0.7

// TextParser handles free-text blobs and JSON-encoded recipes. JSON
// input that already matches the ParsedRecipe shape short-circuits the
// heuristics and is treated as already parsed.
type TextParser struct {
	logger *zap.Logger
}

// NewTextParser creates a text parser
func NewTextParser(logger *zap.Logger) *TextParser {
	return &TextParser{logger: logger.Named("text-parser")}
}

// Parse converts a text blob into a ParsedRecipe
func (p *TextParser) Parse(ctx context.Context, source string) (*importing.ParsedRecipe, error) {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return nil, errors.NewParseError(string(importing.MethodText), nil)
	}

	if parsed, ok := p.tryJSON(trimmed); ok {
		return parsed, nil
	}

	seg := segment(trimmed)
	parsed := seg.toParsedRecipe(textConfidence)

	p.logger.Debug("parsed free-text recipe",
		zap.String("title", parsed.Title),
		zap.Int("ingredients", len(parsed.Ingredients)),
		zap.Int("instructions", len(parsed.Instructions)),
	)

	return parsed, nil
}

// tryJSON detects structured input by checking for the required list
// fields and short-circuits if present, assigning the default
// confidence unless the caller supplied one
func (p *TextParser) tryJSON(source string) (*importing.ParsedRecipe, bool) {
	if !strings.HasPrefix(source, "{") {
		return nil, false
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(source), &keys); err != nil {
		return nil, false
	}
	if _, ok := keys["ingredients"]; !ok {
		return nil, false
	}
	if _, ok := keys["instructions"]; !ok {
		return nil, false
	}

	var parsed importing.ParsedRecipe
	if err := json.Unmarshal([]byte(source), &parsed); err != nil {
		p.logger.Debug("recipe-shaped JSON failed to decode, falling back to heuristics", zap.Error(err))
		return nil, false
	}

	if parsed.ConfidenceScore == 0 {
		parsed.ConfidenceScore = importing.DefaultConfidence
	}

	return parsed.Normalize(), true
}
