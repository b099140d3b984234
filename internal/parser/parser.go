// Package parser converts raw import sources (webpage URL, image
// reference, free text) into canonical ParsedRecipe values. Each source
// kind has its own strategy behind a shared capability; all strategies
// normalize their output so ingredient and instruction slices are never
// nil.
package parser

import (
	"context"

	"github.com/cookingwith/core/internal/domain/importing"
	"github.com/cookingwith/core/pkg/errors"
)

// Parser turns one raw source into a canonical ParsedRecipe or fails
// with a parse error. Implementations never return partially
// initialized recipes.
type Parser interface {
	Parse(ctx context.Context, source string) (*importing.ParsedRecipe, error)
}

// Registry dispatches to the strategy registered for an import method
type Registry struct {
	parsers map[importing.ImportMethod]Parser
}

// NewRegistry builds a registry over the given strategies
func NewRegistry(webpage, image, text Parser) *Registry {
	return &Registry{
		parsers: map[importing.ImportMethod]Parser{
			importing.MethodWebpage: webpage,
			importing.MethodImage:   image,
			importing.MethodText:    text,
		},
	}
}

// Parse dispatches the source to the parser for the given method
func (r *Registry) Parse(ctx context.Context, method importing.ImportMethod, source string) (*importing.ParsedRecipe, error) {
	p, ok := r.parsers[method]
	if !ok {
		return nil, errors.NewUnsupportedImportError(string(method))
	}
	return p.Parse(ctx, source)
}
