package parser

import (
	"encoding/json"
	"os"
	"sync"

	"go.uber.org/zap"
)

// SourceRule holds per-site extraction hints for a known recipe domain.
// The table is extensible: adding a domain entry tunes how much the
// webpage parser trusts that site's extraction.
type SourceRule struct {
	Domain          string  `json:"domain"`
	Confidence      float64 `json:"confidence"`
	StructuredData  bool    `json:"structured_data"`
	IngredientHint  string  `json:"ingredient_hint,omitempty"`
	InstructionHint string  `json:"instruction_hint,omitempty"`
}

// defaultSourceRules ships with the binary; a rules file can extend or
// override it. The loaded table is immutable after first use.
var defaultSourceRules = []SourceRule{
	{Domain: "allrecipes.com", Confidence: 0.95, StructuredData: true},
	{Domain: "foodnetwork.com", Confidence: 0.95, StructuredData: true},
	{Domain: "seriouseats.com", Confidence: 0.95, StructuredData: true},
	{Domain: "bbcgoodfood.com", Confidence: 0.9, StructuredData: true},
	{Domain: "bonappetit.com", Confidence: 0.9, StructuredData: true},
	{Domain: "epicurious.com", Confidence: 0.9, StructuredData: true},
	{Domain: "simplyrecipes.com", Confidence: 0.9, StructuredData: true},
	{Domain: "cooking.nytimes.com", Confidence: 0.9, StructuredData: true},
}

// SourceTable is the lazily loaded, read-only table of known recipe
// sites. Load failure is not fatal: lookups then fall back to default
// extraction behavior.
type SourceTable struct {
	path   string
	logger *zap.Logger

	once  sync.Once
	rules map[string]SourceRule
}

// NewSourceTable creates a table that loads before first use. An empty
// path means built-in defaults only.
func NewSourceTable(path string, logger *zap.Logger) *SourceTable {
	return &SourceTable{
		path:   path,
		logger: logger.Named("import-sources"),
	}
}

// Lookup returns the rule for a domain, loading the table on first call
func (t *SourceTable) Lookup(domain string) (SourceRule, bool) {
	t.once.Do(t.load)
	rule, ok := t.rules[domain]
	return rule, ok
}

func (t *SourceTable) load() {
	rules := make(map[string]SourceRule, len(defaultSourceRules))
	for _, r := range defaultSourceRules {
		rules[r.Domain] = r
	}

	if t.path != "" {
		data, err := os.ReadFile(t.path)
		if err != nil {
			t.logger.Warn("import source rules unavailable, using defaults",
				zap.String("path", t.path),
				zap.Error(err),
			)
		} else {
			var extra []SourceRule
			if err := json.Unmarshal(data, &extra); err != nil {
				t.logger.Warn("import source rules malformed, using defaults",
					zap.String("path", t.path),
					zap.Error(err),
				)
			} else {
				for _, r := range extra {
					rules[r.Domain] = r
				}
			}
		}
	}

	t.rules = rules
	t.logger.Info("import source table loaded", zap.Int("domains", len(rules)))
}
