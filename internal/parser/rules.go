package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cookingwith/core/internal/domain/importing"
)

// The free-text segmenter is a small pipeline of named rules applied in
// priority order. Each rule either claims a line as a section header or
// passes it on; unclaimed lines fall through to the section currently
// open, with a default rule routing leading prose into title and
// description.

type section int

const (
	sectionNone section = iota
	sectionIngredients
	sectionInstructions
	sectionTips
)

// sectionRule detects a section header line
type sectionRule struct {
	name    string
	pattern *regexp.Regexp
	section section
}

// Ordered by priority; first match wins.
var sectionRules = []sectionRule{
	{"ingredients-header", regexp.MustCompile(`(?i)^\s*ingredients?\s*:?\s*$`), sectionIngredients},
	{"instructions-header", regexp.MustCompile(`(?i)^\s*(?:instructions?|directions?|steps|method|preparation)\s*:?\s*$`), sectionInstructions},
	{"tips-header", regexp.MustCompile(`(?i)^\s*(?:tips|notes|hints)\s*:?\s*$`), sectionTips},
}

var (
	titleLineRe    = regexp.MustCompile(`(?i)^\s*(?:title|recipe)\s*:\s*(.+)$`)
	listMarkerRe   = regexp.MustCompile(`^\s*(?:[-*•]|\d+\s*[.)])\s*`)
	stepMarkerRe   = regexp.MustCompile(`(?i)^\s*step\s+\d+\s*[:.]?\s*`)
	servingsRe     = regexp.MustCompile(`(?i)^\s*(?:servings?|serves|yield)\s*:?\s*(\d+)`)
	prepTimeRe     = regexp.MustCompile(`(?i)^\s*prep(?:aration)?\s*time\s*:?\s*(\d+)`)
	cookTimeRe     = regexp.MustCompile(`(?i)^\s*cook(?:ing)?\s*time\s*:?\s*(\d+)`)
	difficultyRe   = regexp.MustCompile(`(?i)^\s*difficulty\s*:?\s*(easy|medium|hard)`)
	amountLeadRe   = regexp.MustCompile(`^(\d+(?:\s+\d+/\d+|/\d+|\.\d+)?)\s+(.*)$`)
	parentheticalRe = regexp.MustCompile(`\(([^)]*)\)`)
)

// known measurement units for ingredient lines; anything else is
// treated as part of the name
var knownUnits = map[string]string{
	"cup": "cup", "cups": "cup",
	"tbsp": "tbsp", "tablespoon": "tbsp", "tablespoons": "tbsp",
	"tsp": "tsp", "teaspoon": "tsp", "teaspoons": "tsp",
	"g": "g", "gram": "g", "grams": "g",
	"kg": "kg", "ml": "ml", "l": "l",
	"oz": "oz", "ounce": "oz", "ounces": "oz",
	"lb": "lb", "lbs": "lb", "pound": "lb", "pounds": "lb",
	"clove": "clove", "cloves": "clove",
	"slice": "slice", "slices": "slice",
	"piece": "piece", "pieces": "piece",
	"pinch": "pinch", "dash": "dash",
}

// segments is the intermediate result of running the rule pipeline
type segments struct {
	title        string
	description  []string
	ingredients  []string
	instructions []string
	tips         []string
	servings     int
	prepMinutes  int
	cookMinutes  int
	difficulty   string
}

// segment runs the rule pipeline over raw text
func segment(text string) segments {
	var seg segments
	current := sectionNone

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if m := titleLineRe.FindStringSubmatch(line); m != nil {
			seg.title = strings.TrimSpace(m[1])
			continue
		}
		if m := servingsRe.FindStringSubmatch(line); m != nil {
			seg.servings, _ = strconv.Atoi(m[1])
			continue
		}
		if m := prepTimeRe.FindStringSubmatch(line); m != nil {
			seg.prepMinutes, _ = strconv.Atoi(m[1])
			continue
		}
		if m := cookTimeRe.FindStringSubmatch(line); m != nil {
			seg.cookMinutes, _ = strconv.Atoi(m[1])
			continue
		}
		if m := difficultyRe.FindStringSubmatch(line); m != nil {
			seg.difficulty = strings.ToLower(m[1])
			continue
		}

		matched := false
		for _, rule := range sectionRules {
			if rule.pattern.MatchString(line) {
				current = rule.section
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		switch current {
		case sectionIngredients:
			seg.ingredients = append(seg.ingredients, stripMarker(line))
		case sectionInstructions:
			seg.instructions = append(seg.instructions, stripMarker(line))
		case sectionTips:
			seg.tips = append(seg.tips, stripMarker(line))
		default:
			// Fallback rule: first untagged line is the title,
			// the rest is description.
			if seg.title == "" {
				seg.title = line
			} else {
				seg.description = append(seg.description, line)
			}
		}
	}

	return seg
}

func stripMarker(line string) string {
	line = stepMarkerRe.ReplaceAllString(line, "")
	line = listMarkerRe.ReplaceAllString(line, "")
	return strings.TrimSpace(line)
}

// toParsedRecipe converts segmenter output to the canonical shape with
// the given base confidence. Normalization supplies the remaining
// defaults.
func (seg segments) toParsedRecipe(confidence float64) *importing.ParsedRecipe {
	ingredients := make([]importing.ParsedIngredient, 0, len(seg.ingredients))
	for _, line := range seg.ingredients {
		ingredients = append(ingredients, parseIngredientLine(line))
	}

	instructions := make([]string, 0, len(seg.instructions))
	instructions = append(instructions, seg.instructions...)

	parsed := &importing.ParsedRecipe{
		Title:           seg.title,
		Description:     strings.Join(seg.description, " "),
		Ingredients:     ingredients,
		Instructions:    instructions,
		Tips:            strings.Join(seg.tips, " "),
		PrepTimeMinutes: seg.prepMinutes,
		CookTimeMinutes: seg.cookMinutes,
		Servings:        seg.servings,
		Difficulty:      seg.difficulty,
		ConfidenceScore: confidence,
	}
	return parsed.Normalize()
}

// parseIngredientLine pulls a leading amount and unit off an ingredient
// line when present. Parentheticals become notes.
func parseIngredientLine(line string) importing.ParsedIngredient {
	var ing importing.ParsedIngredient

	if m := parentheticalRe.FindStringSubmatch(line); m != nil {
		ing.Notes = strings.TrimSpace(m[1])
		line = strings.TrimSpace(parentheticalRe.ReplaceAllString(line, ""))
	}

	if m := amountLeadRe.FindStringSubmatch(line); m != nil {
		if amount, ok := parseAmount(m[1]); ok {
			rest := strings.TrimSpace(m[2])
			fields := strings.SplitN(rest, " ", 2)
			if len(fields) == 2 {
				if unit, known := knownUnits[strings.ToLower(fields[0])]; known {
					ing.Amount = &amount
					ing.Unit = &unit
					ing.Name = strings.TrimSpace(fields[1])
					return ing
				}
			}
			ing.Amount = &amount
			ing.Name = rest
			return ing
		}
	}

	ing.Name = strings.TrimSpace(line)
	return ing
}

// parseAmount handles whole numbers, decimals, fractions ("1/2") and
// mixed numbers ("1 1/2")
func parseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)

	if strings.Contains(s, " ") {
		parts := strings.SplitN(s, " ", 2)
		whole, ok1 := parseAmount(parts[0])
		frac, ok2 := parseAmount(parts[1])
		if ok1 && ok2 {
			return whole + frac, true
		}
		return 0, false
	}

	if strings.Contains(s, "/") {
		parts := strings.SplitN(s, "/", 2)
		num, err1 := strconv.ParseFloat(parts[0], 64)
		den, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil || den == 0 {
			return 0, false
		}
		return num / den, true
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
