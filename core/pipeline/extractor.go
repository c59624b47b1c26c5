// Package pipeline implements rule-based mention extraction over
// proceedings text. Extraction is a pure computation: it never touches the
// registry and never fails for any input string.
package pipeline

import (
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/openparl/hansardgraph/model"
)

// PatternExtractor produces candidate entity mentions from free text by
// running an ordered rule table. Deduplication is deliberately not
// performed: overlapping matches from independent rules are kept as
// independent signals.
type PatternExtractor struct {
	rules  []MentionRule
	config model.ExtractConfig
	log    *slog.Logger
}

// NewPatternExtractor creates an extractor over the given rule table
func NewPatternExtractor(rules []MentionRule, config model.ExtractConfig, logger *slog.Logger) *PatternExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PatternExtractor{
		rules:  rules,
		config: config,
		log:    logger,
	}
}

// DefaultPatternExtractor creates an extractor with the default rule table
// and configuration
func DefaultPatternExtractor() *PatternExtractor {
	return NewPatternExtractor(DefaultRules(), model.DefaultExtractConfig(), nil)
}

// Extract runs every rule over the text and returns the candidate mentions
// with confidence >= minConfidence, sorted ascending by position. Positions
// are rune offsets. Empty or blank text yields an empty set, never an error.
func (e *PatternExtractor) Extract(text string, minConfidence float64) []*model.Mention {
	mentions := []*model.Mention{}
	if strings.TrimSpace(text) == "" {
		return mentions
	}

	for _, rule := range e.rules {
		if rule.Confidence < minConfidence {
			continue
		}

		for _, loc := range rule.Pattern.FindAllStringSubmatchIndex(text, -1) {
			var props model.MentionProperties
			if rule.Props != nil {
				props = rule.Props(submatches(text, loc))
			}

			mentions = append(mentions, &model.Mention{
				EntityType: rule.EntityType,
				RawText:    text[loc[0]:loc[1]],
				Position:   utf8.RuneCountInString(text[:loc[0]]),
				Context:    contextWindow(text, loc[0], loc[1], e.config.ContextWindow),
				Confidence: rule.Confidence,
				Properties: props,
			})
		}
	}

	sort.SliceStable(mentions, func(a, b int) bool {
		return mentions[a].Position < mentions[b].Position
	})

	return mentions
}

// submatches materializes the capture groups of a match location pair list
func submatches(text string, loc []int) []string {
	groups := make([]string, 0, len(loc)/2)
	for i := 0; i < len(loc); i += 2 {
		if loc[i] < 0 {
			groups = append(groups, "")
			continue
		}
		groups = append(groups, text[loc[i]:loc[i+1]])
	}
	return groups
}

// contextWindow returns up to halfWidth runes on both sides of the match
func contextWindow(text string, start, end, halfWidth int) string {
	left := start
	for n := 0; n < halfWidth && left > 0; n++ {
		_, size := utf8.DecodeLastRuneInString(text[:left])
		left -= size
	}

	right := end
	for n := 0; n < halfWidth && right < len(text); n++ {
		_, size := utf8.DecodeRuneInString(text[right:])
		right += size
	}

	return text[left:right]
}

// StageTag derives a debate-stage tag from a section heading, or an empty
// string when the heading carries no recognizable stage
func StageTag(heading string) string {
	h := strings.ToLower(heading)
	switch {
	case strings.Contains(h, "second reading"):
		return "second-reading"
	case strings.Contains(h, "third reading"):
		return "third-reading"
	case strings.Contains(h, "report stage"):
		return "report-stage"
	case strings.Contains(h, "committee of the whole"):
		return "committee-of-the-whole"
	case strings.Contains(h, "oral questions"), strings.Contains(h, "question period"):
		return "oral-questions"
	case strings.Contains(h, "routine proceedings"):
		return "routine-proceedings"
	case strings.Contains(h, "private members"):
		return "private-members-business"
	default:
		return ""
	}
}
