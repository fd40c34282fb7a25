package curation

import (
	"strings"

	"GrainIntel/internal/domain"
)

// Score contribution weights and caps for the rule-based strategy.
const (
	entityBonus       = 50
	technologyWeight  = 20
	technologyCap     = 60
	industryWeight    = 5
	industryCap       = 20
	categoryBonus     = 10
	sourceTrustBonus  = 3
	sourceEntityBonus = 30
	negativePenalty   = 10
	maxRelevanceScore = 100
)

// RuleScorer computes the deterministic composite relevance score. It
// holds only immutable tables and is safe for concurrent use.
type RuleScorer struct {
	registry        EntityRegistry
	keywords        KeywordTable
	trustedSources  []string // lowercased
	companyCategory string
}

// NewRuleScorer wires the immutable scoring tables.
func NewRuleScorer(registry EntityRegistry, keywords KeywordTable, trustedSources []string, companyCategory string) *RuleScorer {
	return &RuleScorer{
		registry:        registry,
		keywords:        keywords,
		trustedSources:  lowerAll(trustedSources),
		companyCategory: companyCategory,
	}
}

// Score evaluates one item. The result is clamped to [0,100]; positive
// contributions can nominally sum past 100 and negative keywords stack
// without a cap, so both ends need the clamp.
func (s *RuleScorer) Score(item domain.RawItem) int {
	text := strings.ToLower(CombinedText(item.Title, item.Summary))
	source := strings.ToLower(item.Source)

	score := 0

	// Entity mention bonus is flat: the first alias found contributes
	// once, further mentions do not stack.
	if s.registry.ContainsAny(text) {
		score += entityBonus
	}

	score += cappedKeywordScore(text, s.keywords.Technology, technologyWeight, technologyCap)
	score += cappedKeywordScore(text, s.keywords.Industry, industryWeight, industryCap)

	if item.Category == s.companyCategory {
		score += categoryBonus
	}

	for _, trusted := range s.trustedSources {
		if strings.Contains(source, trusted) {
			score += sourceTrustBonus
			break
		}
	}

	if s.registry.ContainsAny(source) {
		score += sourceEntityBonus
	}

	for _, negative := range s.keywords.Negative {
		if strings.Contains(text, negative) {
			score -= negativePenalty
		}
	}

	if score < 0 {
		return 0
	}
	if score > maxRelevanceScore {
		return maxRelevanceScore
	}
	return score
}

func cappedKeywordScore(text string, keywords []string, weight, limit int) int {
	total := 0
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			total += weight
			if total >= limit {
				return limit
			}
		}
	}
	return total
}
