package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/roomly/backend/internal/domain"
)

// Scoring bonuses
const (
	styleMatchBonus       = 40  // Room style appears in product style tags
	withinBudgetBonus     = 30  // Price inside [min, max]
	belowBudgetBonus      = 15  // Price under min: a good deal
	aboveBudgetPenalty    = -20 // Price over max
	colorAffinityBonus    = 10  // Per color shared with existing furniture
	materialAffinityBonus = 15  // Per material keyword shared with existing furniture

	defaultMinScore       = 30 // Results at or below this are dropped
	defaultRecommendLimit = 5
)

// furnitureColors is the fixed vocabulary checked against the room's
// free-text furniture description and the product's color tags.
var furnitureColors = []string{
	"white", "black", "gray", "beige", "brown",
	"blue", "green", "pink", "gold",
}

// materialKeywords are checked against the product's tag list.
var materialKeywords = []string{"velvet", "walnut"}

// MatchScorer computes 0-100 compatibility scores between products and rooms.
// It is stateless after construction and safe for concurrent use.
type MatchScorer struct {
	minScore int
	limit    int
}

// ScorerConfig holds configuration for the match scorer
type ScorerConfig struct {
	MinScore     int
	DefaultLimit int
}

// NewMatchScorer creates a scorer with the given configuration
func NewMatchScorer(config ScorerConfig) *MatchScorer {
	minScore := config.MinScore
	if minScore <= 0 {
		minScore = defaultMinScore
	}
	limit := config.DefaultLimit
	if limit <= 0 {
		limit = defaultRecommendLimit
	}
	return &MatchScorer{minScore: minScore, limit: limit}
}

// ScoreProduct scores a single product against a room profile.
// Returns nil when the room declares no style preferences: that is absence of
// signal, not a zero score. The accumulated score may leave [0, 100]
// internally and is clamped at the end.
func (s *MatchScorer) ScoreProduct(product domain.Product, room domain.Room) *domain.MatchResult {
	if len(room.Styles) == 0 {
		return nil
	}

	score := 0
	var reasons []string

	// Style overlap: first matching style earns the bonus once, further
	// matches do not stack.
	if style, ok := firstStyleMatch(room.Styles, product.Styles); ok {
		score += styleMatchBonus
		reasons = append(reasons, fmt.Sprintf("Matches your %s style", style))
	}

	// Budget fit is only evaluated when both bounds are declared.
	if room.BudgetMin != nil && room.BudgetMax != nil {
		switch {
		case product.Price >= *room.BudgetMin && product.Price <= *room.BudgetMax:
			score += withinBudgetBonus
			reasons = append(reasons, "Within your budget")
		case product.Price < *room.BudgetMin:
			score += belowBudgetBonus
			reasons = append(reasons, "Below your minimum budget, a good deal")
		default:
			score += aboveBudgetPenalty
			reasons = append(reasons, "Above your maximum budget")
		}
	}

	// Free-text furniture affinity. Each shared color and material keyword
	// accumulates independently with no stated cap; the final clamp bounds
	// the total.
	furniture := strings.ToLower(room.ExistingFurniture)
	if furniture != "" {
		for _, color := range furnitureColors {
			if strings.Contains(furniture, color) && containsFold(product.Colors, color) {
				score += colorAffinityBonus
				reasons = append(reasons, fmt.Sprintf("Matches your existing %s furniture", color))
			}
		}
		for _, material := range materialKeywords {
			if strings.Contains(furniture, material) && containsFold(product.Tags, material) {
				score += materialAffinityBonus
				reasons = append(reasons, fmt.Sprintf("Complements your %s furniture", material))
			}
		}
	}

	return &domain.MatchResult{Score: clampScore(score), Reasons: reasons}
}

// Recommend scores every product against the room, drops products the room
// has no opinion on or that score at or below the minimum, and returns the
// best matches in descending score order. Ties keep their original relative
// order. Pure function of its inputs; safe to call concurrently.
func (s *MatchScorer) Recommend(room domain.Room, products []domain.Product, limit int) []domain.ScoredProduct {
	if limit <= 0 {
		limit = s.limit
	}

	var out []domain.ScoredProduct
	for _, product := range products {
		result := s.ScoreProduct(product, room)
		if result == nil || result.Score <= s.minScore {
			continue
		}
		out = append(out, domain.ScoredProduct{
			Product:      product,
			MatchScore:   result.Score,
			MatchReasons: result.Reasons,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].MatchScore > out[j].MatchScore })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// firstStyleMatch returns the first room style present in the product's
// style tags, case-insensitively.
func firstStyleMatch(roomStyles, productStyles []string) (string, bool) {
	for _, want := range roomStyles {
		want = strings.TrimSpace(want)
		if want == "" {
			continue
		}
		for _, have := range productStyles {
			if strings.EqualFold(want, strings.TrimSpace(have)) {
				return want, true
			}
		}
	}
	return "", false
}

// containsFold reports whether the tag list contains the value,
// case-insensitively.
func containsFold(tags []string, value string) bool {
	for _, tag := range tags {
		if strings.EqualFold(strings.TrimSpace(tag), value) {
			return true
		}
	}
	return false
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
