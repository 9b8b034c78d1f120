package domain

import (
	"time"

	"github.com/google/uuid"
)

// Default preference values applied when stored values are missing or unknown.
var (
	DefaultStrategyTypes = []Category{CategoryPhysical, CategoryCognitive, CategorySocial}
)

// DefaultStrategyComplexity is used when no valid complexity is stored.
const DefaultStrategyComplexity = ComplexityModerate

// UserPreferences holds a user's strategy settings. The recommendation engine
// only reads them.
type UserPreferences struct {
	UserID                 uuid.UUID  `json:"user_id"`
	PreferredStrategyTypes []Category `json:"preferred_strategy_types"`
	StrategyComplexity     Complexity `json:"strategy_complexity"`
	AutoSuggestEnabled     bool       `json:"auto_suggest_enabled"`
	FavoriteStrategies     []string   `json:"favorite_strategies"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// DefaultPreferences returns the settings of a user who never saved any.
func DefaultPreferences(userID uuid.UUID) UserPreferences {
	types := make([]Category, len(DefaultStrategyTypes))
	copy(types, DefaultStrategyTypes)
	return UserPreferences{
		UserID:                 userID,
		PreferredStrategyTypes: types,
		StrategyComplexity:     DefaultStrategyComplexity,
		AutoSuggestEnabled:     true,
		FavoriteStrategies:     []string{},
	}
}

// Normalized returns a copy with unknown values replaced by defaults.
// Unknown categories are dropped; if none remain the default categories are
// used. An unknown complexity becomes moderate. Duplicates are removed.
func (p UserPreferences) Normalized() UserPreferences {
	out := p

	seen := make(map[Category]bool, len(p.PreferredStrategyTypes))
	types := make([]Category, 0, len(p.PreferredStrategyTypes))
	for _, c := range p.PreferredStrategyTypes {
		if c.Valid() && !seen[c] {
			seen[c] = true
			types = append(types, c)
		}
	}
	if len(types) == 0 {
		types = append(types, DefaultStrategyTypes...)
	}
	out.PreferredStrategyTypes = types

	if !out.StrategyComplexity.Valid() {
		out.StrategyComplexity = DefaultStrategyComplexity
	}

	favorites := make([]string, 0, len(p.FavoriteStrategies))
	seenFav := make(map[string]bool, len(p.FavoriteStrategies))
	for _, id := range p.FavoriteStrategies {
		if id != "" && !seenFav[id] {
			seenFav[id] = true
			favorites = append(favorites, id)
		}
	}
	out.FavoriteStrategies = favorites

	return out
}

// AllowsCategory reports whether c is one of the preferred strategy types.
func (p UserPreferences) AllowsCategory(c Category) bool {
	for _, t := range p.PreferredStrategyTypes {
		if t == c {
			return true
		}
	}
	return false
}
