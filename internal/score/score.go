// Package score implements the rating aggregation and ranking engine.
// Everything here is pure computation over already-fetched data.
package score

import (
	"errors"
	"fmt"
	"strings"
)

// Category identifies one of the ten fixed rating dimensions.
type Category string

const (
	Color             Category = "color"
	RelativeStrength  Category = "relative_strength"
	Curiosity         Category = "curiosity"
	History           Category = "history"
	SurvivalMechanism Category = "survival_mechanism"
	Shape             Category = "shape"
	Intelligence      Category = "intelligence"
	RelativeSpeed     Category = "relative_speed"
	WorldAttitude     Category = "world_attitude"
	OverallCoolness   Category = "overall_coolness"
)

const (
	// MinScore is the lowest accepted value for a single category.
	MinScore = 1
	// MaxScore is the highest accepted value for a single category.
	MaxScore = 100
)

var categories = [...]Category{
	Color,
	RelativeStrength,
	Curiosity,
	History,
	SurvivalMechanism,
	Shape,
	Intelligence,
	RelativeSpeed,
	WorldAttitude,
	OverallCoolness,
}

// Categories returns the ten category keys in their canonical order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories[:])
	return out
}

// CategoryScores holds one score per category, as submitted by a single user
// for a single animal.
type CategoryScores struct {
	Color             int `json:"color"`
	RelativeStrength  int `json:"relative_strength"`
	Curiosity         int `json:"curiosity"`
	History           int `json:"history"`
	SurvivalMechanism int `json:"survival_mechanism"`
	Shape             int `json:"shape"`
	Intelligence      int `json:"intelligence"`
	RelativeSpeed     int `json:"relative_speed"`
	WorldAttitude     int `json:"world_attitude"`
	OverallCoolness   int `json:"overall_coolness"`
}

// Get returns the score stored under the given category. Unknown categories
// return zero, which never passes validation.
func (cs CategoryScores) Get(c Category) int {
	switch c {
	case Color:
		return cs.Color
	case RelativeStrength:
		return cs.RelativeStrength
	case Curiosity:
		return cs.Curiosity
	case History:
		return cs.History
	case SurvivalMechanism:
		return cs.SurvivalMechanism
	case Shape:
		return cs.Shape
	case Intelligence:
		return cs.Intelligence
	case RelativeSpeed:
		return cs.RelativeSpeed
	case WorldAttitude:
		return cs.WorldAttitude
	case OverallCoolness:
		return cs.OverallCoolness
	}
	return 0
}

// ValidationError reports the categories whose values were missing or
// outside the accepted range.
type ValidationError struct {
	Categories []Category
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Categories))
	for i, c := range e.Categories {
		names[i] = string(c)
	}
	return fmt.Sprintf("scores out of range [%d,%d]: %s", MinScore, MaxScore, strings.Join(names, ", "))
}

// Validate checks that every category carries a value in [MinScore, MaxScore].
// A zero value means the category was never supplied and fails the check.
func (cs CategoryScores) Validate() error {
	var bad []Category
	for _, c := range categories {
		if v := cs.Get(c); v < MinScore || v > MaxScore {
			bad = append(bad, c)
		}
	}
	if len(bad) > 0 {
		return &ValidationError{Categories: bad}
	}
	return nil
}

// Aggregate is the derived per-animal summary of all submitted ratings:
// the arithmetic mean of every category plus the overall value, defined as
// the mean of the ten per-category means. It is never persisted.
type Aggregate struct {
	Categories map[Category]float64 `json:"categories"`
	Overall    float64              `json:"overall"`
	Ratings    int                  `json:"ratings"`
}

// ComputeAggregate reduces a set of ratings for one animal into an Aggregate.
// An empty input yields all zeros. The result depends only on the multiset of
// inputs, not their order.
func ComputeAggregate(ratings []CategoryScores) Aggregate {
	agg := Aggregate{
		Categories: make(map[Category]float64, len(categories)),
		Ratings:    len(ratings),
	}
	if len(ratings) == 0 {
		for _, c := range categories {
			agg.Categories[c] = 0
		}
		return agg
	}

	var total float64
	for _, c := range categories {
		sum := 0
		for _, r := range ratings {
			sum += r.Get(c)
		}
		avg := float64(sum) / float64(len(ratings))
		agg.Categories[c] = avg
		total += avg
	}
	agg.Overall = total / float64(len(categories))
	return agg
}

// SortKey selects the metric a ranking is ordered by: a single category or
// the overall average.
type SortKey string

// SortKeyOverall orders by the overall average.
const SortKeyOverall SortKey = "overall"

// ErrUnknownSortKey rejects sort keys that name neither a category nor "overall".
var ErrUnknownSortKey = errors.New("unknown sort key")

// ParseSortKey validates a caller-supplied sort key. The empty string maps to
// SortKeyOverall.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" || SortKey(s) == SortKeyOverall {
		return SortKeyOverall, nil
	}
	for _, c := range categories {
		if s == string(c) {
			return SortKey(s), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
}

// Value returns the aggregate metric selected by the sort key.
func (a Aggregate) Value(key SortKey) float64 {
	if key == SortKeyOverall {
		return a.Overall
	}
	return a.Categories[Category(key)]
}
