// Package rankings builds the leaderboard views: it joins the animal
// catalogue with aggregated ratings and orders the result by a caller-chosen
// metric.
package rankings

import (
	"context"

	"github.com/bountx/animal-ranking/internal/i18n"
	"github.com/bountx/animal-ranking/internal/score"
	"github.com/bountx/animal-ranking/internal/store"
)

// Store defines the reads the rankings service performs.
type Store interface {
	Animals(ctx context.Context) ([]store.Animal, error)
	Translations(ctx context.Context, language string) ([]i18n.Translation, error)
	Ratings(ctx context.Context, filter store.RatingFilter) ([]store.Rating, error)
}

// Standing is one animal's place in a ranking view. Position is 1-based and
// only meaningful after a sort.
type Standing struct {
	Position  int             `json:"position"`
	AnimalID  int64           `json:"animal_id"`
	Name      string          `json:"name"`
	Images    []string        `json:"images,omitempty"`
	Aggregate score.Aggregate `json:"aggregate"`
}

// Service computes ranking standings from current store data. Aggregates are
// recomputed from scratch on every call; nothing is patched incrementally.
type Service struct {
	store Store
}

// New constructs a rankings Service backed by the given Store.
func New(store Store) *Service {
	return &Service{store: store}
}

// Standings returns every animal with its aggregate, localized name and
// images, in the store's natural order (id ascending) with no positions
// assigned. This is the unsorted input every ranking starts from.
func (s *Service) Standings(ctx context.Context, locale string) ([]Standing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	animals, err := s.store.Animals(ctx)
	if err != nil {
		return nil, err
	}

	translations, err := s.translations(ctx, locale)
	if err != nil {
		return nil, err
	}

	ratings, err := s.store.Ratings(ctx, store.RatingFilter{})
	if err != nil {
		return nil, err
	}

	return buildStandings(animals, ratings, locale, translations), nil
}

// UserStandings returns the standings over a single user's own ratings:
// only animals the user has rated appear, each aggregated from that one
// rating. Natural order, no positions.
func (s *Service) UserStandings(ctx context.Context, userID int64, locale string) ([]Standing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	animals, err := s.store.Animals(ctx)
	if err != nil {
		return nil, err
	}

	translations, err := s.translations(ctx, locale)
	if err != nil {
		return nil, err
	}

	ratings, err := s.store.Ratings(ctx, store.RatingFilter{UserID: userID})
	if err != nil {
		return nil, err
	}

	rated := make(map[int64]bool, len(ratings))
	for _, r := range ratings {
		rated[r.AnimalID] = true
	}
	var own []store.Animal
	for _, a := range animals {
		if rated[a.ID] {
			own = append(own, a)
		}
	}

	return buildStandings(own, ratings, locale, translations), nil
}

func (s *Service) translations(ctx context.Context, locale string) (map[string]i18n.Translation, error) {
	if locale == i18n.BaseLocale {
		return nil, nil
	}
	rows, err := s.store.Translations(ctx, locale)
	if err != nil {
		return nil, err
	}
	return i18n.Index(rows), nil
}

func buildStandings(animals []store.Animal, ratings []store.Rating, locale string, translations map[string]i18n.Translation) []Standing {
	byAnimal := make(map[int64][]score.CategoryScores, len(animals))
	for _, r := range ratings {
		byAnimal[r.AnimalID] = append(byAnimal[r.AnimalID], r.CategoryScores)
	}

	standings := make([]Standing, 0, len(animals))
	for _, a := range animals {
		display := i18n.Resolve(a.Name, a.Article, locale, translations)
		standings = append(standings, Standing{
			AnimalID:  a.ID,
			Name:      display.Name,
			Images:    a.Images,
			Aggregate: score.ComputeAggregate(byAnimal[a.ID]),
		})
	}
	return standings
}

// Sort orders standings by descending value of the sort key and assigns
// 1-based positions. The input is always the natural-order sequence, so
// switching keys is order-of-operations-independent: sorting the same
// snapshot by key B after key A equals sorting it by B directly.
func Sort(standings []Standing, key score.SortKey) []Standing {
	entries := make([]score.Entry, len(standings))
	byID := make(map[int64]Standing, len(standings))
	for i, st := range standings {
		entries[i] = score.Entry{AnimalID: st.AnimalID, Aggregate: st.Aggregate}
		byID[st.AnimalID] = st
	}

	ranked := score.Rank(entries, key)

	out := make([]Standing, len(ranked))
	for i, e := range ranked {
		st := byID[e.AnimalID]
		st.Position = i + 1
		out[i] = st
	}
	return out
}
