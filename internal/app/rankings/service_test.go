package rankings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bountx/animal-ranking/internal/i18n"
	"github.com/bountx/animal-ranking/internal/score"
	"github.com/bountx/animal-ranking/internal/store"
)

type fakeStore struct {
	animals      []store.Animal
	translations []i18n.Translation
	ratings      []store.Rating

	animalsErr error
	ratingsErr error

	translationCalls int
}

func (f *fakeStore) Animals(context.Context) ([]store.Animal, error) {
	if f.animalsErr != nil {
		return nil, f.animalsErr
	}
	return f.animals, nil
}

func (f *fakeStore) Translations(_ context.Context, language string) ([]i18n.Translation, error) {
	f.translationCalls++
	var out []i18n.Translation
	for _, tr := range f.translations {
		if tr.Language == language {
			out = append(out, tr)
		}
	}
	return out, nil
}

func (f *fakeStore) Ratings(_ context.Context, filter store.RatingFilter) ([]store.Rating, error) {
	if f.ratingsErr != nil {
		return nil, f.ratingsErr
	}
	var out []store.Rating
	for _, r := range f.ratings {
		if filter.UserID > 0 && r.UserID != filter.UserID {
			continue
		}
		if filter.AnimalID > 0 && r.AnimalID != filter.AnimalID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func uniform(v int) score.CategoryScores {
	return score.CategoryScores{
		Color:             v,
		RelativeStrength:  v,
		Curiosity:         v,
		History:           v,
		SurvivalMechanism: v,
		Shape:             v,
		Intelligence:      v,
		RelativeSpeed:     v,
		WorldAttitude:     v,
		OverallCoolness:   v,
	}
}

func rating(userID, animalID int64, scores score.CategoryScores) store.Rating {
	return store.Rating{UserID: userID, AnimalID: animalID, CategoryScores: scores}
}

func threeAnimals() *fakeStore {
	return &fakeStore{
		animals: []store.Animal{
			{ID: 1, Name: "Lion", Article: "King of beasts."},
			{ID: 2, Name: "Octopus", Article: "Eight arms."},
			{ID: 3, Name: "Sloth", Article: "Slow."},
		},
		translations: []i18n.Translation{
			{OriginalName: "Lion", Language: "pl", TranslatedName: "Lew", TranslatedArticle: "Król zwierząt."},
		},
		ratings: []store.Rating{
			rating(7, 1, uniform(80)),
			rating(8, 1, uniform(60)),
			rating(7, 2, uniform(90)),
		},
	}
}

func TestStandingsNaturalOrder(t *testing.T) {
	svc := New(threeAnimals())

	standings, err := svc.Standings(context.Background(), "en")
	require.NoError(t, err)
	require.Len(t, standings, 3)

	assert.Equal(t, []int64{1, 2, 3}, []int64{standings[0].AnimalID, standings[1].AnimalID, standings[2].AnimalID})
	assert.InDelta(t, 70, standings[0].Aggregate.Overall, 1e-9)
	assert.InDelta(t, 90, standings[1].Aggregate.Overall, 1e-9)
	assert.Zero(t, standings[2].Aggregate.Overall, "unrated animal aggregates to zero")
	assert.Equal(t, 2, standings[0].Aggregate.Ratings)

	for _, st := range standings {
		assert.Zero(t, st.Position, "positions assigned only by Sort")
	}
}

func TestStandingsLocalized(t *testing.T) {
	fs := threeAnimals()
	svc := New(fs)

	standings, err := svc.Standings(context.Background(), "pl")
	require.NoError(t, err)

	assert.Equal(t, "Lew", standings[0].Name, "translated name used")
	assert.Equal(t, "Octopus", standings[1].Name, "missing translation falls back to native name")
	assert.Equal(t, 1, fs.translationCalls)
}

func TestStandingsBaseLocaleSkipsTranslationFetch(t *testing.T) {
	fs := threeAnimals()
	svc := New(fs)

	_, err := svc.Standings(context.Background(), "en")
	require.NoError(t, err)
	assert.Zero(t, fs.translationCalls)
}

func TestSortAssignsPositions(t *testing.T) {
	svc := New(threeAnimals())

	standings, err := svc.Standings(context.Background(), "en")
	require.NoError(t, err)

	sorted := Sort(standings, score.SortKeyOverall)

	require.Len(t, sorted, 3)
	assert.Equal(t, int64(2), sorted[0].AnimalID)
	assert.Equal(t, int64(1), sorted[1].AnimalID)
	assert.Equal(t, int64(3), sorted[2].AnimalID)
	for i, st := range sorted {
		assert.Equal(t, i+1, st.Position)
	}
}

func TestSortResortIndependence(t *testing.T) {
	svc := New(threeAnimals())

	standings, err := svc.Standings(context.Background(), "en")
	require.NoError(t, err)

	direct := Sort(standings, score.SortKeyOverall)
	detour := Sort(standings, score.SortKey(score.Curiosity))
	back := Sort(standings, score.SortKeyOverall)

	require.Len(t, detour, 3)
	for i := range direct {
		assert.Equal(t, direct[i].AnimalID, back[i].AnimalID, "re-sorting back reproduces the original order")
	}
}

func TestUserStandingsOnlyRatedAnimals(t *testing.T) {
	svc := New(threeAnimals())

	standings, err := svc.UserStandings(context.Background(), 7, "en")
	require.NoError(t, err)

	require.Len(t, standings, 2, "only animals the user rated appear")
	assert.Equal(t, int64(1), standings[0].AnimalID)
	assert.Equal(t, int64(2), standings[1].AnimalID)
	assert.InDelta(t, 80, standings[0].Aggregate.Overall, 1e-9, "aggregate of the user's single rating")
	assert.Equal(t, 1, standings[0].Aggregate.Ratings)
}

func TestStandingsStoreError(t *testing.T) {
	fs := threeAnimals()
	fs.ratingsErr = assert.AnError
	svc := New(fs)

	_, err := svc.Standings(context.Background(), "en")
	require.ErrorIs(t, err, assert.AnError)
}
