package ratings

import (
	"context"
	"errors"

	"github.com/bountx/animal-ranking/internal/score"
	"github.com/bountx/animal-ranking/internal/store"
)

// ErrUnauthenticated rejects rating operations without a user context.
var ErrUnauthenticated = errors.New("authentication required")

// Store defines the persistence hooks for rating workflows.
type Store interface {
	RatingByUser(ctx context.Context, userID, animalID int64) (store.Rating, error)
	InsertRating(ctx context.Context, userID, animalID int64, scores score.CategoryScores) (store.Rating, error)
	UpdateRating(ctx context.Context, userID, animalID int64, scores score.CategoryScores) (store.Rating, error)
}

// Service coordinates rating submission and lookup. Submit is an upsert:
// after a successful call exactly one rating exists for the (user, animal)
// pair and its scores equal the submitted ones.
type Service interface {
	Submit(ctx context.Context, userID, animalID int64, scores score.CategoryScores) (store.Rating, error)
	Get(ctx context.Context, userID, animalID int64) (store.Rating, error)
}

type service struct {
	store Store
}

// New constructs a ratings Service backed by the given Store.
func New(store Store) Service {
	return &service{store: store}
}

// Submit validates the scores, then updates the caller's existing rating in
// place or creates a new one. Validation and authentication are checked
// before any store call.
func (s *service) Submit(ctx context.Context, userID, animalID int64, scores score.CategoryScores) (store.Rating, error) {
	if err := ctx.Err(); err != nil {
		return store.Rating{}, err
	}
	if userID == 0 {
		return store.Rating{}, ErrUnauthenticated
	}
	if err := scores.Validate(); err != nil {
		return store.Rating{}, err
	}

	_, err := s.store.RatingByUser(ctx, userID, animalID)
	switch {
	case err == nil:
		return s.store.UpdateRating(ctx, userID, animalID, scores)
	case errors.Is(err, store.ErrRatingNotFound):
		rating, err := s.store.InsertRating(ctx, userID, animalID, scores)
		if errors.Is(err, store.ErrRatingExists) {
			// Lost a race with a concurrent submit for the same pair;
			// the row exists now, so overwrite it.
			return s.store.UpdateRating(ctx, userID, animalID, scores)
		}
		return rating, err
	default:
		return store.Rating{}, err
	}
}

// Get returns the caller's existing rating for an animal. A missing rating
// surfaces as store.ErrRatingNotFound, which callers treat as a normal branch.
func (s *service) Get(ctx context.Context, userID, animalID int64) (store.Rating, error) {
	if err := ctx.Err(); err != nil {
		return store.Rating{}, err
	}
	if userID == 0 {
		return store.Rating{}, ErrUnauthenticated
	}
	return s.store.RatingByUser(ctx, userID, animalID)
}
