package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bountx/animal-ranking/internal/score"
)

// ErrRatingNotFound signals that a user has not rated an animal yet. Callers
// treat this as a normal branch, not a failure.
var ErrRatingNotFound = errors.New("rating not found")

// Rating is one user's scores for one animal. At most one row exists per
// (user, animal) pair; the schema enforces it with a unique constraint.
type Rating struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	AnimalID  int64     `json:"animal_id"`
	CreatedAt time.Time `json:"created_at"`
	score.CategoryScores
}

// RatingFilter constrains the rows returned by Ratings.
type RatingFilter struct {
	AnimalID int64
	UserID   int64
}

const ratingColumns = `id, user_id, animal_id, created_at,
	color, relative_strength, curiosity, history, survival_mechanism,
	shape, intelligence, relative_speed, world_attitude, overall_coolness`

func scanRating(row interface{ Scan(...any) error }) (Rating, error) {
	var r Rating
	err := row.Scan(
		&r.ID, &r.UserID, &r.AnimalID, &r.CreatedAt,
		&r.Color, &r.RelativeStrength, &r.Curiosity, &r.History, &r.SurvivalMechanism,
		&r.Shape, &r.Intelligence, &r.RelativeSpeed, &r.WorldAttitude, &r.OverallCoolness,
	)
	return r, err
}

// Ratings lists rating rows matching the filter, ordered by animal then id so
// grouping per animal is deterministic.
func (s *Store) Ratings(ctx context.Context, filter RatingFilter) ([]Rating, error) {
	query := `
		SELECT ` + ratingColumns + `
		FROM ratings
		WHERE 1=1
	`
	args := []any{}
	argIndex := 1

	if filter.AnimalID > 0 {
		query += fmt.Sprintf(" AND animal_id = $%d", argIndex)
		args = append(args, filter.AnimalID)
		argIndex++
	}
	if filter.UserID > 0 {
		query += fmt.Sprintf(" AND user_id = $%d", argIndex)
		args = append(args, filter.UserID)
		argIndex++
	}

	query += " ORDER BY animal_id ASC, id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer rows.Close()

	var ratings []Rating
	for rows.Next() {
		r, err := scanRating(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}

	return ratings, nil
}

// RatingByUser fetches the single rating a user submitted for an animal.
// Returns ErrRatingNotFound when the user has not rated the animal.
func (s *Store) RatingByUser(ctx context.Context, userID, animalID int64) (Rating, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+ratingColumns+`
		FROM ratings
		WHERE user_id = $1 AND animal_id = $2
	`, userID, animalID)

	r, err := scanRating(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Rating{}, ErrRatingNotFound
		}
		return Rating{}, fmt.Errorf("select rating: %w", err)
	}
	return r, nil
}

// InsertRating creates a new rating row with a fresh identity and timestamp.
// A concurrent insert for the same (user, animal) pair trips the unique
// constraint; callers fall back to UpdateRating in that case.
func (s *Store) InsertRating(ctx context.Context, userID, animalID int64, scores score.CategoryScores) (Rating, error) {
	r := Rating{
		UserID:         userID,
		AnimalID:       animalID,
		CreatedAt:      time.Now().UTC(),
		CategoryScores: scores,
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO ratings (
			user_id, animal_id, created_at,
			color, relative_strength, curiosity, history, survival_mechanism,
			shape, intelligence, relative_speed, world_attitude, overall_coolness
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`,
		r.UserID, r.AnimalID, r.CreatedAt,
		r.Color, r.RelativeStrength, r.Curiosity, r.History, r.SurvivalMechanism,
		r.Shape, r.Intelligence, r.RelativeSpeed, r.WorldAttitude, r.OverallCoolness,
	).Scan(&r.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return Rating{}, ErrRatingExists
		}
		return Rating{}, fmt.Errorf("insert rating: %w", err)
	}

	return r, nil
}

// ErrRatingExists reports an insert that raced with another submit for the
// same (user, animal) pair.
var ErrRatingExists = errors.New("rating already exists")

// UpdateRating overwrites the ten scores of an existing rating in place,
// preserving its identity and creation timestamp.
func (s *Store) UpdateRating(ctx context.Context, userID, animalID int64, scores score.CategoryScores) (Rating, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE ratings
		SET color = $3, relative_strength = $4, curiosity = $5, history = $6,
			survival_mechanism = $7, shape = $8, intelligence = $9,
			relative_speed = $10, world_attitude = $11, overall_coolness = $12
		WHERE user_id = $1 AND animal_id = $2
		RETURNING `+ratingColumns+`
	`,
		userID, animalID,
		scores.Color, scores.RelativeStrength, scores.Curiosity, scores.History,
		scores.SurvivalMechanism, scores.Shape, scores.Intelligence,
		scores.RelativeSpeed, scores.WorldAttitude, scores.OverallCoolness,
	)

	r, err := scanRating(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Rating{}, ErrRatingNotFound
		}
		return Rating{}, fmt.Errorf("update rating: %w", err)
	}
	return r, nil
}
