package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bountx/animal-ranking/internal/score"
	"github.com/bountx/animal-ranking/internal/store"
)

func bootstrapDemoData(ctx context.Context, db *sql.DB, dataStore *store.Store) error {
	userID, err := ensureDemoUser(ctx, dataStore)
	if err != nil {
		return err
	}
	if err := ensureDemoAnimals(ctx, db, userID); err != nil {
		return err
	}
	return nil
}

func ensureDemoUser(ctx context.Context, dataStore *store.Store) (int64, error) {
	user, err := dataStore.CreateUser(ctx, "demo", "demo123")
	if err == nil {
		return user.ID, nil
	}
	if !errors.Is(err, store.ErrUserExists) {
		return 0, fmt.Errorf("bootstrap demo user: %w", err)
	}

	user, err = dataStore.Authenticate(ctx, "demo", "demo123")
	if err != nil {
		// The demo account exists with a different password; leave it alone.
		if errors.Is(err, store.ErrInvalidCredentials) {
			return 0, nil
		}
		return 0, fmt.Errorf("lookup demo user: %w", err)
	}
	return user.ID, nil
}

func ensureDemoAnimals(ctx context.Context, db *sql.DB, userID int64) error {
	animalsTableExists, err := tableExists(ctx, db, "animals")
	if err != nil {
		return fmt.Errorf("check animals table: %w", err)
	}
	if !animalsTableExists {
		return nil
	}

	var count int
	if err := db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM animals
	`).Scan(&count); err != nil {
		return fmt.Errorf("count animals: %w", err)
	}
	if count > 0 {
		return nil
	}

	type seedAnimal struct {
		Name          string
		Article       string
		PolishName    string
		PolishArticle string
		Images        []string
		Scores        *score.CategoryScores
	}

	uniform := func(v int) *score.CategoryScores {
		return &score.CategoryScores{
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

	animals := []seedAnimal{
		{
			Name:          "Lion",
			Article:       "a",
			PolishName:    "Lew",
			PolishArticle: "ten",
			Images:        []string{"/images/lion-1.jpg", "/images/lion-2.jpg"},
			Scores:        uniform(70),
		},
		{
			Name:          "Octopus",
			Article:       "an",
			PolishName:    "Ośmiornica",
			PolishArticle: "ta",
			Images:        []string{"/images/octopus-1.jpg"},
			Scores:        uniform(85),
		},
		{
			Name:          "Sloth",
			Article:       "a",
			PolishName:    "Leniwiec",
			PolishArticle: "ten",
			Images:        []string{"/images/sloth-1.jpg"},
			Scores:        uniform(60),
		},
		{
			Name:          "Axolotl",
			Article:       "an",
			PolishName:    "Aksolotl",
			PolishArticle: "ten",
			Images:        []string{"/images/axolotl-1.jpg"},
		},
		{
			Name:          "Red Panda",
			Article:       "a",
			PolishName:    "Panda ruda",
			PolishArticle: "ta",
			Images:        []string{"/images/red-panda-1.jpg"},
		},
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	ratingsTableExists, err := tableExists(ctx, tx, "ratings")
	if err != nil {
		return fmt.Errorf("check ratings table: %w", err)
	}

	for _, animal := range animals {
		var animalID int64
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO animals (name, article)
			VALUES ($1, $2)
			RETURNING id
		`, animal.Name, animal.Article).Scan(&animalID); err != nil {
			return fmt.Errorf("insert demo animal %q: %w", animal.Name, err)
		}

		for position, url := range animal.Images {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO animal_images (animal_id, image_url, position)
				VALUES ($1, $2, $3)
			`, animalID, url, position); err != nil {
				return fmt.Errorf("insert demo image for %q: %w", animal.Name, err)
			}
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO animal_translations (original_name, language, translated_name, translated_article)
			VALUES ($1, 'pl', $2, $3)
			ON CONFLICT (original_name, language) DO NOTHING
		`, animal.Name, animal.PolishName, animal.PolishArticle); err != nil {
			return fmt.Errorf("insert demo translation for %q: %w", animal.Name, err)
		}

		if !ratingsTableExists || animal.Scores == nil || userID == 0 {
			continue
		}

		s := animal.Scores
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO ratings (
				user_id, animal_id,
				color, relative_strength, curiosity, history, survival_mechanism,
				shape, intelligence, relative_speed, world_attitude, overall_coolness,
				created_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
			ON CONFLICT (user_id, animal_id) DO NOTHING
		`, userID, animalID,
			s.Color, s.RelativeStrength, s.Curiosity, s.History, s.SurvivalMechanism,
			s.Shape, s.Intelligence, s.RelativeSpeed, s.WorldAttitude, s.OverallCoolness,
		); err != nil {
			return fmt.Errorf("insert demo rating for %q: %w", animal.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	tx = nil

	return nil
}

type queryRower interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

func tableExists(ctx context.Context, q queryRower, table string) (bool, error) {
	var name sql.NullString
	if err := q.QueryRowContext(ctx, `SELECT to_regclass($1)`, table).Scan(&name); err != nil {
		return false, err
	}
	return name.Valid, nil
}
