package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bountx/animal-ranking/internal/i18n"
)

// ErrAnimalNotFound signals a missing animal record.
var ErrAnimalNotFound = errors.New("animal not found")

// Animal models one entry in the catalogue. Animals are created and edited
// out-of-band; this store only reads them.
type Animal struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Article string   `json:"article"`
	Images  []string `json:"images"`
}

// Animals lists the full catalogue with image URLs attached, ordered by id
// ascending. That order is the natural pre-sort order of every ranking view.
func (s *Store) Animals(ctx context.Context) ([]Animal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, article
		FROM animals
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select animals: %w", err)
	}
	defer rows.Close()

	var animals []Animal
	byID := make(map[int64]int)
	for rows.Next() {
		var a Animal
		if err := rows.Scan(&a.ID, &a.Name, &a.Article); err != nil {
			return nil, fmt.Errorf("scan animal: %w", err)
		}
		byID[a.ID] = len(animals)
		animals = append(animals, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate animals: %w", err)
	}

	if len(animals) == 0 {
		return animals, nil
	}

	imgRows, err := s.db.QueryContext(ctx, `
		SELECT animal_id, image_url
		FROM animal_images
		ORDER BY animal_id ASC, position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select animal images: %w", err)
	}
	defer imgRows.Close()

	for imgRows.Next() {
		var (
			animalID int64
			url      string
		)
		if err := imgRows.Scan(&animalID, &url); err != nil {
			return nil, fmt.Errorf("scan animal image: %w", err)
		}
		if idx, ok := byID[animalID]; ok {
			animals[idx].Images = append(animals[idx].Images, url)
		}
	}
	if err := imgRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate animal images: %w", err)
	}

	return animals, nil
}

// Animal fetches a single animal with its images.
func (s *Store) Animal(ctx context.Context, id int64) (Animal, error) {
	var a Animal
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, article
		FROM animals
		WHERE id = $1
	`, id).Scan(&a.ID, &a.Name, &a.Article)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Animal{}, ErrAnimalNotFound
		}
		return Animal{}, fmt.Errorf("select animal: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT image_url
		FROM animal_images
		WHERE animal_id = $1
		ORDER BY position ASC
	`, id)
	if err != nil {
		return Animal{}, fmt.Errorf("select animal images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return Animal{}, fmt.Errorf("scan animal image: %w", err)
		}
		a.Images = append(a.Images, url)
	}
	if err := rows.Err(); err != nil {
		return Animal{}, fmt.Errorf("iterate animal images: %w", err)
	}

	return a, nil
}

// Translations returns all translations for one language.
func (s *Store) Translations(ctx context.Context, language string) ([]i18n.Translation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, original_name, language, translated_name, translated_article
		FROM animal_translations
		WHERE language = $1
		ORDER BY id ASC
	`, language)
	if err != nil {
		return nil, fmt.Errorf("select translations: %w", err)
	}
	defer rows.Close()

	var translations []i18n.Translation
	for rows.Next() {
		var tr i18n.Translation
		if err := rows.Scan(&tr.ID, &tr.OriginalName, &tr.Language, &tr.TranslatedName, &tr.TranslatedArticle); err != nil {
			return nil, fmt.Errorf("scan translation: %w", err)
		}
		translations = append(translations, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate translations: %w", err)
	}

	return translations, nil
}
