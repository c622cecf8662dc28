package animals

import (
	"context"

	"github.com/bountx/animal-ranking/internal/i18n"
	"github.com/bountx/animal-ranking/internal/store"
)

// Store defines the read-only catalogue access the service needs.
type Store interface {
	Animals(ctx context.Context) ([]store.Animal, error)
	Animal(ctx context.Context, id int64) (store.Animal, error)
	Translations(ctx context.Context, language string) ([]i18n.Translation, error)
}

// Animal is a catalogue entry with its display text resolved for one locale.
type Animal struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Article string   `json:"article"`
	Images  []string `json:"images"`
}

// Service resolves the animal catalogue for a locale.
type Service interface {
	List(ctx context.Context, locale string) ([]Animal, error)
	Get(ctx context.Context, id int64, locale string) (Animal, error)
}

type service struct {
	store Store
}

// New constructs an animals Service backed by the given Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context, locale string) ([]Animal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := s.store.Animals(ctx)
	if err != nil {
		return nil, err
	}

	translations, err := s.translations(ctx, locale)
	if err != nil {
		return nil, err
	}

	out := make([]Animal, len(records))
	for i, rec := range records {
		out[i] = localize(rec, locale, translations)
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id int64, locale string) (Animal, error) {
	if err := ctx.Err(); err != nil {
		return Animal{}, err
	}

	rec, err := s.store.Animal(ctx, id)
	if err != nil {
		return Animal{}, err
	}

	translations, err := s.translations(ctx, locale)
	if err != nil {
		return Animal{}, err
	}

	return localize(rec, locale, translations), nil
}

// translations fetches the locale's translation index. The base locale never
// needs one.
func (s *service) translations(ctx context.Context, locale string) (map[string]i18n.Translation, error) {
	if locale == i18n.BaseLocale {
		return nil, nil
	}
	rows, err := s.store.Translations(ctx, locale)
	if err != nil {
		return nil, err
	}
	return i18n.Index(rows), nil
}

func localize(rec store.Animal, locale string, translations map[string]i18n.Translation) Animal {
	display := i18n.Resolve(rec.Name, rec.Article, locale, translations)
	return Animal{
		ID:      rec.ID,
		Name:    display.Name,
		Article: display.Article,
		Images:  rec.Images,
	}
}
