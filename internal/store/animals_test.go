package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestAnimalsWithImages(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery("SELECT id, name, article FROM animals").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "article"}).
			AddRow(int64(1), "Lion", "King of beasts.").
			AddRow(int64(2), "Octopus", "Eight arms."))

	mock.ExpectQuery("SELECT animal_id, image_url FROM animal_images").
		WillReturnRows(sqlmock.NewRows([]string{"animal_id", "image_url"}).
			AddRow(int64(1), "https://img.example/lion-1.jpg").
			AddRow(int64(1), "https://img.example/lion-2.jpg").
			AddRow(int64(2), "https://img.example/octopus-1.jpg"))

	got, err := s.Animals(context.Background())
	if err != nil {
		t.Fatalf("Animals: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 animals, got %d", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("expected id-ascending order, got %+v", got)
	}
	if len(got[0].Images) != 2 || got[0].Images[0] != "https://img.example/lion-1.jpg" {
		t.Fatalf("unexpected lion images: %v", got[0].Images)
	}
	if len(got[1].Images) != 1 {
		t.Fatalf("unexpected octopus images: %v", got[1].Images)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAnimalsEmptySkipsImageQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery("SELECT id, name, article FROM animals").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "article"}))

	got, err := s.Animals(context.Background())
	if err != nil {
		t.Fatalf("Animals: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no animals, got %d", len(got))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAnimalNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery("SELECT id, name, article FROM animals").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "article"}))

	_, err = s.Animal(context.Background(), 99)
	if !errors.Is(err, ErrAnimalNotFound) {
		t.Fatalf("expected ErrAnimalNotFound, got %v", err)
	}
}

func TestTranslations(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery("SELECT id, original_name, language, translated_name, translated_article FROM animal_translations").
		WithArgs("pl").
		WillReturnRows(sqlmock.NewRows([]string{"id", "original_name", "language", "translated_name", "translated_article"}).
			AddRow(int64(1), "Lion", "pl", "Lew", "Król zwierząt."))

	got, err := s.Translations(context.Background(), "pl")
	if err != nil {
		t.Fatalf("Translations: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 translation, got %d", len(got))
	}
	if got[0].TranslatedName != "Lew" {
		t.Fatalf("unexpected translation: %+v", got[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
