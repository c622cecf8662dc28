package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("demo", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	user, err := s.CreateUser(context.Background(), "  demo ", "demo123")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.ID != 5 {
		t.Fatalf("expected user id 5, got %d", user.ID)
	}
	if user.Username != "demo" {
		t.Fatalf("expected trimmed username, got %q", user.Username)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateUserEmptyFields(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	if _, err := s.CreateUser(context.Background(), "", "password"); err == nil {
		t.Fatal("expected error for empty username")
	}
	if _, err := s.CreateUser(context.Background(), "user", ""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestAuthenticate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	mock.ExpectQuery("SELECT id, password_hash FROM users").
		WithArgs("demo").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash"}).AddRow(int64(5), hash))

	user, err := s.Authenticate(context.Background(), "demo", "demo123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.ID != 5 {
		t.Fatalf("expected user id 5, got %d", user.ID)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	mock.ExpectQuery("SELECT id, password_hash FROM users").
		WithArgs("demo").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash"}).AddRow(int64(5), hash))

	_, err = s.Authenticate(context.Background(), "demo", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateUnknownUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery("SELECT id, password_hash FROM users").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash"}))

	_, err = s.Authenticate(context.Background(), "ghost", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
