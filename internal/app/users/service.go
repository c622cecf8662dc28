package users

import (
	"context"
	"fmt"

	"github.com/bountx/animal-ranking/internal/auth"
	"github.com/bountx/animal-ranking/internal/store"
)

// Store describes the persistence operations required by the user service.
type Store interface {
	CreateUser(ctx context.Context, username, password string) (store.User, error)
	Authenticate(ctx context.Context, username, password string) (store.User, error)
}

// Service exposes account workflows.
type Service interface {
	Signup(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
}

type service struct {
	store  Store
	tokens auth.TokenService
}

// New wires a Service backed by the provided Store and token signer.
func New(store Store, tokens auth.TokenService) Service {
	return &service{store: store, tokens: tokens}
}

func (s *service) Signup(ctx context.Context, username, password string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.store.CreateUser(ctx, username, password)
	return err
}

// Login authenticates credentials and returns a signed bearer token.
func (s *service) Login(ctx context.Context, username, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	user, err := s.store.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}

	token, _, err := s.tokens.Sign(user.ID, user.Username)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
