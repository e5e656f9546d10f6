package service

import (
	"context"
	"encoding/json"
	"fmt"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

// SessionService owns the persisted current-user record. At most one session
// exists; Current returns nil when nobody is logged in.
type SessionService interface {
	Current(ctx context.Context) (*domain.SessionUser, error)
	Set(ctx context.Context, user domain.SessionUser) error
	Clear(ctx context.Context) error
}

type sessionService struct {
	store repository.KV
}

func NewSessionService(store repository.KV) SessionService {
	return &sessionService{store: store}
}

func (s *sessionService) Current(ctx context.Context) (*domain.SessionUser, error) {
	raw, ok, err := s.store.Get(ctx, repository.KeyCurrentUser)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var user domain.SessionUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &user, nil
}

func (s *sessionService) Set(ctx context.Context, user domain.SessionUser) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.store.Put(ctx, repository.KeyCurrentUser, raw); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (s *sessionService) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, repository.KeyCurrentUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
