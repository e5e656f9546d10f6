package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

// Demo fallback account. Always accepted when the fallback is enabled,
// whether or not it was ever registered.
const (
	demoEmail    = "demo@example.com"
	demoPassword = "demo123"
	demoName     = "Demo User"
)

// CredentialService describes registration and login over stored credential records.
type CredentialService interface {
	Register(ctx context.Context, name, email, password string) (*domain.SessionUser, error)
	Login(ctx context.Context, email, password string) (*domain.SessionUser, error)
}

// CredentialOptions tune registration and login behavior.
type CredentialOptions struct {
	// MinPasswordLength rejects shorter passwords at registration. 0 means unchecked.
	MinPasswordLength int
	// DemoLogin enables the built-in demo account as a login fallback.
	DemoLogin bool
	// SimulatedDelay is an artificial latency applied before register/login complete.
	SimulatedDelay time.Duration
}

type credentialService struct {
	store repository.KV
	opts  CredentialOptions

	// mu serializes the load-check-append-save sequence in Register so the
	// email-uniqueness check and the write it guards stay atomic. Login only
	// reads and does not take it.
	mu sync.Mutex
}

func NewCredentialService(store repository.KV, opts CredentialOptions) CredentialService {
	return &credentialService{store: store, opts: opts}
}

func (s *credentialService) Register(ctx context.Context, name, email, password string) (*domain.SessionUser, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}
	if s.opts.MinPasswordLength > 0 && len(password) < s.opts.MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, s.opts.MinPasswordLength)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email {
			return nil, ErrDuplicateEmail
		}
	}

	users = append(users, domain.User{Name: name, Email: email, Password: password})
	if err := s.saveUsers(ctx, users); err != nil {
		return nil, err
	}

	return &domain.SessionUser{Name: name, Email: email}, nil
}

func (s *credentialService) Login(ctx context.Context, email, password string) (*domain.SessionUser, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	// Trim the same way Register does, so a credential registered with
	// accidental surrounding whitespace matches when typed back verbatim.
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	// Stored records take precedence over the demo fallback.
	for _, u := range users {
		if u.Email == email && u.Password == password {
			return &domain.SessionUser{Name: u.Name, Email: u.Email}, nil
		}
	}

	if s.opts.DemoLogin && email == demoEmail && password == demoPassword {
		return &domain.SessionUser{Name: demoName, Email: demoEmail}, nil
	}

	return nil, ErrInvalidCredentials
}

func (s *credentialService) loadUsers(ctx context.Context) ([]domain.User, error) {
	raw, ok, err := s.store.Get(ctx, repository.KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var users []domain.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (s *credentialService) saveUsers(ctx context.Context, users []domain.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := s.store.Put(ctx, repository.KeyUsers, raw); err != nil {
		return fmt.Errorf("persist users: %w", err)
	}
	return nil
}

func (s *credentialService) simulateLatency(ctx context.Context) error {
	if s.opts.SimulatedDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.opts.SimulatedDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
