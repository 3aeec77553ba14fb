package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/reschool/internal/domain"
	"github.com/alexanderramin/reschool/internal/eschool"
	"github.com/alexanderramin/reschool/internal/repository"
)

type authService struct {
	api      eschool.API
	creds    repository.CredentialRepo
	session  *Session
	observer UseCaseObserver
}

func NewAuthService(api eschool.API, creds repository.CredentialRepo, session *Session, observers ...UseCaseObserver) AuthService {
	return &authService{
		api:      api,
		creds:    creds,
		session:  session,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *authService) Login(ctx context.Context, username, password string, remember bool) (st *domain.State, err error) {
	done := track(ctx, s.observer, "login", map[string]any{"remember": remember})
	defer func() { done(err) }()

	hash := HashPassword(password)
	device := NewDevicePayload()
	if err = s.api.Login(ctx, username, hash, device); err != nil {
		return nil, err
	}
	if st, err = s.loadState(ctx); err != nil {
		return nil, err
	}
	if remember {
		err = s.creds.Save(ctx, &domain.Credentials{
			Username:     username,
			PasswordHash: hash,
			Device:       device,
			SessionID:    s.api.SessionID(),
		})
		if err != nil {
			return nil, fmt.Errorf("remembering credentials: %w", err)
		}
	}
	return st, nil
}

func (s *authService) AutoLogin(ctx context.Context) (st *domain.State, err error) {
	fields := map[string]any{"reused_session": false}
	done := track(ctx, s.observer, "auto-login", fields)
	defer func() { done(err) }()

	var stored *domain.Credentials
	stored, err = s.creds.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoSavedCredentials
	}
	if err != nil {
		return nil, err
	}

	if stored.SessionID != "" {
		s.api.SetSession(stored.SessionID)
		st, err = s.loadState(ctx)
		if err == nil {
			fields["reused_session"] = true
			return st, nil
		}
		if !errors.Is(err, eschool.ErrNotAuthenticated) {
			return nil, err
		}
	}

	if err = s.api.Login(ctx, stored.Username, stored.PasswordHash, stored.Device); err != nil {
		return nil, err
	}
	if st, err = s.loadState(ctx); err != nil {
		return nil, err
	}
	if err = s.creds.UpdateSession(ctx, s.api.SessionID()); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}
	return st, nil
}

// Logout forgets the stored account and the in-memory session. The portal
// session itself simply expires.
func (s *authService) Logout(ctx context.Context) (err error) {
	done := track(ctx, s.observer, "logout", nil)
	defer func() { done(err) }()

	s.api.SetSession("")
	s.session.Clear()
	return s.creds.Delete(ctx)
}

func (s *authService) State(ctx context.Context) (*domain.State, error) {
	return s.session.ensure(ctx, s.api)
}

func (s *authService) loadState(ctx context.Context) (*domain.State, error) {
	st, err := s.api.State(ctx)
	if err != nil {
		return nil, err
	}
	s.session.Set(st)
	return st, nil
}
