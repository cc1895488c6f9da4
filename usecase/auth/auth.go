package auth

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/taskspace/domain"
	appLogger "github.com/fastygo/taskspace/pkg/logger"
	"github.com/fastygo/taskspace/repository"
)

// ViewAbandoner drops view state that belongs to an ended session.
type ViewAbandoner interface {
	Abandon()
}

type UseCase struct {
	credentials domain.CredentialTable
	sessions    repository.SessionRepository
	views       ViewAbandoner
	logger      *zap.Logger
}

func New(credentials domain.CredentialTable, sessions repository.SessionRepository, views ViewAbandoner, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if credentials == nil {
		credentials = domain.CredentialTable{}
	}
	return &UseCase{
		credentials: credentials,
		sessions:    sessions,
		views:       views,
		logger:      logger,
	}
}

// Login starts a session when username and password match the credential
// table exactly. On mismatch the current session is left untouched.
func (uc *UseCase) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	log := appLogger.WithRequestID(ctx, uc.logger)

	role, ok := uc.credentials.Match(username, password)
	if !ok {
		log.Info("login rejected", zap.String("username", username))
		return nil, domain.ErrInvalidCredentials
	}

	session := domain.Session{
		Username:  username,
		Role:      role,
		StartedAt: time.Now(),
	}
	if prev, ok := uc.sessions.Current(); ok && prev.Username != username && uc.views != nil {
		uc.views.Abandon()
	}
	uc.sessions.Set(session)
	log.Info("login", zap.String("username", username), zap.String("role", string(role)))
	return &session, nil
}

// Logout clears the session unconditionally.
func (uc *UseCase) Logout(ctx context.Context) {
	if prev, ok := uc.sessions.Current(); ok {
		appLogger.WithRequestID(ctx, uc.logger).Info("logout", zap.String("username", prev.Username))
	}
	uc.sessions.Clear()
	if uc.views != nil {
		uc.views.Abandon()
	}
}

// Current returns the active session.
func (uc *UseCase) Current() (domain.Session, bool) {
	return uc.sessions.Current()
}

// Require returns the active session or domain.ErrNoSession.
func (uc *UseCase) Require() (domain.Session, error) {
	session, ok := uc.sessions.Current()
	if !ok {
		return domain.Session{}, domain.ErrNoSession
	}
	return session, nil
}

// Menu returns the navigation visible to the active session; empty without one.
func (uc *UseCase) Menu() []domain.MenuItem {
	session, ok := uc.sessions.Current()
	if !ok {
		return []domain.MenuItem{}
	}
	return domain.VisibleMenu(session.Role)
}
