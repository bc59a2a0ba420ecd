// Package service contains application services for accounts, sessions, and photos.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	pkgcrypto "photoshare/internal/crypto"
	"photoshare/internal/errs"
	"photoshare/internal/limiter"
	"photoshare/internal/model"
	"photoshare/internal/repository"
)

// AuthService defines registration, credential checks, and session lifecycle.
type AuthService interface {
	// Register creates a new account with secure password hashing.
	Register(ctx context.Context, reg model.Registration) (*model.Account, error)
	// Login verifies credentials with rate limiting by (login, ip).
	Login(ctx context.Context, loginName, password, ip string) (*model.Account, error)
	// IssueSession creates a session bound to the account.
	IssueSession(ctx context.Context, account *model.Account) (*model.Session, error)
	// Resolve maps a token to its live session.
	Resolve(ctx context.Context, token string) (*model.Session, error)
	// Logout destroys the session bound to the token.
	Logout(ctx context.Context, token string) error
}

type AuthServiceImpl struct {
	accounts   repository.AccountRepository
	sessions   repository.SessionRepository
	sessionTTL time.Duration
	lim        limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(accounts repository.AccountRepository, sessions repository.SessionRepository, sessionTTL time.Duration, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{accounts: accounts, sessions: sessions, sessionTTL: sessionTTL, lim: lim}
}

// Register validates required fields, hashes the password, and inserts the
// account. Session issuance is a separate step so that a session-store
// failure does not undo a successful registration.
func (s *AuthServiceImpl) Register(ctx context.Context, reg model.Registration) (*model.Account, error) {
	switch {
	case reg.LoginName == "":
		return nil, fmt.Errorf("%w: login_name required", errs.ErrInvalidInput)
	case reg.Password == "":
		return nil, fmt.Errorf("%w: password required", errs.ErrInvalidInput)
	case reg.FirstName == "":
		return nil, fmt.Errorf("%w: first_name required", errs.ErrInvalidInput)
	case reg.LastName == "":
		return nil, fmt.Errorf("%w: last_name required", errs.ErrInvalidInput)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	salt, err := pkgcrypto.RandBytes(pkgcrypto.SaltLen)
	if err != nil {
		return nil, err
	}

	a := &model.Account{
		ID:          id,
		LoginName:   reg.LoginName,
		PwdHash:     pkgcrypto.HashPassword([]byte(reg.Password), salt),
		Salt:        salt,
		FirstName:   reg.FirstName,
		LastName:    reg.LastName,
		Location:    reg.Location,
		Description: reg.Description,
		Occupation:  reg.Occupation,
	}
	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Login authenticates by login name and password. The two failure modes stay
// distinguishable: unknown handle vs. wrong password for an existing account.
func (s *AuthServiceImpl) Login(ctx context.Context, loginName, password, ip string) (*model.Account, error) {
	if loginName == "" || password == "" {
		return nil, fmt.Errorf("%w: login_name and password required", errs.ErrInvalidInput)
	}

	ipHash := limiter.HashIP(ip)
	allowed, _, err := s.lim.Allow(ctx, loginName, ipHash)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, errs.ErrRateLimited
	}

	a, err := s.accounts.GetByLoginName(ctx, loginName)
	if err != nil {
		// only a confirmed miss counts as "no such account"; a store failure
		// must surface as such, not invite registration
		if !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
		if blocked, _, ferr := s.lim.Failure(ctx, loginName, ipHash); ferr == nil && blocked {
			return nil, errs.ErrRateLimited
		}
		return nil, errs.ErrNoAccount
	}
	if !pkgcrypto.VerifyPassword([]byte(password), a.Salt, a.PwdHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, loginName, ipHash); ferr == nil && blocked {
			return nil, errs.ErrRateLimited
		}
		return nil, errs.ErrBadCredentials
	}

	// Success: reset counters (best-effort).
	_ = s.lim.Success(ctx, loginName, ipHash)
	return a, nil
}

// IssueSession creates and stores a session for the account.
func (s *AuthServiceImpl) IssueSession(ctx context.Context, account *model.Account) (*model.Session, error) {
	token, err := pkgcrypto.NewSessionToken()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	sess := &model.Session{
		Token:     token,
		AccountID: account.ID,
		FirstName: account.FirstName,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Resolve maps a token to its live session.
func (s *AuthServiceImpl) Resolve(ctx context.Context, token string) (*model.Session, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errs.ErrNoSession
	}
	return s.sessions.Get(ctx, token)
}

// Logout destroys the session. A missing session is the caller's error.
func (s *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return errs.ErrNoSession
	}
	return s.sessions.Delete(ctx, token)
}
