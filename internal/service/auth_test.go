package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"

	pkgcrypto "photoshare/internal/crypto"
	"photoshare/internal/errs"
	"photoshare/internal/limiter"
	"photoshare/internal/model"
	"photoshare/internal/repository"
)

type fakeAccounts struct {
	mu     sync.Mutex
	byName map[string]*model.Account

	createErr error
	getErr    error
}

var _ repository.AccountRepository = (*fakeAccounts)(nil)

func (f *fakeAccounts) Create(_ context.Context, a *model.Account) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byName == nil {
		f.byName = map[string]*model.Account{}
	}
	if _, exists := f.byName[a.LoginName]; exists {
		return errs.ErrAlreadyExists
	}
	cpy := *a
	f.byName[a.LoginName] = &cpy
	return nil
}

func (f *fakeAccounts) GetByID(_ context.Context, id uuid.UUID) (*model.Account, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.byName {
		if a.ID == id {
			c := *a
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeAccounts) GetByLoginName(_ context.Context, loginName string) (*model.Account, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byName[loginName]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (f *fakeAccounts) GetSummary(ctx context.Context, id uuid.UUID) (*model.AccountSummary, error) {
	a, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.AccountSummary{ID: a.ID, FirstName: a.FirstName, LastName: a.LastName}, nil
}

func (f *fakeAccounts) List(_ context.Context) ([]model.AccountSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.AccountSummary{}
	for _, a := range f.byName {
		out = append(out, model.AccountSummary{ID: a.ID, FirstName: a.FirstName, LastName: a.LastName})
	}
	return out, nil
}

type fakeSessions struct {
	mu      sync.Mutex
	byToken map[string]*model.Session

	createErr error
}

var _ repository.SessionRepository = (*fakeSessions)(nil)

func (f *fakeSessions) Create(_ context.Context, s *model.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byToken == nil {
		f.byToken = map[string]*model.Session{}
	}
	cpy := *s
	f.byToken[s.Token] = &cpy
	return nil
}

func (f *fakeSessions) Get(_ context.Context, token string) (*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byToken[token]
	if !ok || s.ExpiresAt.Before(time.Now()) {
		return nil, errs.ErrNoSession
	}
	c := *s
	return &c, nil
}

func (f *fakeSessions) Delete(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byToken[token]; !ok {
		return errs.ErrNoSession
	}
	delete(f.byToken, token)
	return nil
}

type fakeLimiter struct {
	allowOK  bool
	allowErr error

	failBlocked bool
	failErr     error

	allowCalls   int
	failureCalls int
	successCalls int
}

var _ limiter.Limiter = (*fakeLimiter)(nil)

func (l *fakeLimiter) Allow(context.Context, string, []byte) (bool, time.Duration, error) {
	l.allowCalls++
	return l.allowOK, 0, l.allowErr
}
func (l *fakeLimiter) Success(context.Context, string, []byte) error {
	l.successCalls++
	return nil
}
func (l *fakeLimiter) Failure(context.Context, string, []byte) (bool, time.Duration, error) {
	l.failureCalls++
	return l.failBlocked, 0, l.failErr
}

func validRegistration() model.Registration {
	return model.Registration{
		LoginName: "alice",
		Password:  "p1",
		FirstName: "Alice",
		LastName:  "Smith",
		Location:  "Berlin",
	}
}

func TestAuth_Register_Validation(t *testing.T) {
	t.Parallel()
	s := NewAuthService(&fakeAccounts{}, &fakeSessions{}, time.Hour, &fakeLimiter{})

	for _, mutate := range []func(*model.Registration){
		func(r *model.Registration) { r.LoginName = "" },
		func(r *model.Registration) { r.Password = "" },
		func(r *model.Registration) { r.FirstName = "" },
		func(r *model.Registration) { r.LastName = "" },
	} {
		reg := validRegistration()
		mutate(&reg)
		if _, err := s.Register(context.Background(), reg); !errors.Is(err, errs.ErrInvalidInput) {
			t.Fatalf("want ErrInvalidInput, got %v", err)
		}
	}
}

func TestAuth_Register_HashesAndStores(t *testing.T) {
	t.Parallel()
	accounts := &fakeAccounts{}
	s := NewAuthService(accounts, &fakeSessions{}, time.Hour, &fakeLimiter{})

	a, err := s.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if a.ID == uuid.Nil {
		t.Fatalf("empty account id")
	}
	if len(a.Salt) != pkgcrypto.SaltLen || len(a.PwdHash) == 0 {
		t.Fatalf("missing salt/hash")
	}
	if string(a.PwdHash) == "p1" {
		t.Fatalf("plaintext stored as hash")
	}
	if !pkgcrypto.VerifyPassword([]byte("p1"), a.Salt, a.PwdHash) {
		t.Fatalf("stored hash does not verify")
	}

	// duplicate login name
	if _, err := s.Register(context.Background(), validRegistration()); !errors.Is(err, errs.ErrAlreadyExists) {
		t.Fatalf("want ErrAlreadyExists, got %v", err)
	}
}

func TestAuth_Login_Branches(t *testing.T) {
	t.Parallel()
	accounts := &fakeAccounts{}
	lim := &fakeLimiter{allowOK: true}
	s := NewAuthService(accounts, &fakeSessions{}, time.Hour, lim)

	if _, err := s.Register(context.Background(), validRegistration()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// unknown handle: the distinguishing "no such account" branch
	if _, err := s.Login(context.Background(), "nobody", "x", "1.2.3.4"); !errors.Is(err, errs.ErrNoAccount) {
		t.Fatalf("want ErrNoAccount, got %v", err)
	}

	// wrong password: must NOT look like a missing account
	if _, err := s.Login(context.Background(), "alice", "wrong", "1.2.3.4"); !errors.Is(err, errs.ErrBadCredentials) {
		t.Fatalf("want ErrBadCredentials, got %v", err)
	}

	// success
	a, err := s.Login(context.Background(), "alice", "p1", "1.2.3.4")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if a.LoginName != "alice" {
		t.Fatalf("wrong account returned: %+v", a)
	}
	if lim.successCalls == 0 {
		t.Fatalf("expected Success() to be called")
	}
}

func TestAuth_Login_StoreFailureIsNotNoAccount(t *testing.T) {
	t.Parallel()
	accounts := &fakeAccounts{getErr: errors.New("connection refused")}
	lim := &fakeLimiter{allowOK: true}
	s := NewAuthService(accounts, &fakeSessions{}, time.Hour, lim)

	_, err := s.Login(context.Background(), "alice", "p1", "1.2.3.4")
	if err == nil || errors.Is(err, errs.ErrNoAccount) {
		t.Fatalf("store outage must propagate, got %v", err)
	}
	if lim.failureCalls != 0 {
		t.Fatalf("a store outage is not a failed attempt")
	}
}

func TestAuth_Login_RateLimiting(t *testing.T) {
	t.Parallel()
	accounts := &fakeAccounts{}
	lim := &fakeLimiter{allowOK: false}
	s := NewAuthService(accounts, &fakeSessions{}, time.Hour, lim)

	if _, err := s.Login(context.Background(), "alice", "p1", "1.2.3.4"); !errors.Is(err, errs.ErrRateLimited) {
		t.Fatalf("want ErrRateLimited, got %v", err)
	}

	lim.allowOK = true
	lim.failBlocked = true
	if _, err := s.Login(context.Background(), "alice", "p1", "1.2.3.4"); !errors.Is(err, errs.ErrRateLimited) {
		t.Fatalf("want ErrRateLimited on blocking failure, got %v", err)
	}

	lim.allowErr = errors.New("lim-err")
	if _, err := s.Login(context.Background(), "alice", "p1", "1.2.3.4"); err == nil {
		t.Fatalf("want limiter error propagated")
	}
}

func TestAuth_Sessions_IssueResolveLogout(t *testing.T) {
	t.Parallel()
	accounts := &fakeAccounts{}
	sessions := &fakeSessions{}
	s := NewAuthService(accounts, sessions, time.Hour, &fakeLimiter{allowOK: true})

	a, err := s.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	sess, err := s.IssueSession(context.Background(), a)
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}
	if sess.Token == "" || sess.AccountID != a.ID || sess.FirstName != a.FirstName {
		t.Fatalf("bad session: %+v", sess)
	}
	if time.Until(sess.ExpiresAt) <= 0 {
		t.Fatalf("session already expired: %v", sess.ExpiresAt)
	}

	got, err := s.Resolve(context.Background(), sess.Token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.AccountID != a.ID {
		t.Fatalf("resolved wrong principal: %+v", got)
	}

	if _, err := s.Resolve(context.Background(), ""); !errors.Is(err, errs.ErrNoSession) {
		t.Fatalf("want ErrNoSession for empty token, got %v", err)
	}

	if err := s.Logout(context.Background(), sess.Token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := s.Resolve(context.Background(), sess.Token); !errors.Is(err, errs.ErrNoSession) {
		t.Fatalf("session survives logout")
	}
	if err := s.Logout(context.Background(), sess.Token); !errors.Is(err, errs.ErrNoSession) {
		t.Fatalf("want ErrNoSession on double logout, got %v", err)
	}
}

func TestAuth_Register_SessionFailureDoesNotUndoAccount(t *testing.T) {
	t.Parallel()
	accounts := &fakeAccounts{}
	sessions := &fakeSessions{createErr: errors.New("session store down")}
	s := NewAuthService(accounts, sessions, time.Hour, &fakeLimiter{allowOK: true})

	a, err := s.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := s.IssueSession(context.Background(), a); err == nil {
		t.Fatalf("want session store error")
	}

	// the account still exists and can log in once sessions recover
	sessions.createErr = nil
	if _, err := s.Login(context.Background(), "alice", "p1", ""); err != nil {
		t.Fatalf("Login after session failure: %v", err)
	}
}
