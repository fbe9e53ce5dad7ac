package store

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hygieia-health/hygieia-cli/internal/api"
	"github.com/hygieia-health/hygieia-cli/internal/common"
	"github.com/hygieia-health/hygieia-cli/internal/logging"
	"github.com/hygieia-health/hygieia-cli/internal/models"
)

// SessionStorage is the durable-storage surface the session store needs.
// Implemented by *storage.Storage.
type SessionStorage interface {
	AccessToken(ctx context.Context) (string, error)
	SetAccessToken(ctx context.Context, token string) error
	SetRefreshToken(ctx context.Context, token string) error
	ClearAuth(ctx context.Context) error
	SaveSnapshot(ctx context.Context, key string, v any) error
	LoadSnapshot(ctx context.Context, key string, v any) (bool, error)
}

// SessionState is a read-only view of the auth state machine.
// Invariant: User != nil exactly when IsAuthenticated is true.
type SessionState struct {
	User            *models.User
	IsAuthenticated bool
	IsLoading       bool
	Err             string
}

// sessionSnapshot is the persisted subset of session state. Tokens live
// under their own storage keys and are excluded here on purpose.
type sessionSnapshot struct {
	User            *models.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

// Session owns the authenticated-user state machine and mediates every
// auth-mutating action.
type Session struct {
	mu    sync.Mutex
	state SessionState

	auth    api.AuthAPI
	storage SessionStorage
	log     logging.Logger
}

// NewSession constructs an anonymous session store.
func NewSession(auth api.AuthAPI, storage SessionStorage, log logging.Logger) *Session {
	return &Session{auth: auth, storage: storage, log: log}
}

// State returns a copy of the current state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setLoading() {
	s.mu.Lock()
	s.state.IsLoading = true
	s.state.Err = ""
	s.mu.Unlock()
}

func (s *Session) fail(err error) {
	s.mu.Lock()
	s.state.IsLoading = false
	s.state.Err = err.Error()
	s.mu.Unlock()
}

// establish stores both tokens, flips the machine to authenticated, and
// writes the session snapshot through to durable storage.
func (s *Session) establish(ctx context.Context, data *models.AuthData) error {
	if err := s.storage.SetAccessToken(ctx, data.AccessToken); err != nil {
		return err
	}
	if err := s.storage.SetRefreshToken(ctx, data.RefreshToken); err != nil {
		return err
	}

	user := data.User
	s.setAuthenticated(ctx, &user)
	return nil
}

func (s *Session) setAuthenticated(ctx context.Context, user *models.User) {
	s.mu.Lock()
	s.state = SessionState{User: user, IsAuthenticated: true}
	s.mu.Unlock()
	s.persistSnapshot(ctx)
}

func (s *Session) setAnonymous(ctx context.Context, persist bool) {
	s.mu.Lock()
	s.state = SessionState{}
	s.mu.Unlock()
	if persist {
		s.persistSnapshot(ctx)
	}
}

func (s *Session) persistSnapshot(ctx context.Context) {
	s.mu.Lock()
	snap := sessionSnapshot{User: s.state.User, IsAuthenticated: s.state.IsAuthenticated}
	s.mu.Unlock()

	if err := s.storage.SaveSnapshot(ctx, common.KeySession, snap); err != nil {
		s.log.Error(ctx, "failed to persist session", "error", err.Error())
	}
}

// Login authenticates with the backend. On success both tokens are stored
// and the machine transitions to authenticated; on failure the error
// message is recorded and the error re-thrown for the UI.
func (s *Session) Login(ctx context.Context, email, password string) error {
	s.setLoading()

	data, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.fail(err)
		return err
	}

	if err := s.establish(ctx, data); err != nil {
		s.fail(err)
		return err
	}
	s.log.Info(ctx, "logged in", "user_id", data.User.ID)
	return nil
}

// Signup creates an account; a success behaves exactly like a login.
func (s *Session) Signup(ctx context.Context, req api.SignupRequest) error {
	s.setLoading()

	data, err := s.auth.Signup(ctx, req)
	if err != nil {
		s.fail(err)
		return err
	}

	if err := s.establish(ctx, data); err != nil {
		s.fail(err)
		return err
	}
	s.log.Info(ctx, "account created", "user_id", data.User.ID)
	return nil
}

// Logout attempts server-side invalidation, then clears local state
// regardless of the call's outcome. A failed remote call never blocks the
// local logout.
func (s *Session) Logout(ctx context.Context) {
	s.setLoading()

	if err := s.auth.Logout(ctx); err != nil {
		s.log.Warn(ctx, "remote logout failed, continuing locally", "error", err.Error())
	}

	if err := s.storage.ClearAuth(ctx); err != nil {
		s.log.Error(ctx, "failed to clear auth storage", "error", err.Error())
	}
	s.setAnonymous(ctx, false)
}

// CheckAuth is the session-restore path, run once at startup. With no
// stored access token it settles on anonymous without touching the
// network; otherwise the stored token is validated by fetching the
// profile.
func (s *Session) CheckAuth(ctx context.Context) {
	token, err := s.storage.AccessToken(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to read access token", "error", err.Error())
	}
	if token == "" {
		// Tokens are gone; make sure the persisted snapshot agrees.
		s.setAnonymous(ctx, true)
		return
	}

	s.setLoading()
	user, err := s.auth.GetProfile(ctx)
	if err != nil {
		s.log.Info(ctx, "session restore failed", "error", err.Error())
		if cerr := s.storage.ClearAuth(ctx); cerr != nil {
			s.log.Error(ctx, "failed to clear auth storage", "error", cerr.Error())
		}
		s.setAnonymous(ctx, false)
		return
	}

	s.setAuthenticated(ctx, user)
	s.log.Info(ctx, "session restored", "user_id", user.ID)
}

// UpdateUser shallow-merges the patch into the current user and persists
// the snapshot. No-op when anonymous.
func (s *Session) UpdateUser(ctx context.Context, patch models.UserPatch) {
	s.mu.Lock()
	if s.state.User == nil {
		s.mu.Unlock()
		return
	}
	merged := patch.Apply(*s.state.User)
	s.state.User = &merged
	s.mu.Unlock()

	s.persistSnapshot(ctx)
}

// UpdateProfile pushes the patch to the backend and merges the returned
// user record.
func (s *Session) UpdateProfile(ctx context.Context, patch models.UserPatch) error {
	user, err := s.auth.UpdateProfile(ctx, patch)
	if err != nil {
		s.fail(err)
		return err
	}
	s.setAuthenticated(ctx, user)
	return nil
}

// ChangePassword is a pass-through with the same error contract as Login.
func (s *Session) ChangePassword(ctx context.Context, current, next string) error {
	if err := s.auth.ChangePassword(ctx, current, next); err != nil {
		s.fail(err)
		return err
	}
	return nil
}

func (s *Session) ForgotPassword(ctx context.Context, email string) error {
	if err := s.auth.ForgotPassword(ctx, email); err != nil {
		s.fail(err)
		return err
	}
	return nil
}

func (s *Session) ResetPassword(ctx context.Context, token, password string) error {
	if err := s.auth.ResetPassword(ctx, token, password); err != nil {
		s.fail(err)
		return err
	}
	return nil
}

// ClearError clears the error field only; the UI calls it between screens.
func (s *Session) ClearError() {
	s.mu.Lock()
	s.state.Err = ""
	s.mu.Unlock()
}

// Expire drops the in-memory session after the request pipeline has
// cleared durable auth state on a rejected refresh.
func (s *Session) Expire() {
	s.mu.Lock()
	s.state = SessionState{Err: common.ErrSessionExpired.Error()}
	s.mu.Unlock()
}

// RestoreSnapshot loads the persisted {user, isAuthenticated} subset into
// memory without a network call. CheckAuth remains the authority; this
// only primes the UI before the first round-trip finishes.
func (s *Session) RestoreSnapshot(ctx context.Context) {
	var snap sessionSnapshot
	found, err := s.storage.LoadSnapshot(ctx, common.KeySession, &snap)
	if err != nil {
		s.log.Warn(ctx, "failed to load session snapshot", "error", err.Error())
		return
	}
	if !found || !snap.IsAuthenticated || snap.User == nil {
		return
	}

	s.mu.Lock()
	s.state = SessionState{User: snap.User, IsAuthenticated: true}
	s.mu.Unlock()
}

// TokenExpiry reports when the stored access token expires. The claim is
// read without signature verification; the token is opaque to the client
// and only the server's verdict counts, this is display-only.
func (s *Session) TokenExpiry(ctx context.Context) (time.Time, bool) {
	token, err := s.storage.AccessToken(ctx)
	if err != nil || token == "" {
		return time.Time{}, false
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
