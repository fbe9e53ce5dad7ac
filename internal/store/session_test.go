package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hygieia-health/hygieia-cli/internal/api"
	"github.com/hygieia-health/hygieia-cli/internal/common"
	"github.com/hygieia-health/hygieia-cli/internal/logging"
	"github.com/hygieia-health/hygieia-cli/internal/models"
	"github.com/stretchr/testify/require"
)

type fakeSessionStorage struct {
	*fakeSnapshotStore
	accessToken  string
	refreshToken string
	clearCalls   int
}

func newFakeSessionStorage() *fakeSessionStorage {
	return &fakeSessionStorage{fakeSnapshotStore: newFakeSnapshotStore()}
}

func (f *fakeSessionStorage) AccessToken(context.Context) (string, error) {
	return f.accessToken, nil
}

func (f *fakeSessionStorage) SetAccessToken(_ context.Context, token string) error {
	f.accessToken = token
	return nil
}

func (f *fakeSessionStorage) SetRefreshToken(_ context.Context, token string) error {
	f.refreshToken = token
	return nil
}

func (f *fakeSessionStorage) ClearAuth(context.Context) error {
	f.clearCalls++
	f.accessToken = ""
	f.refreshToken = ""
	return nil
}

type fakeAuthAPI struct {
	loginData  *models.AuthData
	loginErr   error
	logoutErr  error
	profile    *models.User
	profileErr error

	loginCalls   int
	logoutCalls  int
	profileCalls int
}

func (f *fakeAuthAPI) Login(context.Context, string, string) (*models.AuthData, error) {
	f.loginCalls++
	return f.loginData, f.loginErr
}

func (f *fakeAuthAPI) Signup(context.Context, api.SignupRequest) (*models.AuthData, error) {
	return f.loginData, f.loginErr
}

func (f *fakeAuthAPI) Logout(context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAuthAPI) GetProfile(context.Context) (*models.User, error) {
	f.profileCalls++
	return f.profile, f.profileErr
}

func (f *fakeAuthAPI) UpdateProfile(_ context.Context, patch models.UserPatch) (*models.User, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	merged := patch.Apply(*f.profile)
	return &merged, nil
}

func (f *fakeAuthAPI) ChangePassword(context.Context, string, string) error { return f.loginErr }
func (f *fakeAuthAPI) ForgotPassword(context.Context, string) error         { return f.loginErr }
func (f *fakeAuthAPI) ResetPassword(context.Context, string, string) error  { return f.loginErr }

func testUser() *models.User {
	return &models.User{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: models.RoleUser}
}

func newTestSession(auth *fakeAuthAPI) (*Session, *fakeSessionStorage) {
	storage := newFakeSessionStorage()
	return NewSession(auth, storage, logging.NewNop()), storage
}

func TestSessionLoginSuccess(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuthAPI{loginData: &models.AuthData{
		User:         *testUser(),
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}}
	sess, storage := newTestSession(auth)

	require.NoError(t, sess.Login(ctx, "alice@example.com", "secret"))

	state := sess.State()
	require.True(t, state.IsAuthenticated)
	require.NotNil(t, state.User)
	require.Equal(t, "u1", state.User.ID)
	require.False(t, state.IsLoading)
	require.Empty(t, state.Err)

	require.Equal(t, "access-1", storage.accessToken)
	require.Equal(t, "refresh-1", storage.refreshToken)
	require.Contains(t, storage.data, common.KeySession)
}

func TestSessionLoginFailureRecordsAndReturnsError(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuthAPI{loginErr: errors.New("invalid credentials")}
	sess, storage := newTestSession(auth)

	err := sess.Login(ctx, "alice@example.com", "wrong")
	require.EqualError(t, err, "invalid credentials")

	state := sess.State()
	require.False(t, state.IsAuthenticated)
	require.Nil(t, state.User)
	require.False(t, state.IsLoading)
	require.Equal(t, "invalid credentials", state.Err)
	require.Empty(t, storage.accessToken)
}

func TestSessionCheckAuthWithoutTokenSkipsNetwork(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuthAPI{profile: testUser()}
	sess, _ := newTestSession(auth)

	sess.CheckAuth(ctx)

	require.Zero(t, auth.profileCalls)
	state := sess.State()
	require.False(t, state.IsAuthenticated)
	require.Nil(t, state.User)
	require.False(t, state.IsLoading)
}

func TestSessionCheckAuthRestoresProfile(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuthAPI{profile: testUser()}
	sess, storage := newTestSession(auth)
	storage.accessToken = "stored-token"

	sess.CheckAuth(ctx)

	require.Equal(t, 1, auth.profileCalls)
	state := sess.State()
	require.True(t, state.IsAuthenticated)
	require.Equal(t, "Alice", state.User.Name)
}

func TestSessionCheckAuthRejectedClearsAuth(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuthAPI{profileErr: common.ErrUnauthorized}
	sess, storage := newTestSession(auth)
	storage.accessToken = "stale-token"

	sess.CheckAuth(ctx)

	state := sess.State()
	require.False(t, state.IsAuthenticated)
	require.Nil(t, state.User)
	require.Equal(t, 1, storage.clearCalls)
	require.Empty(t, storage.accessToken)
}

func TestSessionLogoutSurvivesRemoteFailure(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuthAPI{
		loginData: &models.AuthData{User: *testUser(), AccessToken: "a", RefreshToken: "r"},
		logoutErr: errors.New("server unreachable"),
	}
	sess, storage := newTestSession(auth)
	require.NoError(t, sess.Login(ctx, "alice@example.com", "secret"))

	sess.Logout(ctx)

	require.Equal(t, 1, auth.logoutCalls)
	state := sess.State()
	require.False(t, state.IsAuthenticated)
	require.Nil(t, state.User)
	require.Equal(t, 1, storage.clearCalls)
	require.Empty(t, storage.accessToken)
	require.Empty(t, storage.refreshToken)
}

func TestSessionUpdateUser(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuthAPI{
		loginData: &models.AuthData{User: *testUser(), AccessToken: "a", RefreshToken: "r"},
	}
	sess, storage := newTestSession(auth)
	require.NoError(t, sess.Login(ctx, "alice@example.com", "secret"))

	name := "Alice Cooper"
	sess.UpdateUser(ctx, models.UserPatch{Name: &name})

	state := sess.State()
	require.Equal(t, "Alice Cooper", state.User.Name)
	require.Equal(t, "alice@example.com", state.User.Email)

	// The merged user reaches the persisted snapshot.
	restored := NewSession(auth, storage, logging.NewNop())
	restored.RestoreSnapshot(ctx)
	require.Equal(t, "Alice Cooper", restored.State().User.Name)
}

func TestSessionUpdateUserNoOpWhenAnonymous(t *testing.T) {
	ctx := context.Background()
	sess, storage := newTestSession(&fakeAuthAPI{})

	name := "Nobody"
	sess.UpdateUser(ctx, models.UserPatch{Name: &name})

	require.Nil(t, sess.State().User)
	require.NotContains(t, storage.data, common.KeySession)
}

func TestSessionClearError(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuthAPI{loginErr: errors.New("boom")}
	sess, _ := newTestSession(auth)

	_ = sess.Login(ctx, "a@b.c", "x")
	require.Equal(t, "boom", sess.State().Err)

	sess.ClearError()
	require.Empty(t, sess.State().Err)
}

func TestSessionExpire(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuthAPI{
		loginData: &models.AuthData{User: *testUser(), AccessToken: "a", RefreshToken: "r"},
	}
	sess, _ := newTestSession(auth)
	require.NoError(t, sess.Login(ctx, "alice@example.com", "secret"))

	sess.Expire()

	state := sess.State()
	require.False(t, state.IsAuthenticated)
	require.Nil(t, state.User)
	require.Equal(t, common.ErrSessionExpired.Error(), state.Err)
}

func TestSessionRestoreSnapshot(t *testing.T) {
	ctx := context.Background()
	storage := newFakeSessionStorage()
	require.NoError(t, storage.SaveSnapshot(ctx, common.KeySession, sessionSnapshot{
		User:            testUser(),
		IsAuthenticated: true,
	}))

	sess := NewSession(&fakeAuthAPI{}, storage, logging.NewNop())
	sess.RestoreSnapshot(ctx)

	state := sess.State()
	require.True(t, state.IsAuthenticated)
	require.Equal(t, "u1", state.User.ID)
}

func TestSessionTokenExpiry(t *testing.T) {
	ctx := context.Background()
	sess, storage := newTestSession(&fakeAuthAPI{})

	_, ok := sess.TokenExpiry(ctx)
	require.False(t, ok)

	exp := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)
	storage.accessToken = signed

	got, ok := sess.TokenExpiry(ctx)
	require.True(t, ok)
	require.True(t, got.Equal(exp))

	storage.accessToken = "not-a-jwt"
	_, ok = sess.TokenExpiry(ctx)
	require.False(t, ok)
}
