package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/hygieia-health/hygieia-cli/internal/common"
	"github.com/hygieia-health/hygieia-cli/internal/logging"
	"github.com/hygieia-health/hygieia-cli/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fake token store ----

type fakeTokenStore struct {
	mu           sync.Mutex
	accessToken  string
	refreshToken string

	setAccessCalls int
	clearAuthCalls int

	accessErr error
}

func (f *fakeTokenStore) AccessToken(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accessToken, f.accessErr
}

func (f *fakeTokenStore) SetAccessToken(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accessToken = token
	f.setAccessCalls++
	return nil
}

func (f *fakeTokenStore) RefreshToken(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshToken, nil
}

func (f *fakeTokenStore) ClearAuth(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accessToken = ""
	f.refreshToken = ""
	f.clearAuthCalls++
	return nil
}

// ---- helpers ----

func writeEnvelope(w http.ResponseWriter, status int, success bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	raw, _ := json.Marshal(data)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"message": message,
		"data":    json.RawMessage(raw),
	})
}

func newTestClient(t *testing.T, handler http.Handler, tokens *fakeTokenStore, opts ...Option) *RESTClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRESTClient(srv.URL, tokens, logging.NewNop(), opts...)
}

// ---- TESTS ----

func TestRESTClient_AttachesBearerWhenTokenStored(t *testing.T) {
	var gotAuth, gotRequestID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get(common.RequestIDHeaderName)
		writeEnvelope(w, http.StatusOK, true, "ok", models.User{ID: "u1"})
	})

	tokens := &fakeTokenStore{accessToken: "at-1"}
	c := newTestClient(t, handler, tokens)

	user, err := c.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "Bearer at-1", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestRESTClient_NoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, true, "ok", []models.Product{})
	})

	c := newTestClient(t, handler, &fakeTokenStore{})

	_, _, err := c.Products(context.Background(), ProductFilters{})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestRESTClient_RefreshOnceAndRetry_Succeeds(t *testing.T) {
	var profileCalls, refreshCalls int

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		profileCalls++
		if r.Header.Get("Authorization") != "Bearer at-new" {
			writeEnvelope(w, http.StatusUnauthorized, false, "token expired", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, true, "ok", models.User{ID: "u1", Email: "a@b.c"})
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		require.Empty(t, r.Header.Get("Authorization"), "refresh must bypass the authed pipeline")

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "rt-1", body["refreshToken"])

		writeEnvelope(w, http.StatusOK, true, "ok", models.RefreshData{AccessToken: "at-new"})
	})

	tokens := &fakeTokenStore{accessToken: "at-stale", refreshToken: "rt-1"}
	c := newTestClient(t, mux, tokens)

	user, err := c.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	assert.Equal(t, 1, refreshCalls, "exactly one refresh")
	assert.Equal(t, 2, profileCalls, "exactly one retry of the original request")
	assert.Equal(t, "at-new", tokens.accessToken)
}

func TestRESTClient_RetryFailsAgain_NoSecondRefresh(t *testing.T) {
	var profileCalls, refreshCalls int

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		profileCalls++
		// 401 every time, even with the fresh token
		writeEnvelope(w, http.StatusUnauthorized, false, "still unauthorized", nil)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		writeEnvelope(w, http.StatusOK, true, "ok", models.RefreshData{AccessToken: "at-new"})
	})

	tokens := &fakeTokenStore{accessToken: "at-stale", refreshToken: "rt-1"}
	c := newTestClient(t, mux, tokens)

	_, err := c.GetProfile(context.Background())
	require.ErrorIs(t, err, common.ErrUnauthorized)

	assert.Equal(t, 1, refreshCalls, "a retried request must never trigger a second refresh")
	assert.Equal(t, 2, profileCalls)
}

func TestRESTClient_401WithoutRefreshToken_FailsStraightThrough(t *testing.T) {
	var refreshCalls int

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, false, "unauthorized", nil)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
	})

	tokens := &fakeTokenStore{accessToken: "at-stale"}
	c := newTestClient(t, mux, tokens)

	_, err := c.GetProfile(context.Background())
	require.ErrorIs(t, err, common.ErrUnauthorized)

	assert.Zero(t, refreshCalls)
	assert.Zero(t, tokens.clearAuthCalls, "a missing refresh token must not wipe storage")
}

func TestRESTClient_RefreshRejected_ClearsAuthAndNotifies(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, false, "token expired", nil)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, false, "refresh token expired", nil)
	})

	var expired bool
	tokens := &fakeTokenStore{accessToken: "at-stale", refreshToken: "rt-dead"}
	c := newTestClient(t, mux, tokens, WithSessionExpiredHandler(func() { expired = true }))

	_, err := c.GetProfile(context.Background())

	// The refresh failure is swallowed; the original 401 surfaces.
	require.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Contains(t, err.Error(), "token expired")

	assert.True(t, expired)
	assert.Equal(t, 1, tokens.clearAuthCalls)
	assert.Empty(t, tokens.refreshToken)
}

func TestRESTClient_ErrorMessagePriority(t *testing.T) {
	t.Run("server message wins", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusBadRequest, false, "email already registered", nil)
		})
		c := newTestClient(t, handler, &fakeTokenStore{})

		_, err := c.Signup(context.Background(), SignupRequest{Email: "a@b.c"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "email already registered")
	})

	t.Run("non-json body falls back to generic message", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>bad gateway</html>"))
		})
		c := newTestClient(t, handler, &fakeTokenStore{})

		_, err := c.GetProfile(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), fallbackMessage)
	})

	t.Run("transport failure maps to network error", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close() // connection refused from here on
		c := NewRESTClient(srv.URL, &fakeTokenStore{}, logging.NewNop())

		_, err := c.GetProfile(context.Background())
		require.ErrorIs(t, err, common.ErrNetwork)
	})
}

func TestRESTClient_NotFound(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, false, "product not found", nil)
	})
	c := newTestClient(t, handler, &fakeTokenStore{})

	_, err := c.Product(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestRESTClient_PaginatedList(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "medicines", r.URL.Query().Get("category"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "ok",
			"data":    []models.Product{{ID: "p1"}, {ID: "p2"}},
			"pagination": models.Pagination{
				Page: 2, Limit: 2, Total: 10, TotalPages: 5, HasMore: true,
			},
		})
	})
	c := newTestClient(t, handler, &fakeTokenStore{})

	products, pagination, err := c.Products(context.Background(), ProductFilters{
		Category: models.CategoryMedicines,
		Page:     2,
	})
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.NotNil(t, pagination)
	assert.Equal(t, 5, pagination.TotalPages)
	assert.True(t, pagination.HasMore)
}

func TestRESTClient_EnvelopeFailureOn200(t *testing.T) {
	// success=false with HTTP 200 still must surface as an error.
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, false, "slot no longer available", nil)
	})
	c := newTestClient(t, handler, &fakeTokenStore{})

	_, err := c.BookAppointment(context.Background(), models.BookAppointmentRequest{DoctorID: "d1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slot no longer available")
}
