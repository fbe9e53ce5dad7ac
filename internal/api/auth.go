package api

import (
	"context"
	"net/http"

	"github.com/hygieia-health/hygieia-cli/internal/models"
)

// Login exchanges credentials for the user record and a token pair.
// Persisting the tokens is the session store's job, not the pipeline's.
func (c *RESTClient) Login(ctx context.Context, email, password string) (*models.AuthData, error) {
	body := map[string]string{"email": email, "password": password}
	var data models.AuthData
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Signup creates an account; a successful response is identical in shape to
// a login response.
func (c *RESTClient) Signup(ctx context.Context, req SignupRequest) (*models.AuthData, error) {
	var data models.AuthData
	if _, err := c.do(ctx, http.MethodPost, "/auth/signup", nil, req, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Logout asks the server to invalidate the session. Callers treat failures
// as non-fatal; local logout proceeds regardless.
func (c *RESTClient) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
	return err
}

// GetProfile fetches the authenticated user. This is the session-restore
// probe: a stored access token plus a 200 here means the session is live.
func (c *RESTClient) GetProfile(ctx context.Context) (*models.User, error) {
	var user models.User
	if _, err := c.do(ctx, http.MethodGet, "/auth/profile", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *RESTClient) UpdateProfile(ctx context.Context, patch models.UserPatch) (*models.User, error) {
	var user models.User
	if _, err := c.do(ctx, http.MethodPatch, "/auth/profile", nil, patch, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *RESTClient) ChangePassword(ctx context.Context, current, next string) error {
	body := map[string]string{"currentPassword": current, "newPassword": next}
	_, err := c.do(ctx, http.MethodPost, "/auth/change-password", nil, body, nil)
	return err
}

func (c *RESTClient) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	_, err := c.do(ctx, http.MethodPost, "/auth/forgot-password", nil, body, nil)
	return err
}

func (c *RESTClient) ResetPassword(ctx context.Context, token, password string) error {
	body := map[string]string{"token": token, "password": password}
	_, err := c.do(ctx, http.MethodPost, "/auth/reset-password", nil, body, nil)
	return err
}
