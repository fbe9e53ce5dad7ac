package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/hygieia-health/hygieia-cli/internal/common"
	"github.com/hygieia-health/hygieia-cli/internal/logging"
	"github.com/hygieia-health/hygieia-cli/internal/models"
)

const defaultTimeout = 10 * time.Second

// RESTClient talks JSON over HTTP to the Hygieia backend. All requests run
// through the same pipeline: bearer attach, envelope decode, and the
// single refresh-and-retry on 401.
type RESTClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
	log     logging.Logger

	// onSessionExpired fires after a failed refresh has cleared local auth
	// state. The CLI analog of a hard navigation to the login page.
	onSessionExpired func()

	// newRequestID is a test seam for the X-Request-Id generator.
	newRequestID func() string
}

type Option func(*RESTClient)

// WithHTTPClient overrides the underlying HTTP client (tests, custom
// transports).
func WithHTTPClient(h *http.Client) Option {
	return func(c *RESTClient) { c.http = h }
}

// WithSessionExpiredHandler registers the callback fired when a token
// refresh is rejected and local auth state has been cleared.
func WithSessionExpiredHandler(fn func()) Option {
	return func(c *RESTClient) { c.onSessionExpired = fn }
}

// NewRESTClient constructs the shared backend client. baseURL is the API
// root, e.g. "http://localhost:5000/api".
func NewRESTClient(baseURL string, tokens TokenStore, log logging.Logger, opts ...Option) *RESTClient {
	c := &RESTClient{
		baseURL:      baseURL,
		http:         &http.Client{Timeout: defaultTimeout},
		tokens:       tokens,
		log:          log,
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call captures everything needed to (re-)issue one request. The body is
// kept as bytes so a retry after refresh can resend it unchanged.
type call struct {
	method string
	path   string
	query  url.Values
	body   []byte
}

// respEnvelope mirrors the backend's response wrapper, list variant
// included.
type respEnvelope struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Data       json.RawMessage    `json:"data"`
	Pagination *models.Pagination `json:"pagination"`
}

// do runs one request through the pipeline and decodes the envelope's data
// field into out (skipped when out is nil). The returned pagination is nil
// for single-item endpoints.
func (c *RESTClient) do(ctx context.Context, method, path string, query url.Values, body, out any) (*models.Pagination, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}
	return c.send(ctx, call{method: method, path: path, query: query, body: payload}, out, false)
}

// send issues the request once. retried marks that this call has already
// been re-issued after a refresh; it is carried explicitly per call, never
// on shared state, so one original request can trigger at most one refresh.
func (c *RESTClient) send(ctx context.Context, cl call, out any, retried bool) (*models.Pagination, error) {
	req, err := c.buildRequest(ctx, cl)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", cl.method, "path", cl.path, "error", err.Error())
		return nil, normalizeError(0, "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, normalizeError(0, "", err)
	}

	// Envelope decode is best effort on the error path: a proxy may answer
	// with a non-JSON body and we still want the status-based error.
	var env respEnvelope
	_ = json.Unmarshal(raw, &env)

	if resp.StatusCode == http.StatusUnauthorized && !retried {
		if pagination, handled, err := c.refreshAndRetry(ctx, cl, out); handled {
			return pagination, err
		}
		// No refresh token, or the refresh was rejected: fall through to the
		// normalized 401 from the original request.
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, normalizeError(resp.StatusCode, env.Message, nil)
	}
	if !env.Success {
		return nil, normalizeError(resp.StatusCode, env.Message, nil)
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return env.Pagination, nil
}

// refreshAndRetry attempts the single refresh-and-retry for cl. The second
// return reports whether the retry happened; when it is false the caller
// must surface the original 401.
func (c *RESTClient) refreshAndRetry(ctx context.Context, cl call, out any) (*models.Pagination, bool, error) {
	refreshToken, err := c.tokens.RefreshToken(ctx)
	if err != nil || refreshToken == "" {
		return nil, false, nil
	}

	accessToken, err := c.refreshAccessToken(ctx, refreshToken)
	if err != nil {
		// Fail safe to logged-out: clear every auth key and notify, rather
		// than surfacing the refresh failure to the original caller.
		c.log.Warn(ctx, "token refresh rejected, clearing session", "error", err.Error())
		if cerr := c.tokens.ClearAuth(ctx); cerr != nil {
			c.log.Error(ctx, "failed to clear auth storage", "error", cerr.Error())
		}
		if c.onSessionExpired != nil {
			c.onSessionExpired()
		}
		return nil, false, nil
	}

	if err := c.tokens.SetAccessToken(ctx, accessToken); err != nil {
		c.log.Error(ctx, "failed to store refreshed access token", "error", err.Error())
	}

	c.log.Debug(ctx, "access token refreshed, retrying request", "method", cl.method, "path", cl.path)
	pagination, err := c.send(ctx, cl, out, true)
	return pagination, true, err
}

// refreshAccessToken calls the refresh endpoint directly, outside the
// authenticated pipeline, so it can never recurse into another refresh.
func (c *RESTClient) refreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	payload, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.RequestIDHeaderName, c.newRequestID())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s", common.ErrNetwork, err.Error())
	}
	defer resp.Body.Close()

	var env respEnvelope
	if derr := json.NewDecoder(resp.Body).Decode(&env); derr != nil && resp.StatusCode == http.StatusOK {
		return "", fmt.Errorf("failed to decode refresh response: %w", derr)
	}
	if resp.StatusCode != http.StatusOK || !env.Success {
		return "", normalizeError(resp.StatusCode, env.Message, nil)
	}

	var data models.RefreshData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return "", fmt.Errorf("failed to decode refresh data: %w", err)
	}
	if data.AccessToken == "" {
		return "", fmt.Errorf("%w: refresh returned no access token", common.ErrInternal)
	}
	return data.AccessToken, nil
}

func (c *RESTClient) buildRequest(ctx context.Context, cl call) (*http.Request, error) {
	u := c.baseURL + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}

	var body io.Reader
	if cl.body != nil {
		body = bytes.NewReader(cl.body)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.RequestIDHeaderName, c.newRequestID())

	// Attach the bearer token when one is stored; requests go out bare
	// otherwise.
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		c.log.Warn(ctx, "failed to read access token", "error", err.Error())
	} else if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// Ping probes backend reachability.
func (c *RESTClient) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
	return err
}
