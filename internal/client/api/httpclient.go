package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jitensha/sharebox/internal/client/models"
	"github.com/jitensha/sharebox/internal/client/query"
	"github.com/jitensha/sharebox/internal/logging"
)

// HTTPClient is the concrete Client over net/http.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	log     logging.Logger

	mu    sync.RWMutex
	token string
}

// NewHTTPClient builds a client for the service at baseURL. A zero timeout
// leaves requests bounded only by their context.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	if log == nil {
		log = logging.NewNop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do executes one exchange and maps failures: unreachable server wraps
// ErrUnavailable, 401 wraps ErrAuthExpired, any other non-2xx becomes a
// TransportError carrying status and body. On success the raw body is
// returned.
func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values, contentType string, body io.Reader) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug(ctx, "http request", "method", method, "path", path)

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: %s", ErrAuthExpired, serverMessage(respBody))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn(ctx, "server error", "method", method, "path", path, "status", resp.StatusCode)
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Body:       respBody,
			Message:    serverMessage(respBody),
		}
	}
	return respBody, nil
}

// doJSON marshals in (when non-nil) as the request body and unmarshals the
// response into out (when non-nil).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, params url.Values, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	respBody, err := c.do(ctx, method, path, params, contentType, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// serverMessage pulls a human-readable message out of an error body. The
// service uses both "message" and "error" keys depending on the endpoint.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

func (c *HTTPClient) Register(ctx context.Context, email, password string) error {
	in := map[string]string{"email": email, "password": password}
	return c.doJSON(ctx, http.MethodPost, "/api/auth/register", nil, in, nil)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	in := map[string]string{"email": email, "password": password}
	var res LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", nil, in, &res); err != nil {
		return nil, err
	}
	if res.AccessToken != "" {
		c.SetToken(res.AccessToken)
	}
	return &res, nil
}

func (c *HTTPClient) LoginTOTP(ctx context.Context, email, code string) (*LoginResult, error) {
	in := map[string]string{"email": email, "code": code}
	var res LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login/totp", nil, in, &res); err != nil {
		return nil, err
	}
	if res.AccessToken != "" {
		c.SetToken(res.AccessToken)
	}
	return &res, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
	c.SetToken("")
	return err
}

func (c *HTTPClient) Profile(ctx context.Context) (*models.User, error) {
	var res struct {
		User *models.User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/user", nil, nil, &res); err != nil {
		return nil, err
	}
	if res.User == nil {
		return nil, errors.New("profile response missing user")
	}
	return res.User, nil
}

func (c *HTTPClient) ListFiles(ctx context.Context, q query.Query) (*models.FileListing, error) {
	params := url.Values{}
	params.Set("status", string(q.Status))
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("sortBy", string(q.SortBy))
	params.Set("order", string(q.SortDir))

	var listing models.FileListing
	if err := c.doJSON(ctx, http.MethodGet, "/api/files/my", params, nil, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (c *HTTPClient) DeleteFile(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/files/"+url.PathEscape(id), nil, nil, nil)
}

func (c *HTTPClient) Upload(ctx context.Context, contentType string, body io.Reader) ([]byte, error) {
	return c.do(ctx, http.MethodPost, "/api/files/upload", nil, contentType, body)
}

func (c *HTTPClient) ChangePassword(ctx context.Context, oldPassword, totpCode, newPassword string) error {
	in := map[string]string{"newPassword": newPassword}
	if oldPassword != "" {
		in["oldPassword"] = oldPassword
	}
	if totpCode != "" {
		in["totpCode"] = totpCode
	}
	return c.doJSON(ctx, http.MethodPost, "/api/auth/password/change", nil, in, nil)
}

func (c *HTTPClient) SetupTOTP(ctx context.Context) (*models.TOTPSetup, error) {
	var res struct {
		TOTPSetup *models.TOTPSetup `json:"totpSetup"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/totp/setup", nil, nil, &res); err != nil {
		return nil, err
	}
	if res.TOTPSetup == nil {
		return nil, errors.New("setup response missing totpSetup")
	}
	return res.TOTPSetup, nil
}

func (c *HTTPClient) VerifyTOTP(ctx context.Context, code string) error {
	in := map[string]string{"code": code}
	return c.doJSON(ctx, http.MethodPost, "/api/auth/totp/verify", nil, in, nil)
}

func (c *HTTPClient) DisableTOTP(ctx context.Context, code string) error {
	in := map[string]string{"code": code}
	return c.doJSON(ctx, http.MethodPost, "/api/auth/totp/disable", nil, in, nil)
}
