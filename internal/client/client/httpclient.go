package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/burakkoc5/falimatik/internal/common"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// HTTPClient talks to the Falimatik REST API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Signup(ctx context.Context, reg Registration) (*SignupResult, error) {
	var res SignupResult
	if err := c.do(ctx, http.MethodPost, "/auth/signup", "", reg, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Signin(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/signin", "", body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) VerifyEmail(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/auth/verify/"+url.PathEscape(token), "", nil, nil)
}

func (c *HTTPClient) ResendVerification(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/resend-verification", "", map[string]string{"email": email}, nil)
}

func (c *HTTPClient) Me(ctx context.Context, accessToken string) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/users/me", accessToken, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) UpdateMe(ctx context.Context, accessToken string, upd ProfileUpdate) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodPut, "/users/me", accessToken, upd, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) DeleteMe(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodDelete, "/users/me", accessToken, nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path, accessToken string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	if resp.StatusCode != http.StatusOK {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
