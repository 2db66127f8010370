package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/logingate/internal/credentials"
)

// HTTPClient talks JSON over HTTP to the login server.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient creates a client for the server at addr. The address may be
// given with or without a scheme; "http://" is assumed when absent.
func NewHTTPClient(addr string) (*HTTPClient, error) {
	if addr == "" {
		return nil, fmt.Errorf("server address is empty")
	}
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(addr, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type authResponse struct {
	Success      bool              `json:"success"`
	Message      string            `json:"message"`
	Token        string            `json:"token"`
	ExpiresAt    string            `json:"expiresAt"`
	RefreshToken string            `json:"refreshToken"`
	Errors       map[string]string `json:"errors"`
}

func (c *HTTPClient) post(ctx context.Context, path string, body any) (*http.Response, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

func decodeAuthResponse(resp *http.Response) (*authResponse, error) {
	defer resp.Body.Close()
	var out authResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("unexpected response: %w", err)
	}
	return &out, nil
}

func parseSession(body *authResponse) (*Session, error) {
	expiresAt, err := time.Parse(time.RFC3339, body.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("unexpected expiresAt value: %w", err)
	}
	return &Session{
		AccessToken:  body.Token,
		RefreshToken: body.RefreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

// Login submits the form input. A 4xx rejection is reported through
// LoginResult, not an error, so the caller can show the server's message.
func (c *HTTPClient) Login(ctx context.Context, in credentials.Input) (*LoginResult, error) {
	resp, err := c.post(ctx, "/login", in)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusBadRequest, http.StatusUnauthorized:
		body, err := decodeAuthResponse(resp)
		if err != nil {
			return nil, err
		}
		result := &LoginResult{Success: body.Success, Message: body.Message}
		if body.Success {
			session, err := parseSession(body)
			if err != nil {
				return nil, err
			}
			result.Session = session
		}
		return result, nil
	case http.StatusTooManyRequests:
		resp.Body.Close()
		return nil, ErrTooManyRequests
	default:
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}

// Register creates an account. Per-field validation problems come back
// as credentials.FieldErrors so the caller can show them next to the form.
func (c *HTTPClient) Register(ctx context.Context, in credentials.Input) error {
	resp, err := c.post(ctx, "/register", in)
	if err != nil {
		return err
	}

	body, err := decodeAuthResponse(resp)
	if err != nil {
		return err
	}

	switch resp.StatusCode {
	case http.StatusCreated:
		return nil
	case http.StatusBadRequest:
		if len(body.Errors) > 0 {
			return credentials.FieldErrors(body.Errors)
		}
		return fmt.Errorf("%s", body.Message)
	default:
		return fmt.Errorf("%s", body.Message)
	}
}

// Refresh exchanges a refresh token for a fresh session. An unknown or
// expired token yields ErrUnauthorized.
func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	resp, err := c.post(ctx, "/refresh", map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := decodeAuthResponse(resp)
		if err != nil {
			return nil, err
		}
		return parseSession(body)
	case http.StatusUnauthorized:
		resp.Body.Close()
		return nil, ErrUnauthorized
	default:
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}

// Logout revokes a refresh token server-side.
func (c *HTTPClient) Logout(ctx context.Context, refreshToken string) error {
	resp, err := c.post(ctx, "/logout", map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Ping checks server liveness.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

// Close releases idle connections.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
