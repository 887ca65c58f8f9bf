// Package auth is a thin client for the hosted platform's authentication
// service. Passwords, recovery emails and sessions are entirely the
// platform's problem; this package only speaks its REST API.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Error carries the platform's own message text, which the UI shows verbatim.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// User is the auth-service identity. Its ID doubles as the profile ID.
type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// Session is the token pair returned by a successful sign-in or code exchange.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path, bearer string, body, out any) error {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	if bearer == "" {
		bearer = c.apiKey
	}

	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

func decodeError(resp *http.Response) error {
	var payload struct {
		Message          string `json:"msg"`
		ErrorDescription string `json:"error_description"`
		Message2         string `json:"message"`
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_ = json.Unmarshal(raw, &payload)

	msg := payload.Message
	if msg == "" {
		msg = payload.ErrorDescription
	}

	if msg == "" {
		msg = payload.Message2
	}

	if msg == "" {
		msg = fmt.Sprintf("auth service returned status %d", resp.StatusCode)
	}

	return &Error{StatusCode: resp.StatusCode, Message: msg}
}

// SignIn exchanges email and password for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var session Session

	err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "",
		map[string]string{"email": email, "password": password}, &session)
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// SignOut revokes the session behind the token.
func (c *Client) SignOut(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/auth/v1/logout", token, nil, nil)
}

// SendRecovery asks the platform to email a password-recovery link that lands
// on redirectTo once the code is exchanged.
func (c *Client) SendRecovery(ctx context.Context, email, redirectTo string) error {
	path := "/auth/v1/recover"
	if redirectTo != "" {
		path += "?redirect_to=" + url.QueryEscape(redirectTo)
	}

	return c.do(ctx, http.MethodPost, path, "", map[string]string{"email": email}, nil)
}

// ExchangeCode completes an email-link flow, turning the one-time code into a
// session.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*Session, error) {
	var session Session

	err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=authorization_code", "",
		map[string]string{"auth_code": code}, &session)
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// UpdatePassword sets a new password for the user behind the token.
func (c *Client) UpdatePassword(ctx context.Context, token, newPassword string) error {
	return c.do(ctx, http.MethodPut, "/auth/v1/user", token,
		map[string]string{"password": newPassword}, nil)
}

// GetUser resolves the identity behind an access token.
func (c *Client) GetUser(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/v1/user", token, nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}
