package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const gotrueHTTPTimeout = 10 * time.Second

// GoTrueVerifier 通过 Supabase Auth 的 /auth/v1/user 接口校验访问令牌
type GoTrueVerifier struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewGoTrueVerifier(baseURL, apiKey string, client *http.Client) (*GoTrueVerifier, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" || apiKey == "" {
		return nil, fmt.Errorf("gotrue: url and api key are required")
	}
	if client == nil {
		client = &http.Client{Timeout: gotrueHTTPTimeout}
	}
	return &GoTrueVerifier{baseURL: baseURL, apiKey: apiKey, client: client}, nil
}

type gotrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (v *GoTrueVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("gotrue: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", v.apiKey)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gotrue: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden,
		resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusBadRequest:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, ErrInvalidToken
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("gotrue: unexpected status %d", resp.StatusCode)
	}

	var user gotrueUser
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&user); err != nil {
		return nil, fmt.Errorf("gotrue: decode user: %w", err)
	}
	if user.ID == "" {
		return nil, ErrInvalidToken
	}
	return &Identity{ID: user.ID, Email: user.Email}, nil
}
