package campus

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"academic-scheduler/internal/platform/httpclient"
	"academic-scheduler/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("campus sso client not configured")
	ErrUnauthorized  = errors.New("campus sso unauthorized")
	ErrUpstream      = errors.New("campus sso upstream error")
)

// Config del cliente del SSO del campus. BaseURL y APIKey normalmente
// vienen de env vars (CAMPUS_SSO_URL, CAMPUS_SSO_API_KEY).
type Config struct {
	BaseURL string
	APIKey  string

	// Header de la API key; si está vacío se usa "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

// ConfigFromEnv arma la config desde el entorno del proceso.
func ConfigFromEnv() Config {
	return Config{
		BaseURL: os.Getenv("CAMPUS_SSO_URL"),
		APIKey:  os.Getenv("CAMPUS_SSO_API_KEY"),
	}
}

type Client struct {
	apiKey       string
	apiKeyHeader string
	http         *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	header := strings.TrimSpace(cfg.APIKeyHeader)
	if header == "" {
		header = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: header,
		http:         hc,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.apiKey != ""
}

// VerifyToken consulta al SSO del campus y devuelve los claims del token
// (incluido el rol académico, que el núcleo usa para autorizar transiciones).
func (c *Client) VerifyToken(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	const verifyPath = "/v1/tokens/verify"

	var resp struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
		Email  string `json:"email"`
	}

	err := c.http.DoJSON(ctx, http.MethodPost, verifyPath,
		map[string]string{c.apiKeyHeader: c.apiKey},
		map[string]string{"token": token},
		&resp,
	)
	if err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) && (he.StatusCode == http.StatusUnauthorized || he.StatusCode == http.StatusForbidden) {
			return auth.Claims{}, ErrUnauthorized
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return auth.Claims{
		UserID: strings.TrimSpace(resp.UserID),
		Role:   auth.Role(strings.TrimSpace(resp.Role)),
		Email:  strings.TrimSpace(resp.Email),
	}, nil
}
