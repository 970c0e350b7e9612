package campus

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"academic-scheduler/internal/ports/auth"
)

var ErrTokenEmpty = errors.New("token is empty")

// Verifier implementa auth.AuthVerifier contra el SSO del campus.
// Se instancia desde main/router cuando CAMPUS_SSO_URL está configurado.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	claims, err := v.client.VerifyToken(ctx, token)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("campus verify failed: %w", err)
	}

	claims.UserID = strings.TrimSpace(claims.UserID)
	if claims.UserID == "" {
		return auth.Claims{}, errors.New("campus claims missing user id")
	}
	if !auth.ValidRole(claims.Role) {
		return auth.Claims{}, fmt.Errorf("campus claims carry unknown role %q", claims.Role)
	}

	return claims, nil
}
