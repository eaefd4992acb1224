package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pageza/recipify/backend/internal/types"
)

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrAuthUnavailable = errors.New("authentication service unavailable")
)

// SupabaseVerifier resolves bearer tokens against the Supabase auth API
type SupabaseVerifier struct {
	baseURL string
	anonKey string
	client  *http.Client
}

// NewSupabaseVerifier creates a new SupabaseVerifier. A nil client gets a
// 10 second timeout.
func NewSupabaseVerifier(baseURL, anonKey string, client *http.Client) *SupabaseVerifier {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &SupabaseVerifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		client:  client,
	}
}

// Verify calls GET /auth/v1/user with the caller's token
func (v *SupabaseVerifier) Verify(ctx context.Context, token string) (*types.Identity, error) {
	if v.baseURL == "" || v.anonKey == "" {
		return nil, fmt.Errorf("%w: supabase is not configured", ErrAuthUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", v.anonKey)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, ErrInvalidToken
	default:
		return nil, fmt.Errorf("%w: supabase returned %d", ErrAuthUnavailable, resp.StatusCode)
	}

	var identity types.Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("%w: decode user: %v", ErrInvalidToken, err)
	}
	if identity.ID == "" {
		return nil, ErrInvalidToken
	}
	return &identity, nil
}

// supabaseClaims are the claims Supabase puts in its access tokens
type supabaseClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTVerifier validates Supabase access tokens locally with the project's
// HS256 secret, avoiding a network round trip per request.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a new JWTVerifier
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify checks signature and expiry and returns the subject as identity
func (v *JWTVerifier) Verify(ctx context.Context, token string) (*types.Identity, error) {
	if len(v.secret) == 0 {
		return nil, fmt.Errorf("%w: jwt secret is not configured", ErrAuthUnavailable)
	}

	var claims supabaseClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return &types.Identity{ID: claims.Subject, Email: claims.Email}, nil
}
