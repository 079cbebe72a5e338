// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// MinSecretLength is the shortest accepted HMAC secret in bytes.
const MinSecretLength = 32

// DefaultTokenExpiry is used when TokenConfig.Expiry is zero.
const DefaultTokenExpiry = 24 * time.Hour

// TokenConfig configures a TokenIssuer.
type TokenConfig struct {
	Secret   string
	Issuer   string
	Audience string
	Expiry   time.Duration
}

// Claims is the payload of a bearer token. Roles are serialized as a "role"
// array with one entry per granted role.
type Claims struct {
	Email string   `json:"email"`
	Roles []string `json:"role"`
	jwt.RegisteredClaims
}

// PrincipalID parses the subject claim.
func (c *Claims) PrincipalID() (ulid.ULID, error) {
	id, err := ulid.Parse(c.Subject)
	if err != nil {
		return ulid.ULID{}, oops.Code(CodeTokenInvalid).With("sub", c.Subject).Wrap(err)
	}
	return id, nil
}

// RoleSet returns the known roles carried by the token. Unknown names are
// dropped.
func (c *Claims) RoleSet() []Role {
	roles := make([]Role, 0, len(c.Roles))
	for _, name := range c.Roles {
		if r := Role(name); r.Valid() {
			roles = append(roles, r)
		}
	}
	return roles
}

// Token is a signed bearer token.
type Token struct {
	Value     string
	ID        string
	ExpiresAt time.Time
}

// TokenIssuer mints and verifies HS256 bearer tokens. It is stateless and
// safe for concurrent use.
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
	expiry   time.Duration
	now      func() time.Time
	parser   *jwt.Parser
}

// NewTokenIssuer validates cfg and creates a TokenIssuer. A missing or short
// secret is a configuration error. now may be nil to use time.Now.
func NewTokenIssuer(cfg TokenConfig, now func() time.Time) (*TokenIssuer, error) {
	if cfg.Secret == "" {
		return nil, oops.Code("TOKEN_SECRET_MISSING").Errorf("token signing secret is required")
	}
	if len(cfg.Secret) < MinSecretLength {
		return nil, oops.Code("TOKEN_SECRET_WEAK").
			With("min_length", MinSecretLength).
			Errorf("token signing secret must be at least %d bytes", MinSecretLength)
	}
	if cfg.Expiry < 0 {
		return nil, oops.Code("TOKEN_CONFIG_INVALID").Errorf("token expiry must not be negative")
	}
	if cfg.Expiry == 0 {
		cfg.Expiry = DefaultTokenExpiry
	}
	if now == nil {
		now = time.Now
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(0),
		jwt.WithTimeFunc(now),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	return &TokenIssuer{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		expiry:   cfg.Expiry,
		now:      now,
		parser:   jwt.NewParser(opts...),
	}, nil
}

// Issue mints a token for principal carrying one role claim per role.
func (t *TokenIssuer) Issue(principal *Principal, roles []Role) (Token, error) {
	now := t.now().UTC()
	expiresAt := now.Add(t.expiry)
	id := ulid.Make().String()

	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}

	claims := Claims{
		Email: principal.Email,
		Roles: names,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.ID.String(),
			ID:        id,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if t.audience != "" {
		claims.Audience = jwt.ClaimStrings{t.audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return Token{}, oops.Code("TOKEN_SIGN_FAILED").With("principal_id", principal.ID.String()).Wrap(err)
	}
	return Token{Value: signed, ID: id, ExpiresAt: expiresAt}, nil
}

// Verify parses raw and checks its signature, algorithm, issuer, audience
// and expiry with no clock-skew allowance.
func (t *TokenIssuer) Verify(raw string) (*Claims, error) {
	if raw == "" {
		return nil, oops.Code(CodeTokenInvalid).Errorf("token is empty")
	}

	claims := &Claims{}
	token, err := t.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	})
	if err != nil {
		return nil, oops.Code(CodeTokenInvalid).Wrap(err)
	}
	if !token.Valid {
		return nil, oops.Code(CodeTokenInvalid).Errorf("token is not valid")
	}
	return claims, nil
}
