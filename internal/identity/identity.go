// Package identity turns bearer credentials into verified external identities.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every credential that cannot be verified.
var ErrInvalidToken = errors.New("invalid authentication token")

// Identity is the verified identity behind a bearer credential.
type Identity struct {
	ExternalID  string
	Email       string
	DisplayName string
	AvatarURL   string
}

// Resolver maps a bearer credential to a verified identity. It fails closed.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*Identity, error)
}

// Claims mirrors the identity-provider token payload.
type Claims struct {
	UserID  string `json:"user_id,omitempty"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// JWTResolver verifies HS256-signed tokens against a shared secret.
type JWTResolver struct {
	secret []byte
	parser *jwt.Parser
}

// JWTOptions configures optional issuer and audience checks.
type JWTOptions struct {
	Issuer   string
	Audience string
	Leeway   time.Duration
}

func NewJWTResolver(secret string, opts JWTOptions) *JWTResolver {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(opts.Leeway),
	}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}
	if opts.Audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(opts.Audience))
	}

	return &JWTResolver{
		secret: []byte(secret),
		parser: jwt.NewParser(parserOpts...),
	}
}

// Resolve verifies token and returns the identity it carries.
func (r *JWTResolver) Resolve(_ context.Context, token string) (*Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	parsed, err := r.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return r.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	uid := claims.UserID
	if uid == "" {
		uid = claims.Subject
	}
	if uid == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%w: missing email", ErrInvalidToken)
	}

	return &Identity{
		ExternalID:  uid,
		Email:       claims.Email,
		DisplayName: claims.Name,
		AvatarURL:   claims.Picture,
	}, nil
}
