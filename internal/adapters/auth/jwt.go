package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/renato0307/spotter/internal/domain"
	"github.com/renato0307/spotter/internal/ports"
)

// JWTProvider resolves coaches from HMAC-signed bearer tokens.
// The "sub" claim is the user ID.
type JWTProvider struct {
	secret []byte
}

// Verify interface compliance at compile time
var _ ports.IdentityProvider = (*JWTProvider)(nil)

// NewJWTProvider creates a provider validating tokens with secret
func NewJWTProvider(secret string) (*JWTProvider, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &JWTProvider{secret: []byte(secret)}, nil
}

// Identify implements ports.IdentityProvider.Identify
func (p *JWTProvider) Identify(_ context.Context, tokenString string) (domain.Identity, error) {
	if tokenString == "" {
		return domain.Identity{}, domain.ErrUnauthenticated
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Identity{}, fmt.Errorf("%w: invalid token payload", domain.ErrUnauthenticated)
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return domain.Identity{}, fmt.Errorf("%w: token has no subject", domain.ErrUnauthenticated)
	}

	email, _ := claims["email"].(string)
	return domain.Identity{UserID: subject, Email: email}, nil
}

// Mint signs a token for userID valid for ttl
func (p *JWTProvider) Mint(userID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	if email != "" {
		claims["email"] = email
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}
