package token

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/identityx/identityx-api/internal/model"
)

// Issuer is the fixed issuer claim carried by every access token.
const Issuer = "IdentityX"

// Claims represents the access token claim set.
type Claims struct {
	jwt.RegisteredClaims
	Username    string   `json:"username"`
	Authorities []string `json:"authorities"`
}

// JWT implements model.TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	accessTTL time.Duration
}

// NewJWT creates a new JWT token manager with the provided secret key and
// access token lifetime.
func NewJWT(secretKey string, accessTTL time.Duration) *JWT {
	return &JWT{secretKey: secretKey, accessTTL: accessTTL}
}

var _ model.TokenManager = (*JWT)(nil)

// GenerateAccessToken builds and signs an access token for the user. The
// subject is the public user ID and the authorities claim is always present,
// even when the list is empty.
func (j *JWT) GenerateAccessToken(user model.User, authorities []string) (string, error) {
	if authorities == nil {
		authorities = []string{}
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   user.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTTL)),
		},
		Username:    user.Username,
		Authorities: authorities,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// ValidateAccessToken verifies the token and its claims. Checks run in a
// fixed order and the first failure wins: signature, subject, username
// claim, expiry, issuer, authorities claim. Parse and decode errors never
// escape; they are collapsed to an invalid result with Reason set for logs.
func (j *JWT) ValidateAccessToken(tokenString string) model.TokenValidation {
	if strings.TrimSpace(tokenString) == "" {
		return invalid("token is empty")
	}

	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	_, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return invalid(fmt.Sprintf("failed to parse token: %s", err))
	}

	if claims.Subject == "" {
		return invalid("subject claim is missing")
	}
	if claims.Username == "" {
		return invalid("username claim is missing")
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return invalid("token is expired")
	}
	if claims.Issuer != Issuer {
		return invalid(fmt.Sprintf("invalid issuer: %s", claims.Issuer))
	}
	if claims.Authorities == nil {
		return invalid("authorities claim is missing")
	}

	return model.TokenValidation{
		Valid:       true,
		Username:    claims.Username,
		Authorities: claims.Authorities,
	}
}

func invalid(reason string) model.TokenValidation {
	return model.TokenValidation{Valid: false, Reason: reason}
}
