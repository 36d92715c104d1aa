package security

import (
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity is the consumed current-user shape: a stable id, a display
// name and the admin flag. Everything else about authentication lives
// outside this service.
//
// UserID must not be tagged "sub": the embedded RegisteredClaims.Subject
// sits at the same depth with that name, and encoding/json drops
// conflicting fields instead of picking one. The id travels as the
// standard subject claim plus a "uid" mirror.
type Identity struct {
	UserID string `json:"uid"`
	Name   string `json:"name"`
	Admin  bool   `json:"admin"`
}

type IdentityClaims struct {
	Identity
	jwt.RegisteredClaims
}

// CreateIdentityToken mints an HS256 token carrying an Identity.
func CreateIdentityToken(identity *Identity, base64Secret string, expiresInSeconds int64) (string, error) {
	secretBytes, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return "", err
	}

	claims := IdentityClaims{
		Identity: *identity,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    "kintai",
			Subject:   identity.UserID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expiresInSeconds) * time.Second)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretBytes)
}

// ParseIdentityToken validates a token and extracts the Identity.
func ParseIdentityToken(tokenStr string, jwtSecret []byte) (*Identity, error) {
	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	return &claims.Identity, nil
}
