package security

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityTokenRoundTrip(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")
	b64 := base64.StdEncoding.EncodeToString(secret)

	token, err := CreateIdentityToken(&Identity{
		UserID: "user-42",
		Name:   "Aiko Tanaka",
		Admin:  true,
	}, b64, 3600)
	require.NoError(t, err)

	identity, err := ParseIdentityToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-42", identity.UserID)
	assert.Equal(t, "Aiko Tanaka", identity.Name)
	assert.True(t, identity.Admin)
}

// The payload must carry the subject claim itself. Identity used to tag
// UserID as "sub", which collided with the embedded RegisteredClaims
// field of the same name and made encoding/json drop both.
func TestTokenPayloadCarriesSubject(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")
	b64 := base64.StdEncoding.EncodeToString(secret)

	token, err := CreateIdentityToken(&Identity{UserID: "user-42"}, b64, 3600)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var claims map[string]any
	require.NoError(t, json.Unmarshal(payload, &claims))
	assert.Equal(t, "user-42", claims["sub"])
	assert.Equal(t, "user-42", claims["uid"])
}

func TestParseRejectsWrongSecret(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")
	b64 := base64.StdEncoding.EncodeToString(secret)

	token, err := CreateIdentityToken(&Identity{UserID: "user-42"}, b64, 3600)
	require.NoError(t, err)

	_, err = ParseIdentityToken(token, []byte("another-secret-another-secret-00"))
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")
	b64 := base64.StdEncoding.EncodeToString(secret)

	token, err := CreateIdentityToken(&Identity{UserID: "user-42"}, b64, -60)
	require.NoError(t, err)

	_, err = ParseIdentityToken(token, secret)
	assert.Error(t, err)
}
