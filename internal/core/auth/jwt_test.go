package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTer() *JWTer {
	return &JWTer{Secret: []byte("test-secret"), Issuer: "restaurant-admin", TTL: time.Hour}
}

func TestIssueAndParse(t *testing.T) {
	j := newJWTer()
	tok, err := j.Issue("1", "admin")
	require.NoError(t, err)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "1", c.UID)
	assert.Equal(t, "admin", c.Role)
	assert.Equal(t, "restaurant-admin", c.Issuer)
}

func TestParseRejects(t *testing.T) {
	j := newJWTer()

	expired := &JWTer{Secret: j.Secret, Issuer: j.Issuer, TTL: -time.Hour}
	old, err := expired.Issue("1", "admin")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("other"), Issuer: j.Issuer, TTL: time.Hour}
	forged, err := other.Issue("1", "admin")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UID: "1", Role: "admin"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, tok := range map[string]string{"expired": old, "wrong secret": forged, "alg none": none, "garbage": "x.y.z"} {
		t.Run(name, func(t *testing.T) {
			_, err := j.Parse(tok)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
