package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACCodec_RoundTrip(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := HMACCodec{}.Mint(Claims{Subject: "u1", Username: "alice", ExpiresAt: exp}, "s3cret")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := HMACCodec{}.Decode(token, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, exp.Equal(claims.ExpiresAt))
}

func TestHMACCodec_RejectsWrongSecret(t *testing.T) {
	token, err := HMACCodec{}.Mint(Claims{Subject: "u1", ExpiresAt: time.Now().Add(time.Hour)}, "one")
	require.NoError(t, err)

	_, err = HMACCodec{}.Decode(token, "two")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHMACCodec_RejectsExpired(t *testing.T) {
	token, err := HMACCodec{}.Mint(Claims{Subject: "u1", ExpiresAt: time.Now().Add(-time.Hour)}, "key")
	require.NoError(t, err)

	_, err = HMACCodec{}.Decode(token, "key")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHMACCodec_RejectsGarbage(t *testing.T) {
	_, err := HMACCodec{}.Decode("not-a-token", "key")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLegacyCodec_Shape(t *testing.T) {
	exp := time.UnixMilli(1700000000123)
	token, err := LegacyCodec{}.Mint(Claims{Subject: "u1", Username: "bob", ExpiresAt: exp}, "key")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	var p map[string]any
	require.NoError(t, json.Unmarshal(payload, &p))
	assert.Equal(t, "u1", p["sub"])
	assert.Equal(t, "bob", p["username"])
	assert.EqualValues(t, 1700000000123, p["exp"])

	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	require.NoError(t, err)
	assert.Equal(t, parts[0]+"."+parts[1]+".key", string(sig))
}

func TestLegacyCodec_DecodeIgnoresSignature(t *testing.T) {
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"7","username":"eve"}`))
	claims, err := LegacyCodec{}.Decode("x."+payload+".whatever", "")
	require.NoError(t, err)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, "eve", claims.Username)
	assert.True(t, claims.ExpiresAt.IsZero())

	std := base64.StdEncoding.EncodeToString([]byte(`{"sub":"8"}`))
	claims, err = LegacyCodec{}.Decode("x."+std+".y", "")
	require.NoError(t, err)
	assert.Equal(t, "8", claims.Subject)
}

func TestLegacyCodec_DecodeErrors(t *testing.T) {
	for _, token := range []string{"single", "a.!!!.c", "a." + base64.RawURLEncoding.EncodeToString([]byte("nope")) + ".c"} {
		_, err := LegacyCodec{}.Decode(token, "")
		assert.ErrorIs(t, err, ErrInvalidToken, token)
	}
}

func TestNewTokenCodec(t *testing.T) {
	c, err := NewTokenCodec("")
	require.NoError(t, err)
	assert.Equal(t, CodecHMAC, c.Name())

	c, err = NewTokenCodec(CodecLegacy)
	require.NoError(t, err)
	assert.Equal(t, CodecLegacy, c.Name())

	_, err = NewTokenCodec("rsa")
	assert.Error(t, err)
}
