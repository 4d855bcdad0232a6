package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token codec names accepted by NewTokenCodec.
const (
	CodecHMAC   = "hmac"
	CodecLegacy = "legacy"
)

// Claims is the identity carried by a bearer token.
type Claims struct {
	Subject   string
	Username  string
	ExpiresAt time.Time
}

// TokenCodec mints and decodes three-segment bearer tokens.
type TokenCodec interface {
	Name() string
	Mint(c Claims, secret string) (string, error)
	Decode(token, secret string) (Claims, error)
}

// NewTokenCodec returns the codec registered under name.
// An empty name selects hmac.
func NewTokenCodec(name string) (TokenCodec, error) {
	switch name {
	case "", CodecHMAC:
		return HMACCodec{}, nil
	case CodecLegacy:
		return LegacyCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown token codec %q", name)
	}
}

// HMACCodec signs tokens with HS256 and rejects tokens whose signature or
// expiry does not check out.
type HMACCodec struct{}

func (HMACCodec) Name() string { return CodecHMAC }

func (HMACCodec) Mint(c Claims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      c.Subject,
		"username": c.Username,
		"exp":      c.ExpiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (HMACCodec) Decode(tokenString, secret string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	sub, _ := mc["sub"].(string)
	username, _ := mc["username"].(string)
	out := Claims{Subject: sub, Username: username}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}

// LegacyCodec produces unsigned tokens: the third segment is the base64url
// encoding of "<header>.<payload>.<secret>", and exp is in epoch
// milliseconds. Decode reads the payload without any verification.
type LegacyCodec struct{}

type legacyPayload struct {
	Sub      string `json:"sub"`
	Username string `json:"username"`
	Exp      int64  `json:"exp,omitempty"`
}

func (LegacyCodec) Name() string { return CodecLegacy }

func (LegacyCodec) Mint(c Claims, secret string) (string, error) {
	header, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(legacyPayload{
		Sub:      c.Subject,
		Username: c.Username,
		Exp:      c.ExpiresAt.UnixMilli(),
	})
	if err != nil {
		return "", err
	}

	enc := base64.RawURLEncoding
	h := enc.EncodeToString(header)
	p := enc.EncodeToString(payload)
	sig := enc.EncodeToString([]byte(h + "." + p + "." + secret))
	return h + "." + p + "." + sig, nil
}

func (LegacyCodec) Decode(token, _ string) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return Claims{}, ErrInvalidToken
	}
	raw, err := decodeSegment(parts[1])
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	var p legacyPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	out := Claims{Subject: p.Sub, Username: p.Username}
	if p.Exp > 0 {
		out.ExpiresAt = time.UnixMilli(p.Exp)
	}
	return out, nil
}

// decodeSegment accepts both URL-safe and standard base64, padded or not.
func decodeSegment(s string) ([]byte, error) {
	s = strings.TrimRight(s, "=")
	if b, err := base64.RawURLEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	if b, err := base64.RawStdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return nil, errors.New("malformed base64 segment")
}
