package auth

import (
	"regexp"
	"slices"
	"strconv"
	"time"
)

// Authentication types.
const (
	TypeJWT    = "jwt"
	TypeBasic  = "basic"
	TypeAPIKey = "apiKey"
	TypeBearer = "bearer"
)

// Types lists the accepted authentication types.
var Types = []string{TypeJWT, TypeBasic, TypeAPIKey, TypeBearer}

// ValidType reports whether t is an accepted authentication type.
func ValidType(t string) bool {
	return slices.Contains(Types, t)
}

// DefaultExpiry applies when JWTExpiry does not parse.
const DefaultExpiry = 24 * time.Hour

// Settings is the process-wide authentication configuration.
type Settings struct {
	Enabled       bool   `json:"enabled" yaml:"enabled"`
	Type          string `json:"type" yaml:"type"`
	JWTSecret     string `json:"jwtSecret" yaml:"jwtSecret"`
	JWTExpiry     string `json:"jwtExpiry" yaml:"jwtExpiry"`
	APIKey        string `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
	AllowRegister bool   `json:"allowRegister" yaml:"allowRegister"`
}

// DefaultSettings returns the settings of a fresh server: disabled, jwt,
// no secret, 24h expiry, registration closed.
func DefaultSettings() Settings {
	return Settings{
		Type:      TypeJWT,
		JWTExpiry: "24h",
	}
}

// RegisterAllowed reports whether self-registration is open.
func (s Settings) RegisterAllowed() bool {
	return s.Enabled && s.AllowRegister
}

// Expiry returns the parsed token lifetime.
func (s Settings) Expiry() time.Duration {
	return ParseExpiry(s.JWTExpiry)
}

// SettingsPatch lists the settings to replace. Nil fields keep their value.
type SettingsPatch struct {
	Enabled       *bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Type          *string `json:"type,omitempty" yaml:"type,omitempty" validate:"omitempty,oneof=jwt basic apiKey bearer"`
	JWTSecret     *string `json:"jwtSecret,omitempty" yaml:"jwtSecret,omitempty"`
	JWTExpiry     *string `json:"jwtExpiry,omitempty" yaml:"jwtExpiry,omitempty"`
	APIKey        *string `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
	AllowRegister *bool   `json:"allowRegister,omitempty" yaml:"allowRegister,omitempty"`
}

func (p SettingsPatch) apply(s *Settings) {
	if p.Enabled != nil {
		s.Enabled = *p.Enabled
	}
	if p.Type != nil {
		s.Type = *p.Type
	}
	if p.JWTSecret != nil {
		s.JWTSecret = *p.JWTSecret
	}
	if p.JWTExpiry != nil {
		s.JWTExpiry = *p.JWTExpiry
	}
	if p.APIKey != nil {
		s.APIKey = *p.APIKey
	}
	if p.AllowRegister != nil {
		s.AllowRegister = *p.AllowRegister
	}
}

var expiryPattern = regexp.MustCompile(`^(\d+)([smhd])$`)

// ParseExpiry parses "<N><unit>" with unit s, m, h or d. Anything else,
// including values that overflow, yields DefaultExpiry.
func ParseExpiry(s string) time.Duration {
	m := expiryPattern.FindStringSubmatch(s)
	if m == nil {
		return DefaultExpiry
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return DefaultExpiry
	}

	var unit time.Duration
	switch m[2] {
	case "s":
		unit = time.Second
	case "m":
		unit = time.Minute
	case "h":
		unit = time.Hour
	case "d":
		unit = 24 * time.Hour
	}
	if n > int64(time.Duration(1<<63-1)/unit) {
		return DefaultExpiry
	}
	return time.Duration(n) * unit
}
