package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseExpiry(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"30s", 30 * time.Second},
		{"15m", 15 * time.Minute},
		{"2h", 2 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
		{"0s", 0},
		{"", DefaultExpiry},
		{"1w", DefaultExpiry},
		{"h", DefaultExpiry},
		{"10 h", DefaultExpiry},
		{"-5m", DefaultExpiry},
		{"99999999999999999999d", DefaultExpiry},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseExpiry(tt.in))
		})
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.False(t, s.Enabled)
	assert.Equal(t, TypeJWT, s.Type)
	assert.Empty(t, s.JWTSecret)
	assert.Equal(t, "24h", s.JWTExpiry)
	assert.False(t, s.AllowRegister)
	assert.Equal(t, 24*time.Hour, s.Expiry())
}

func TestRegisterAllowed(t *testing.T) {
	tests := []struct {
		enabled, allow, want bool
	}{
		{false, false, false},
		{false, true, false},
		{true, false, false},
		{true, true, true},
	}
	for _, tt := range tests {
		s := Settings{Enabled: tt.enabled, AllowRegister: tt.allow}
		assert.Equal(t, tt.want, s.RegisterAllowed())
	}
}

func TestValidType(t *testing.T) {
	for _, typ := range Types {
		assert.True(t, ValidType(typ), typ)
	}
	assert.False(t, ValidType("apikey"))
	assert.False(t, ValidType("oauth"))
}
