package config

import (
	"errors"
	"fmt"

	"github.com/mockario/mockario/pkg/auth"
	"github.com/mockario/mockario/pkg/endpoint"
)

// Seed is the content of one seed file.
type Seed struct {
	// Endpoints are created in order; duplicates of an existing
	// (method, path) pair are skipped.
	Endpoints []endpoint.Input `json:"endpoints,omitempty" yaml:"endpoints,omitempty"`
	// Auth is merged into the authentication settings before users and
	// endpoints are applied.
	Auth *auth.SettingsPatch `json:"auth,omitempty" yaml:"auth,omitempty"`
	// Users are created with the server's password hasher.
	Users []SeedUser `json:"users,omitempty" yaml:"users,omitempty" validate:"dive"`

	// Source is the file the seed was read from.
	Source string `json:"-" yaml:"-"`
}

// SeedUser is a user declared in a seed file.
type SeedUser struct {
	Username string `json:"username" yaml:"username" validate:"required"`
	Password string `json:"password" yaml:"password" validate:"required"`
}

// ApplyResult summarizes what Apply changed.
type ApplyResult struct {
	Endpoints int
	Users     int
	// Skipped lists "METHOD /path" entries and usernames that already existed.
	Skipped []string
}

// Apply loads seed into the registry and the auth manager. Settings go
// first so that enabling authentication provisions the built-in endpoints
// before seed endpoints are considered.
func Apply(seed *Seed, endpoints *endpoint.Registry, authMgr *auth.Manager) (ApplyResult, error) {
	var res ApplyResult
	if seed == nil {
		return res, nil
	}

	if seed.Auth != nil {
		if _, err := authMgr.UpdateSettings(*seed.Auth); err != nil {
			return res, fmt.Errorf("%s: auth: %w", seed.Source, err)
		}
	}

	for _, u := range seed.Users {
		_, err := authMgr.Users().Create(u.Username, u.Password)
		switch {
		case errors.Is(err, auth.ErrUserExists):
			res.Skipped = append(res.Skipped, u.Username)
		case err != nil:
			return res, fmt.Errorf("%s: user %q: %w", seed.Source, u.Username, err)
		default:
			res.Users++
		}
	}

	for _, in := range seed.Endpoints {
		if _, created := endpoints.CreateIfAbsent(in); !created {
			res.Skipped = append(res.Skipped, in.Method+" "+endpoint.NormalizePath(in.Path))
			continue
		}
		res.Endpoints++
	}
	return res, nil
}
