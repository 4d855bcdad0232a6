package main

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/mockario/mockario/pkg/cli"
	"github.com/mockario/mockario/pkg/config"
	"github.com/mockario/mockario/pkg/engine"
)

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"mockario": cli.Main,
	}))
}

func TestScripts(t *testing.T) {
	cfg := config.DefaultServerConfiguration()
	cfg.PasswordHasher = "legacy"
	srv, err := engine.NewServer(cfg)
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	testscript.Run(t, testscript.Params{
		Dir: filepath.Join("testdata", "script"),
		Setup: func(env *testscript.Env) error {
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(env.WorkDir, ".config"))
			env.Setenv("MOCKARIO_SERVER_URL", ts.URL)
			return nil
		},
	})
}
