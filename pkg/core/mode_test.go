package core_test

import (
	"testing"

	"github.com/aretw0/pagemap/pkg/core"
)

func TestParseMode(t *testing.T) {
	cases := map[string]core.Mode{
		"development": core.ModeDevelopment,
		"dev":         core.ModeDevelopment,
		" Production": core.ModeProduction,
		"prod":        core.ModeProduction,
	}
	for in, want := range cases {
		got, err := core.ParseMode(in)
		if err != nil {
			t.Fatalf("ParseMode(%q) failed: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseMode(%q) = %q, want %q", in, got, want)
		}
	}

	if _, err := core.ParseMode("test"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestModeFromEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")
	if got := core.ModeFromEnv(); got != core.ModeDevelopment {
		t.Errorf("expected development, got %q", got)
	}

	t.Setenv("NODE_ENV", "")
	if got := core.ModeFromEnv(); got != core.ModeProduction {
		t.Errorf("expected production when NODE_ENV is unset, got %q", got)
	}
}

func TestDerivePageID(t *testing.T) {
	cases := map[string]core.PageID{
		"/project/src/pages/login.js": "login",
		"dashboard.js":                "dashboard",
		"pages/app.page.ts":           "app.page",
		"pages/README":                "README",
	}
	for in, want := range cases {
		if got := core.DerivePageID(in); got != want {
			t.Errorf("DerivePageID(%q) = %q, want %q", in, got, want)
		}
	}
}
