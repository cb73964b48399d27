package platform_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/pagemap/internal/platform"
	"github.com/aretw0/pagemap/pkg/core"
)

// setupProject writes a minimal multi-page project and returns its directory.
func setupProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestGenerate(t *testing.T) {
	dir := setupProject(t, map[string]string{
		"index.html":             "<!doctype html><div id=app></div>",
		"src/pages/login.js":     "",
		"src/pages/dashboard.js": "",
	})

	cfg, err := platform.Generate(context.Background(), dir, core.ModeDevelopment)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(cfg.Entry) != 2 || len(cfg.Documents) != 2 {
		t.Fatalf("expected 2 entries and 2 documents, got %d and %d", len(cfg.Entry), len(cfg.Documents))
	}
	if want := filepath.Join(dir, "src", "pages", "login.js"); cfg.Entry["login"] != want {
		t.Errorf("expected login entry %s, got %s", want, cfg.Entry["login"])
	}
	for _, d := range cfg.Documents {
		if d.TemplatePath != filepath.Join(dir, "index.html") {
			t.Errorf("unexpected template %s", d.TemplatePath)
		}
	}
	if cfg.Output.Path != filepath.Join(dir, "dist") {
		t.Errorf("unexpected output path %s", cfg.Output.Path)
	}
}

func TestGenerate_Errors(t *testing.T) {
	t.Run("Missing Template", func(t *testing.T) {
		dir := setupProject(t, map[string]string{"src/pages/login.js": ""})
		_, err := platform.Generate(context.Background(), dir, core.ModeProduction)
		if !errors.Is(err, core.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Missing Page Root", func(t *testing.T) {
		dir := setupProject(t, map[string]string{"index.html": ""})
		_, err := platform.Generate(context.Background(), dir, core.ModeProduction)
		if !errors.Is(err, core.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Collision", func(t *testing.T) {
		dir := setupProject(t, map[string]string{
			"index.html":               "",
			"src/pages/home/index.js":  "",
			"src/pages/about/index.js": "",
		})
		_, err := platform.Generate(context.Background(), dir, core.ModeProduction, platform.WithRecursive(true))
		if !errors.Is(err, core.ErrCollision) {
			t.Errorf("expected ErrCollision, got %v", err)
		}
	})
}

func TestOptionsOverrideSettings(t *testing.T) {
	dir := setupProject(t, map[string]string{
		"shell.html":          "",
		"src/pages/a.ts":      "",
		"src/pages/b.js":      "",
		"src/pages/legacy.ts": "",
		platform.SettingsFile: "pattern: \"*.js\"\n",
	})

	p, err := platform.Open(dir,
		platform.WithPattern("*.ts"),
		platform.WithTemplate("shell.html"),
		platform.WithExcludes("legacy.*"),
	)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	pages, err := p.Pages(context.Background())
	if err != nil {
		t.Fatalf("Pages failed: %v", err)
	}
	if len(pages) != 1 || pages[0].ID != "a" {
		t.Errorf("expected only page a, got %+v", pages)
	}
	if p.Settings.Template != filepath.Join(dir, "shell.html") {
		t.Errorf("expected template option to win, got %s", p.Settings.Template)
	}
}

type staticSource struct{}

func (staticSource) Discover(ctx context.Context) ([]core.Page, error) {
	return []core.Page{{ID: "home", Source: "/virtual/home.js"}}, nil
}

func (staticSource) Template(ctx context.Context) (string, error) {
	return "/virtual/index.html", nil
}

func TestWithSource(t *testing.T) {
	cfg, err := platform.Generate(context.Background(), t.TempDir(), core.ModeProduction, platform.WithSource(staticSource{}))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if cfg.Entry["home"] != "/virtual/home.js" {
		t.Errorf("expected injected source to be used, got %v", cfg.Entry)
	}
}
