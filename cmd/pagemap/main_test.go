package main

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildBinary builds the pagemap binary into dir and returns its path.
func buildBinary(t *testing.T, dir string) string {
	t.Helper()
	bin := filepath.Join(dir, "pagemap.exe")
	cmd := exec.Command("go", "build", "-o", bin, ".")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build pagemap: %s", out)
	return bin
}

// run executes bin in dir. Stdout is returned on success, stderr on failure.
func run(t *testing.T, dir, bin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(bin, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "NODE_ENV=")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return stderr.String(), err
	}
	return stdout.String(), nil
}

func setupProject(t *testing.T, pages ...string) string {
	t.Helper()
	dir := t.TempDir()
	pagesDir := filepath.Join(dir, "src", "pages")
	require.NoError(t, os.MkdirAll(pagesDir, 0755))
	for _, p := range pages {
		require.NoError(t, os.WriteFile(filepath.Join(pagesDir, p), []byte("// page\n"), 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<div id=\"app\"></div>\n"), 0644))
	return dir
}

func TestCLI(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping CLI build in short mode")
	}
	bin := buildBinary(t, t.TempDir())

	t.Run("init writes settings once", func(t *testing.T) {
		dir := setupProject(t)

		out, err := run(t, dir, bin, "init")
		require.NoError(t, err, out)
		assert.FileExists(t, filepath.Join(dir, "pagemap.yaml"))

		out, err = run(t, dir, bin, "init")
		require.Error(t, err)
		assert.Contains(t, out, "already exists")
	})

	t.Run("pages lists ids", func(t *testing.T) {
		dir := setupProject(t, "login.js", "dashboard.js", "notes.txt")

		out, err := run(t, dir, bin, "pages", "--json")
		require.NoError(t, err, out)

		var targets map[string]string
		require.NoError(t, json.Unmarshal([]byte(out), &targets))
		assert.Len(t, targets, 2)
		assert.Equal(t, filepath.Join(dir, "src", "pages", "login.js"), targets["login"])
	})

	t.Run("build writes production config", func(t *testing.T) {
		dir := setupProject(t, "login.js", "dashboard.js")

		out, err := run(t, dir, bin, "build", "--mode", "production", "--out", "dist/pagemap.json")
		require.NoError(t, err, out)

		data, err := os.ReadFile(filepath.Join(dir, "dist", "pagemap.json"))
		require.NoError(t, err)

		var cfg struct {
			Mode      string            `json:"mode"`
			Entry     map[string]string `json:"entry"`
			Documents []struct {
				OutputFilename string   `json:"outputFilename"`
				AllowedChunks  []string `json:"allowedChunks"`
			} `json:"documents"`
		}
		require.NoError(t, json.Unmarshal(data, &cfg))
		assert.Equal(t, "production", cfg.Mode)
		assert.Len(t, cfg.Entry, 2)
		require.Len(t, cfg.Documents, 2)
		assert.Equal(t, "dashboard.html", cfg.Documents[0].OutputFilename)
		assert.Equal(t, []string{"dashboard"}, cfg.Documents[0].AllowedChunks)
	})

	t.Run("build prints yaml", func(t *testing.T) {
		dir := setupProject(t, "about.js")

		out, err := run(t, dir, bin, "build", "--mode", "dev", "--format", "yaml")
		require.NoError(t, err, out)
		assert.Contains(t, out, "mode: development")
		assert.Contains(t, out, "outputFilename: about.html")
	})

	t.Run("missing template fails", func(t *testing.T) {
		dir := setupProject(t, "about.js")
		require.NoError(t, os.Remove(filepath.Join(dir, "index.html")))

		out, err := run(t, dir, bin, "build")
		require.Error(t, err)
		assert.Contains(t, out, "not found")
	})

	t.Run("version", func(t *testing.T) {
		out, err := run(t, t.TempDir(), bin, "version")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "pagemap version "))
	})
}
