package config_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/pagemap/pkg/config"
	"github.com/aretw0/pagemap/pkg/core"
)

func TestEncode_JSONShape(t *testing.T) {
	cfg, err := config.Assemble(testPlan(t, core.ModeDevelopment), testSettings())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, config.Encode(&buf, cfg, config.FormatJSON))

	var doc struct {
		Entry     map[string]string `json:"entry"`
		Documents []struct {
			OutputFilename string          `json:"outputFilename"`
			TemplatePath   string          `json:"templatePath"`
			AllowedChunks  []string        `json:"allowedChunks"`
			Minify         map[string]bool `json:"minify"`
		} `json:"documents"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "/app/src/pages/login.js", doc.Entry["login"])
	require.Len(t, doc.Documents, 2)
	assert.Equal(t, "dashboard.html", doc.Documents[0].OutputFilename)
	assert.Equal(t, []string{"dashboard"}, doc.Documents[0].AllowedChunks)
	assert.Equal(t, "/app/index.html", doc.Documents[0].TemplatePath)
	assert.Equal(t, map[string]bool{
		"collapseWhitespace":    true,
		"removeComments":        true,
		"removeAttributeQuotes": true,
	}, doc.Documents[0].Minify)
	assert.Contains(t, buf.String(), `"[name].js"`, "html escaping must be off")
}

func TestEncode_YAML(t *testing.T) {
	cfg, err := config.Assemble(testPlan(t, core.ModeProduction), testSettings())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, config.Encode(&buf, cfg, config.FormatYAML))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "production", doc["mode"])
	assert.Equal(t, "source-map", doc["devtool"])
	assert.NotContains(t, doc, "devServer")
}

func TestWriteFile_Atomic(t *testing.T) {
	cfg, err := config.Assemble(testPlan(t, core.ModeDevelopment), testSettings())
	require.NoError(t, err)

	dir := t.TempDir()
	target := filepath.Join(dir, "build", "pagemap.config.json")
	require.NoError(t, config.WriteFile(target, cfg, config.FormatFromPath(target)))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{"))

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestParseFormat(t *testing.T) {
	f, err := config.ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, config.FormatYAML, f)

	_, err = config.ParseFormat("toml")
	assert.Error(t, err)

	assert.Equal(t, config.FormatYAML, config.FormatFromPath("out/config.yaml"))
	assert.Equal(t, config.FormatJSON, config.FormatFromPath("out/config"))
}
