package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Settings describes a project. It is read from pagemap.yaml; every field
// has a default matching a conventional multi-page layout.
type Settings struct {
	Root           string            `json:"root" yaml:"root" validate:"required"`
	Pattern        string            `json:"pattern" yaml:"pattern" validate:"required"`
	Recursive      bool              `json:"recursive" yaml:"recursive"`
	FollowSymlinks bool              `json:"followSymlinks" yaml:"followSymlinks"`
	MaxDepth       int               `json:"maxDepth" yaml:"maxDepth" validate:"gte=1,lte=256"`
	Excludes       []string          `json:"excludes,omitempty" yaml:"excludes,omitempty"`
	Template       string            `json:"template" yaml:"template" validate:"required"`
	OutputDir      string            `json:"outputDir" yaml:"outputDir" validate:"required"`
	PublicPath     string            `json:"publicPath" yaml:"publicPath" validate:"required"`
	Alias          map[string]string `json:"alias,omitempty" yaml:"alias,omitempty"`
	Extensions     []string          `json:"extensions" yaml:"extensions" validate:"dive,startswith=."`
	InlineLimit    int               `json:"inlineLimit" yaml:"inlineLimit" validate:"gte=0"`
	DevServer      DevServerSettings `json:"devServer" yaml:"devServer"`
}

// DevServerSettings configures the development server collaborator.
type DevServerSettings struct {
	Host            string `json:"host" yaml:"host" validate:"required"`
	Port            int    `json:"port" yaml:"port" validate:"gte=1,lte=65535"`
	Open            bool   `json:"open" yaml:"open"`
	Hot             bool   `json:"hot" yaml:"hot"`
	Compress        bool   `json:"compress" yaml:"compress"`
	HistoryFallback string `json:"historyFallback" yaml:"historyFallback" validate:"required,startswith=/"`
}

// DefaultSettings returns the settings used when no pagemap.yaml exists.
func DefaultSettings() Settings {
	return Settings{
		Root:       "src/pages",
		Pattern:    "*.js",
		MaxDepth:   32,
		Template:   "index.html",
		OutputDir:  "dist",
		PublicPath: "/",
		Alias: map[string]string{
			"vue$":       "vue/dist/vue.esm.js",
			"components": "src/components",
		},
		Extensions:  []string{".js", ".vue", ".json"},
		InlineLimit: 10000,
		DevServer: DevServerSettings{
			Host:            "localhost",
			Port:            2012,
			Open:            true,
			Hot:             true,
			Compress:        true,
			HistoryFallback: "/index.html",
		},
	}
}

var validate = validator.New()

// Validate checks the settings and reports every failing field.
func (s Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid settings: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
}

// Resolve returns a copy with project-relative paths anchored at dir.
// Alias targets are anchored only when they point inside the project
// (they start with "./" or "src/"); package aliases are kept as is.
func (s Settings) Resolve(dir string) Settings {
	out := s
	out.Root = anchor(dir, s.Root)
	out.Template = anchor(dir, s.Template)
	out.OutputDir = anchor(dir, s.OutputDir)
	if s.Alias != nil {
		out.Alias = make(map[string]string, len(s.Alias))
		for k, v := range s.Alias {
			if strings.HasPrefix(v, "./") || strings.HasPrefix(v, "src/") {
				v = anchor(dir, v)
			}
			out.Alias[k] = v
		}
	}
	return out
}

func anchor(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, filepath.FromSlash(p))
}
