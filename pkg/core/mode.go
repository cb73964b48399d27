package core

import (
	"fmt"
	"os"
	"strings"
)

// Mode selects the development or production variant of the build.
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// ParseMode accepts "development"/"dev" and "production"/"prod".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "development", "dev":
		return ModeDevelopment, nil
	case "production", "prod":
		return ModeProduction, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// ModeFromEnv reads NODE_ENV. Anything other than "development" is a
// production build.
func ModeFromEnv() Mode {
	if os.Getenv("NODE_ENV") == string(ModeDevelopment) {
		return ModeDevelopment
	}
	return ModeProduction
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeDevelopment || m == ModeProduction
}

// SourceMap names the devtool strategy used for source maps.
type SourceMap string

const (
	// SourceMapInline embeds cheap maps in the evaluated modules.
	SourceMapInline SourceMap = "cheap-module-eval-source-map"
	// SourceMapExternal writes a separate .map artifact per bundle.
	SourceMapExternal SourceMap = "source-map"
)

// Augmentation holds the mode-dependent settings applied once around the
// per-page targets. It never changes the targets themselves.
type Augmentation struct {
	BundleFilename string    `json:"bundleFilename" yaml:"bundleFilename"`
	StyleFilename  string    `json:"styleFilename" yaml:"styleFilename"`
	SourceMap      SourceMap `json:"sourceMap" yaml:"sourceMap"`
	LiveReload     bool      `json:"liveReload" yaml:"liveReload"`
	NoEmitOnErrors bool      `json:"noEmitOnErrors" yaml:"noEmitOnErrors"`
	CleanOutput    bool      `json:"cleanOutput" yaml:"cleanOutput"`
	Minimize       bool      `json:"minimize" yaml:"minimize"`
}

// AugmentationFor returns the augmentation for mode.
// Production builds hash bundle names for cache busting and emit external
// source maps; development builds get live reload and skip emission on
// compile errors.
func AugmentationFor(mode Mode) Augmentation {
	if mode == ModeProduction {
		return Augmentation{
			BundleFilename: "js/[name].[chunkhash].js",
			StyleFilename:  "css/[name].[chunkhash].css",
			SourceMap:      SourceMapExternal,
			CleanOutput:    true,
			Minimize:       true,
		}
	}
	return Augmentation{
		BundleFilename: "[name].js",
		StyleFilename:  "css/[name].[chunkhash].css",
		SourceMap:      SourceMapInline,
		LiveReload:     true,
		NoEmitOnErrors: true,
	}
}
