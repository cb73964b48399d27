// Package config assembles the complete build configuration around a
// synthesized page plan.
//
// The skeleton (loader rules, resolution, output layout) is static; the
// development and production variants are overlays merged on top of it.
// Only the entry map and the document list come from page discovery.
package config

import (
	"github.com/aretw0/pagemap/pkg/core"
)

// Config is the document consumed by the bundler.
type Config struct {
	Mode      core.Mode        `json:"mode" yaml:"mode"`
	Entry     core.TargetMap   `json:"entry" yaml:"entry"`
	Output    Output           `json:"output" yaml:"output"`
	Module    Module           `json:"module" yaml:"module"`
	Resolve   Resolve          `json:"resolve" yaml:"resolve"`
	DevServer *DevServer       `json:"devServer,omitempty" yaml:"devServer,omitempty"`
	DevTool   core.SourceMap   `json:"devtool" yaml:"devtool"`
	Documents []core.Directive `json:"documents" yaml:"documents"`
	Plugins   []Plugin         `json:"plugins" yaml:"plugins"`
}

// Output controls where and how compiled bundles are written.
type Output struct {
	Path       string `json:"path" yaml:"path"`
	Filename   string `json:"filename" yaml:"filename"`
	PublicPath string `json:"publicPath" yaml:"publicPath"`
}

// Module holds the asset transform rules.
type Module struct {
	Rules []Rule `json:"rules" yaml:"rules"`
}

// Resolve controls module resolution.
type Resolve struct {
	Alias      map[string]string `json:"alias,omitempty" yaml:"alias,omitempty"`
	Extensions []string          `json:"extensions" yaml:"extensions"`
}

// DevServer is the contract handed to the development server.
type DevServer struct {
	Host               string          `json:"host" yaml:"host"`
	Port               int             `json:"port" yaml:"port"`
	Open               bool            `json:"open" yaml:"open"`
	Hot                bool            `json:"hot" yaml:"hot"`
	Compress           bool            `json:"compress" yaml:"compress"`
	Inline             bool            `json:"inline" yaml:"inline"`
	ContentBase        bool            `json:"contentBase" yaml:"contentBase"`
	ClientLogLevel     string          `json:"clientLogLevel" yaml:"clientLogLevel"`
	HistoryAPIFallback HistoryFallback `json:"historyApiFallback" yaml:"historyApiFallback"`
	Stats              map[string]bool `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// HistoryFallback rewrites unmatched routes.
type HistoryFallback struct {
	Rewrites []Rewrite `json:"rewrites" yaml:"rewrites"`
}

// Rewrite maps requests matching From (a regular expression) to To.
type Rewrite struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Plugin is a named build plugin with free-form options.
type Plugin struct {
	Name    string         `json:"name" yaml:"name"`
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// Plugin names emitted by the assembler.
const (
	PluginExtractText    = "ExtractText"
	PluginHotReplacement = "HotModuleReplacement"
	PluginNamedModules   = "NamedModules"
	PluginNoEmitOnErrors = "NoEmitOnErrors"
	PluginClean          = "Clean"
	PluginDefine         = "Define"
	PluginLoaderOptions  = "LoaderOptions"
)

// HasPlugin reports whether a plugin with the given name is configured.
func (c *Config) HasPlugin(name string) bool {
	for _, p := range c.Plugins {
		if p.Name == name {
			return true
		}
	}
	return false
}
