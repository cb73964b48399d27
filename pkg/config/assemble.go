package config

import (
	"fmt"

	"dario.cat/mergo"

	"github.com/aretw0/pagemap/pkg/core"
)

// Assemble merges plan into the static skeleton described by s.
// The skeleton is mode-neutral; the plan's augmentation selects the overlay.
func Assemble(plan *core.Plan, s Settings) (*Config, error) {
	if plan == nil {
		return nil, fmt.Errorf("assemble: nil plan")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	cfg := skeleton(s)
	if err := mergo.Merge(cfg, overlay(plan.Mode(), plan.Augmentation(), s), mergo.WithOverride, mergo.WithAppendSlice); err != nil {
		return nil, fmt.Errorf("failed to merge %s overlay: %w", plan.Mode(), err)
	}

	cfg.Entry = plan.Targets()
	cfg.Documents = plan.Directives()

	return cfg, nil
}

// skeleton is the part of the configuration shared by every mode.
func skeleton(s Settings) *Config {
	alias := make(map[string]string, len(s.Alias))
	for k, v := range s.Alias {
		alias[k] = v
	}

	return &Config{
		Output: Output{
			Path:       s.OutputDir,
			PublicPath: s.PublicPath,
		},
		Module: Module{
			Rules: DefaultRules(s.InlineLimit),
		},
		Resolve: Resolve{
			Alias:      alias,
			Extensions: append([]string(nil), s.Extensions...),
		},
	}
}

// overlay translates an augmentation into configuration.
func overlay(mode core.Mode, aug core.Augmentation, s Settings) Config {
	o := Config{
		Mode:    mode,
		DevTool: aug.SourceMap,
		Output: Output{
			Filename: aug.BundleFilename,
		},
		Plugins: []Plugin{
			{Name: PluginExtractText, Options: map[string]any{"filename": aug.StyleFilename}},
		},
	}

	if aug.LiveReload {
		o.DevServer = devServer(s.DevServer)
		o.Plugins = append(o.Plugins,
			Plugin{Name: PluginHotReplacement},
			Plugin{Name: PluginNamedModules},
		)
	}
	if aug.NoEmitOnErrors {
		o.Plugins = append(o.Plugins, Plugin{Name: PluginNoEmitOnErrors})
	}
	if aug.CleanOutput {
		o.Plugins = append(o.Plugins, Plugin{Name: PluginClean, Options: map[string]any{"paths": []string{s.OutputDir}}})
	}
	if aug.Minimize {
		o.Plugins = append(o.Plugins,
			Plugin{Name: PluginDefine, Options: map[string]any{"process.env.NODE_ENV": fmt.Sprintf("%q", mode)}},
			Plugin{Name: PluginLoaderOptions, Options: map[string]any{"minimize": true}},
		)
	}
	return o
}

func devServer(s DevServerSettings) *DevServer {
	return &DevServer{
		Host:           s.Host,
		Port:           s.Port,
		Open:           s.Open,
		Hot:            s.Hot,
		Compress:       s.Compress,
		Inline:         true,
		ClientLogLevel: "warning",
		HistoryAPIFallback: HistoryFallback{
			Rewrites: []Rewrite{{From: ".*", To: s.HistoryFallback}},
		},
		Stats: map[string]bool{
			"children": false,
			"modules":  false,
		},
	}
}
