package config

// Rule matches files by regular expression and hands them to loaders.
type Rule struct {
	Test    string         `json:"test" yaml:"test"`
	Exclude string         `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	Loader  string         `json:"loader,omitempty" yaml:"loader,omitempty"`
	Use     []string       `json:"use,omitempty" yaml:"use,omitempty"`
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

const assetName = "static/[name].[ext]?[hash]"

// DefaultRules returns the asset transform rules. Only inlineLimit varies.
func DefaultRules(inlineLimit int) []Rule {
	urlOptions := func() map[string]any {
		return map[string]any{
			"limit": inlineLimit,
			"name":  assetName,
		}
	}

	return []Rule{
		{
			Test:   `\.vue$`,
			Loader: "vue-loader",
			Options: map[string]any{
				"loaders": map[string]any{
					"css":  extract([]string{"css-loader"}),
					"less": extract([]string{"css-loader", "less-loader"}),
				},
			},
		},
		{
			Test: `\.(css|less)$`,
			Use:  []string{"vue-style-loader", "css-loader", "less-loader"},
		},
		{
			Test:    `\.js$`,
			Exclude: `node_modules`,
			Loader:  "babel-loader",
			Options: map[string]any{
				"presets": []any{
					[]any{"env", map[string]any{"module": false}},
					"stage-0",
				},
			},
		},
		{
			Test:    `\.(png|jpe?g|gif|svg)`,
			Loader:  "url-loader",
			Options: urlOptions(),
		},
		{
			Test:    `\.(mp4|webm|ogg|mp3|wav|flac|aac)(\?.*)?$`,
			Loader:  "url-loader",
			Options: urlOptions(),
		},
		{
			Test:    `\.(woff2?|eot|ttf|otf)(\?.*)?$`,
			Loader:  "url-loader",
			Options: urlOptions(),
		},
	}
}

// extract describes a style extraction with vue-style-loader as fallback.
func extract(use []string) map[string]any {
	return map[string]any{
		"extract":  true,
		"use":      use,
		"fallback": "vue-style-loader",
	}
}
