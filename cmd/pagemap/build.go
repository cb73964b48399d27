package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/pagemap/pkg/config"
)

var (
	buildOut    string
	buildFormat string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the build configuration",
	Long: `Discover pages and print the assembled build configuration.
With --out the configuration is written atomically to a file instead.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		project := openProject()
		mode := resolveMode()
		format := outputFormat(buildOut, buildFormat)

		cfg, err := project.Build(context.Background(), mode)
		if err != nil {
			fatal("Build failed", err)
		}

		if buildOut == "" {
			if err := config.Encode(cmd.OutOrStdout(), cfg, format); err != nil {
				fatal("Failed to encode config", err)
			}
			return
		}

		if err := config.WriteFile(buildOut, cfg, format); err != nil {
			fatal("Failed to write config", err)
		}
		slog.Info("config written", "path", buildOut, "mode", mode, "pages", len(cfg.Entry))
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d pages (%s) to %s\n", len(cfg.Entry), mode, buildOut)
	},
}

// outputFormat honours --format, then the --out extension.
func outputFormat(out, flag string) config.Format {
	if flag != "" {
		f, err := config.ParseFormat(flag)
		if err != nil {
			fatal("Invalid --format", err)
		}
		return f
	}
	if out != "" {
		return config.FormatFromPath(out)
	}
	return config.FormatJSON
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "Write the configuration to this file")
	buildCmd.Flags().StringVarP(&buildFormat, "format", "f", "", "Output format: json or yaml (default: from --out extension, else json)")
}
