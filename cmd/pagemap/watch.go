package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/pagemap/pkg/adapters/lifecycle"
	"github.com/aretw0/pagemap/pkg/config"
	"github.com/aretw0/pagemap/pkg/core"
)

var (
	watchOut    string
	watchFormat string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the configuration whenever pages are added or removed",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if watchOut == "" {
			fatal("Missing flag", fmt.Errorf("--out is required"))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		project := openProject()
		mode := resolveMode()
		format := outputFormat(watchOut, watchFormat)

		rebuild := func() {
			cfg, err := project.Build(ctx, mode)
			if err != nil {
				// Keep the previous file on failure.
				slog.Error("rebuild failed", "error", err)
				return
			}
			if err := config.WriteFile(watchOut, cfg, format); err != nil {
				slog.Error("write failed", "error", err)
				return
			}
			slog.Info("config written", "path", watchOut, "pages", len(cfg.Entry))
		}

		rebuild()

		events, err := project.Service.Watch(ctx)
		if err != nil {
			fatal("Failed to watch pages", err)
		}

		src := lifecycle.NewSource(events, lifecycle.StructuralOnly())
		if err := src.Start(ctx); err != nil {
			fatal("Failed to start watcher", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (Ctrl+C to stop)\n", project.Settings.Root)
		for e := range src.Events() {
			if pe, ok := e.(core.Event); ok {
				slog.Info("page changed", "type", pe.Type, "id", pe.ID)
			}
			rebuild()
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "", "Configuration file to keep up to date")
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", "", "Output format: json or yaml")
}
