package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/pagemap"
	"github.com/aretw0/pagemap/pkg/core"
)

var (
	verbose    bool
	projectDir string
	modeFlag   string
	recursive  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pagemap",
	Short: "Generate multi-page build configuration from a directory of pages",
	Long: `pagemap scans a directory of page modules and emits a build configuration
with one compilation entry and one HTML document per page. Each document
loads only its own page's bundle.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", "", "Project directory (default: nearest directory with pagemap.yaml or package.json)")
	rootCmd.PersistentFlags().StringVar(&modeFlag, "mode", "", "Build mode: development or production (default: from NODE_ENV)")
	rootCmd.PersistentFlags().BoolVarP(&recursive, "recursive", "r", false, "Discover pages in subdirectories")
}

// resolveDir returns the project directory from --dir, the nearest project
// root above the working directory, or the working directory itself.
func resolveDir() string {
	if projectDir != "" {
		return projectDir
	}
	cwd, err := os.Getwd()
	if err != nil {
		fatal("Failed to get CWD", err)
	}
	if root, err := pagemap.FindRoot(cwd); err == nil {
		return root
	}
	return cwd
}

// resolveMode parses --mode, falling back to NODE_ENV.
func resolveMode() pagemap.Mode {
	if modeFlag == "" {
		return pagemap.ModeFromEnv()
	}
	mode, err := core.ParseMode(modeFlag)
	if err != nil {
		fatal("Invalid --mode", err)
	}
	return mode
}

// openProject opens the resolved project with the CLI-level options.
func openProject() *pagemap.Project {
	opts := []pagemap.Option{pagemap.WithLogger(slog.Default())}
	if rootCmd.PersistentFlags().Changed("recursive") {
		opts = append(opts, pagemap.WithRecursive(recursive))
	}

	project, err := pagemap.Open(resolveDir(), opts...)
	if err != nil {
		fatal("Failed to open project", err)
	}
	return project
}
