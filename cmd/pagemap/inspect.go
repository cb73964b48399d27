package main

import (
	"context"
	"encoding/json"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the internal state of the generator as JSON",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		project := openProject()

		// Populate state with a plan; failures are reported in the output.
		var planErr string
		if _, err := project.Service.Plan(context.Background(), resolveMode()); err != nil {
			planErr = err.Error()
		}

		report := map[string]any{
			"dir":      project.Dir,
			"settings": project.Settings,
			"service":  project.Service.State(),
		}
		if intro, ok := project.Service.Source().(introspection.Introspectable); ok {
			report["source"] = intro.State()
		}
		if planErr != "" {
			report["error"] = planErr
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			fatal("Failed to encode state", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
