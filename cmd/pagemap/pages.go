package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var pagesJSON bool

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List the discovered pages",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		project := openProject()

		pages, err := project.Pages(context.Background())
		if err != nil {
			fatal("Failed to discover pages", err)
		}

		out := cmd.OutOrStdout()
		if pagesJSON {
			targets := make(map[string]string, len(pages))
			for _, p := range pages {
				targets[string(p.ID)] = p.Source
			}
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(targets); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, p := range pages {
			fmt.Fprintf(tw, "%s\t%s\n", p.ID, p.Source)
		}
		tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(pagesCmd)
	pagesCmd.Flags().BoolVar(&pagesJSON, "json", false, "Output the entry map as JSON")
}
