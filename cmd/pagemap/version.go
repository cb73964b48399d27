package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/pagemap"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pagemap",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pagemap version %s\n", strings.TrimSpace(pagemap.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
