package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/pagemap"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default pagemap.yaml",
	Long:  `Create pagemap.yaml with the default settings in the project directory (--dir or the current directory).`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		dir := projectDir
		if dir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				fatal("Failed to get CWD", err)
			}
			dir = cwd
		}

		path, err := pagemap.Init(dir)
		if err != nil {
			fatal("Failed to initialize project", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
