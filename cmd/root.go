package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "igfetch",
	Short: "igfetch resolves Instagram posts to media and proxies downloads",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("No subcommand given")
		cmd.Usage()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Exit with a nonzero exit code if the command fails with an error
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
