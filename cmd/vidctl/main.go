package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/templui/vidshare/cmd/vidctl/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "vidctl",
		Short:        "Operator tools for vidshare",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.TokensCmd())
	rootCmd.AddCommand(cmd.AdminCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
