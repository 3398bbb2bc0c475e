// cmd/tools/nluctl/main.go
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nluctl",
		Short: "Operator tool for the commerce command parser",
		Long: `nluctl runs the command parser locally and maintains the activity
registry the parse-command worker validates its input against.`,
		SilenceUsage: true,
	}
	root.AddCommand(newParseCmd(), newRegistryCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
