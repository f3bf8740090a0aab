package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/pindex/internal/server"
)

const (
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version information for pindex",
		Run:   runVersion,
	}

	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) {
	fmt.Fprintf(cmd.OutOrStdout(), "pindex version %s\n", server.Version)
	fmt.Fprintf(cmd.OutOrStdout(), "Build date: %s\n", BuildDate)
	fmt.Fprintf(cmd.OutOrStdout(), "Git commit: %s\n", GitCommit)
}
