package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rflinks/pkg/rflinks"
)

const modulePath = "github.com/mesh-intelligence/rflinks"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the rflinks version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "rflinks v%s\nmodule: %s\n", rflinks.Version, modulePath)
			return nil
		},
	}
}
