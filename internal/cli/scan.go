package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/pindex/pkg/model"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	var countOnly bool

	cmd := &cobra.Command{
		Use:   "scan [ROOT...]",
		Short: "List the packages found under the configured roots",
		Long: `Scan the package directories once and print the cataloged files,
without starting a server. Useful to check what the index would serve.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if len(args) > 0 {
				cfg.Roots = args
			}

			be, err := buildBackend(cfg)
			if err != nil {
				return err
			}

			pkgs := be.GetAllPackages()
			if countOnly {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\n", len(pkgs))
				return nil
			}

			model.SortForListing(pkgs)
			for _, pkg := range pkgs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n",
					pkg.NormalizedName, pkg.Version, pkg.RelPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&countOnly, "count", "c", false, "print only the number of packages")

	return cmd
}
