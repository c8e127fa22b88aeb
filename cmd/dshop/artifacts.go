package dshop

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshop-nft/dshop/artifacts"
	"github.com/dshop-nft/dshop/internal/config"
)

func buildArtifactsCmd() *cobra.Command {
	var artifactsDir string

	cmd := &cobra.Command{
		Use:   "artifacts",
		Short: "Lists the deployable contract artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := artifactsDir
			if dir == "" {
				dir = config.ArtifactsDir(os.Getenv)
			}

			resolver, err := artifacts.NewResolver(dir)
			if err != nil {
				return err
			}

			names, err := resolver.List()
			if err != nil {
				return err
			}

			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&artifactsDir, "artifacts", "", "Hardhat artifacts directory (overrides ARTIFACTS_DIR)")

	return cmd
}
