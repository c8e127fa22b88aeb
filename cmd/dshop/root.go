package dshop

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshop-nft/dshop/internal/config"
)

type rootOptions struct {
	envFile string
	dial    dialFunc
	logger  *zap.Logger
}

// BuildDShopCmd returns the dshop command tree connected to real RPC nodes.
func BuildDShopCmd() *cobra.Command {
	return newRootCmd(&rootOptions{dial: dialEthClient})
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	var verbose bool

	cmd := cobra.Command{
		Use:           "dshop",
		Short:         "Deploy and inspect the DSHOP NFT contract",
		Long:          ``,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logger != nil {
				return nil
			}

			logger, err := newLogger(verbose)
			if err != nil {
				return err
			}
			opts.logger = logger

			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.envFile, "env", config.DefaultEnvFile, "Path of the .env file holding PRIVATE_KEY and RPC_URL")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")

	cmd.AddCommand(buildDeployCmd(opts))
	cmd.AddCommand(buildOwnerCmd(opts))
	cmd.AddCommand(buildArtifactsCmd())

	return &cmd
}
