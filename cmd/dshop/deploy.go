package dshop

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshop-nft/dshop"
	"github.com/dshop-nft/dshop/internal/config"
	"github.com/dshop-nft/dshop/sdk/evm"
	"github.com/dshop-nft/dshop/types"
)

func buildDeployCmd(opts *rootOptions) *cobra.Command {
	var (
		artifactsDir string
		timeout      time.Duration
		args         = dshop.DefaultConstructorArgs()
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploys the DSHOP NFT contract",
		Long:  `Deploys DSHOP from its compiled artifact with the account configured through PRIVATE_KEY, which becomes the contract owner.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.envFile)
			if err != nil {
				return err
			}
			if artifactsDir != "" {
				cfg.ArtifactsDir = artifactsDir
			}
			if timeout > 0 {
				cfg.ConfirmTimeout = types.NewDuration(timeout)
			}

			key, err := cfg.Key()
			if err != nil {
				return err
			}

			ctx := loggerContext(cmd.Context(), opts.logger)

			resolver, err := newResolver(cfg.ArtifactsDir, dshop.ContractName)
			if err != nil {
				return err
			}
			// Fail before dialing the node when nothing was compiled.
			if _, err := resolver.Resolve(dshop.ContractName); err != nil {
				return err
			}

			client, closeFn, err := connect(ctx, opts.dial, cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			chainID, err := evm.ResolveChainID(ctx, client, cfg.ChainSelector)
			if err != nil {
				return err
			}

			auth, err := evm.NewTransactOpts(key, chainID)
			if err != nil {
				return err
			}
			auth.GasLimit = cfg.GasLimit

			deployer, err := dshop.NewDeployer(resolver, client, auth,
				dshop.WithConstructorArgs(args),
				dshop.WithPollInterval(cfg.PollInterval.Duration),
			)
			if err != nil {
				return err
			}

			opts.logger.Sugar().Debugf("Deploying %s from %s on chain %d", dshop.ContractName, auth.From.Hex(), chainID)

			ctx, cancel := context.WithTimeout(ctx, cfg.ConfirmTimeout.Duration)
			defer cancel()

			deployment, _, err := deployer.Deploy(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "DSHOP NFT deployed to %s\n", deployment.Address.Hex())

			return nil
		},
	}

	cmd.Flags().StringVar(&artifactsDir, "artifacts", "", "Hardhat artifacts directory (overrides ARTIFACTS_DIR)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "How long to wait for the deployment to be confirmed (overrides CONFIRM_TIMEOUT)")
	cmd.Flags().StringVar(&args.Name, "name", args.Name, "Token collection name")
	cmd.Flags().StringVar(&args.Symbol, "symbol", args.Symbol, "Token symbol")
	cmd.Flags().StringVar(&args.Supply, "supply", args.Supply, "Maximum token supply")

	return cmd
}
