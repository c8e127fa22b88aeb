package dshop

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/dshop-nft/dshop"
	"github.com/dshop-nft/dshop/internal/config"
	"github.com/dshop-nft/dshop/sdk/evm"
)

func buildOwnerCmd(opts *rootOptions) *cobra.Command {
	var (
		address      string
		artifactsDir string
	)

	cmd := &cobra.Command{
		Use:   "owner",
		Short: "Prints the owner of a deployed DSHOP contract",
		Long:  `Reads owner() from the contract at --address and reports whether it is the account configured through PRIVATE_KEY.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !common.IsHexAddress(address) {
				return fmt.Errorf("invalid contract address %q", address)
			}

			cfg, err := config.Load(opts.envFile)
			if err != nil {
				return err
			}
			if artifactsDir != "" {
				cfg.ArtifactsDir = artifactsDir
			}

			key, err := cfg.Key()
			if err != nil {
				return err
			}

			resolver, err := newResolver(cfg.ArtifactsDir, dshop.ContractName)
			if err != nil {
				return err
			}
			artifact, err := resolver.Resolve(dshop.ContractName)
			if err != nil {
				return err
			}

			ctx := loggerContext(cmd.Context(), opts.logger)

			client, closeFn, err := connect(ctx, opts.dial, cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			contract := evm.NewContract(common.HexToAddress(address), artifact.ABI, client)
			owner, err := contract.Owner(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Owner of %s: %s\n", contract.Address().Hex(), owner.Hex())

			var mismatch *dshop.OwnerMismatchError
			err = dshop.VerifyOwner(ctx, contract, evm.AddressFromKey(key))
			switch {
			case err == nil:
				fmt.Fprintln(out, "Owner is the configured deployer account")
			case errors.As(err, &mismatch):
				fmt.Fprintf(out, "Owner is not the configured deployer account %s\n", mismatch.Expected.Hex())
			default:
				return err
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Address of the deployed contract")
	cmd.Flags().StringVar(&artifactsDir, "artifacts", "", "Hardhat artifacts directory (overrides ARTIFACTS_DIR)")
	cmd.MarkFlagRequired("address") //nolint:errcheck

	return cmd
}
