// Package dshop deploys the DSHOP ERC-721 contract from its compiled build artifact.
package dshop

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"github.com/dshop-nft/dshop/sdk"
	sdkerrors "github.com/dshop-nft/dshop/sdk/errors"
	"github.com/dshop-nft/dshop/sdk/evm"
	"github.com/dshop-nft/dshop/types"
)

// ContractName is the name of the contract artifact deployed by default.
const ContractName = "DSHOP"

// DefaultConstructorArgs returns the arguments DSHOP is deployed with: ("DSHOP", "DP", "10000").
func DefaultConstructorArgs() types.ConstructorArgs {
	return types.ConstructorArgs{
		Name:   "DSHOP",
		Symbol: "DP",
		Supply: "10000",
	}
}

// Deployer runs a single deployment: resolve the artifact, submit the transaction and wait for
// its confirmation. Any failure aborts the whole sequence, nothing is retried.
type Deployer struct {
	resolver     sdk.ArtifactResolver
	backend      sdk.ContractDeployBackend
	opts         *bind.TransactOpts
	contractName string
	args         types.ConstructorArgs
	pollInterval time.Duration
}

// DeployerOption configures a Deployer.
type DeployerOption func(*Deployer)

// WithContractName deploys another artifact than DSHOP.
func WithContractName(name string) DeployerOption {
	return func(d *Deployer) {
		d.contractName = name
	}
}

// WithConstructorArgs overrides the default constructor arguments.
func WithConstructorArgs(args types.ConstructorArgs) DeployerOption {
	return func(d *Deployer) {
		d.args = args
	}
}

// WithPollInterval sets how often the receipt is polled while waiting.
func WithPollInterval(interval time.Duration) DeployerOption {
	return func(d *Deployer) {
		d.pollInterval = interval
	}
}

// NewDeployer creates a Deployer signing with opts. The sender of opts becomes the contract owner.
func NewDeployer(
	resolver sdk.ArtifactResolver, backend sdk.ContractDeployBackend, opts *bind.TransactOpts, options ...DeployerOption,
) (*Deployer, error) {
	if resolver == nil {
		return nil, errors.New("Deployer was created without an artifact resolver")
	}
	if backend == nil {
		return nil, errors.New("Deployer was created without a backend")
	}
	if opts == nil {
		return nil, errors.New("Deployer was created without transact opts")
	}

	d := &Deployer{
		resolver:     resolver,
		backend:      backend,
		opts:         opts,
		contractName: ContractName,
		args:         DefaultConstructorArgs(),
		pollInterval: evm.DefaultPollInterval,
	}
	for _, opt := range options {
		opt(d)
	}

	return d, nil
}

// Deploy deploys a new contract instance and blocks until it is confirmed. Every call creates a
// new instance at a new address.
func (d *Deployer) Deploy(ctx context.Context) (*types.Deployment, *evm.Contract, error) {
	logger := sdk.LoggerFrom(ctx)

	if err := validate(d.args); err != nil {
		return nil, nil, sdkerrors.NewDeploymentError(d.contractName, common.Hash{}, err)
	}

	artifact, err := d.resolver.Resolve(d.contractName)
	if err != nil {
		var resErr *sdkerrors.ResolutionError
		if errors.As(err, &resErr) {
			return nil, nil, err
		}

		return nil, nil, sdkerrors.NewResolutionError(d.contractName, "", err)
	}

	factory, err := evm.NewContractFactory(artifact, d.backend)
	if err != nil {
		return nil, nil, err
	}
	factory.WithPollInterval(d.pollInterval)

	pending, err := factory.Deploy(ctx, d.opts, d.args.Values()...)
	if err != nil {
		return nil, nil, err
	}
	logger.Infof("Deployment of %s submitted in transaction %s", d.contractName, pending.Tx.Hash().Hex())

	deployment, err := pending.Wait(ctx)
	if err != nil {
		return nil, nil, err
	}
	logger.Infof("%s confirmed in block %d", d.contractName, deployment.BlockNumber)

	return deployment, pending.Contract(), nil
}

func validate(inputs ...sdk.Validator) error {
	for _, input := range inputs {
		if err := input.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// VerifyOwner checks that the contract records expected as its owner.
func VerifyOwner(ctx context.Context, contract *evm.Contract, expected common.Address) error {
	owner, err := contract.Owner(ctx)
	if err != nil {
		return err
	}

	if owner != expected {
		return NewOwnerMismatchError(contract.Address(), expected, owner)
	}

	return nil
}
