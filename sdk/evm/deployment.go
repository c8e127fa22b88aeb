package evm

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/dshop-nft/dshop/artifacts"
	"github.com/dshop-nft/dshop/sdk"
	sdkerrors "github.com/dshop-nft/dshop/sdk/errors"
	"github.com/dshop-nft/dshop/types"
)

// ErrNoCode is returned when a deployment was mined but no code is stored at the new address.
var ErrNoCode = errors.New("no contract code after deployment")

// ContractFactory deploys instances of a compiled contract.
type ContractFactory struct {
	artifact     *artifacts.Artifact
	backend      sdk.ContractDeployBackend
	pollInterval time.Duration
}

// NewContractFactory creates a factory for artifact on backend.
func NewContractFactory(artifact *artifacts.Artifact, backend sdk.ContractDeployBackend) (*ContractFactory, error) {
	if artifact == nil {
		return nil, errors.New("ContractFactory was created without an artifact")
	}

	if backend == nil {
		return nil, errors.New("ContractFactory was created without a backend")
	}

	return &ContractFactory{
		artifact:     artifact,
		backend:      backend,
		pollInterval: DefaultPollInterval,
	}, nil
}

// WithPollInterval sets how often receipts are polled while waiting for confirmation.
func (f *ContractFactory) WithPollInterval(d time.Duration) *ContractFactory {
	f.pollInterval = d
	return f
}

// ContractName returns the name of the contract the factory deploys.
func (f *ContractFactory) ContractName() string {
	return f.artifact.ContractName
}

// Deploy submits a deployment transaction signed by opts. The string arguments are converted to
// the constructor input types. The returned PendingDeployment must be waited on to learn whether
// the deployment succeeded.
func (f *ContractFactory) Deploy(ctx context.Context, opts *bind.TransactOpts, args ...string) (*PendingDeployment, error) {
	name := f.artifact.ContractName
	if opts == nil {
		return nil, sdkerrors.NewDeploymentError(name, common.Hash{}, errors.New("missing transact opts"))
	}

	code, err := f.artifact.Code()
	if err != nil {
		return nil, sdkerrors.NewDeploymentError(name, common.Hash{}, err)
	}

	params, err := ConvertArgs(f.artifact.ABI.Constructor.Inputs, args)
	if err != nil {
		return nil, sdkerrors.NewDeploymentError(name, common.Hash{}, err)
	}

	txOpts := *opts
	if txOpts.Context == nil {
		txOpts.Context = ctx
	}

	sdk.LoggerFrom(ctx).Debugf("Submitting deployment of %s from %s", name, txOpts.From.Hex())

	addr, tx, _, err := bind.DeployContract(&txOpts, f.artifact.ABI, code, f.backend, params...)
	if err != nil {
		return nil, sdkerrors.NewDeploymentError(name, common.Hash{}, withRevertReason(err))
	}

	return &PendingDeployment{
		Address:      addr,
		Tx:           tx,
		From:         txOpts.From,
		contractName: name,
		backend:      f.backend,
		contract:     NewContract(addr, f.artifact.ABI, f.backend),
		pollInterval: f.pollInterval,
	}, nil
}

// PendingDeployment is a submitted deployment transaction awaiting confirmation.
type PendingDeployment struct {
	// Address is the address the contract will live at once mined.
	Address common.Address
	// Tx is the deployment transaction.
	Tx *gethtypes.Transaction
	// From is the account that signed the transaction.
	From common.Address

	contractName string
	backend      sdk.ContractDeployBackend
	contract     *Contract
	pollInterval time.Duration
}

// Contract returns a handle bound to the future contract address.
func (p *PendingDeployment) Contract() *Contract {
	return p.contract
}

// Wait blocks until the deployment transaction is mined. A failed receipt or missing code is a
// DeploymentError, an expired ctx is a ConfirmationTimeoutError.
func (p *PendingDeployment) Wait(ctx context.Context) (*types.Deployment, error) {
	hash := p.Tx.Hash()

	receipt, err := Confirm(ctx, p.backend, hash, p.pollInterval)
	if err != nil {
		return nil, err
	}

	if receipt.Status != gethtypes.ReceiptStatusSuccessful {
		return nil, sdkerrors.NewDeploymentError(p.contractName, hash, ErrConstructorReverted)
	}

	code, err := p.backend.CodeAt(ctx, p.Address, nil)
	if err != nil {
		return nil, sdkerrors.NewDeploymentError(p.contractName, hash, err)
	}
	if len(code) == 0 {
		return nil, sdkerrors.NewDeploymentError(p.contractName, hash, ErrNoCode)
	}

	var block uint64
	if receipt.BlockNumber != nil {
		block = receipt.BlockNumber.Uint64()
	}

	return &types.Deployment{
		ContractName: p.contractName,
		Address:      p.Address,
		TxHash:       hash,
		BlockNumber:  block,
		Deployer:     p.From,
		GasUsed:      receipt.GasUsed,
		DeployedAt:   time.Now().UTC(),
	}, nil
}
