package evm

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/dshop-nft/dshop/internal/utils/safecast"
	sdkerrors "github.com/dshop-nft/dshop/sdk/errors"
	"github.com/dshop-nft/dshop/types"
)

const (
	// SimulatedEVMChainID is the chain ID used for simulated chains.
	SimulatedEVMChainID = 1337
)

// ErrChainIDOutOfRange is returned when the node reports a chain ID that does not fit in a uint64.
var ErrChainIDOutOfRange = errors.New("connected chain ID out of range")

// ChainIDReader is implemented by clients able to report the chain they are connected to.
type ChainIDReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// NewTransactOpts builds keyed transact options for the given EVM chain ID.
func NewTransactOpts(key *ecdsa.PrivateKey, chainID uint64) (*bind.TransactOpts, error) {
	id, err := safecast.Uint64ToInt64(chainID)
	if err != nil {
		return nil, err
	}

	return bind.NewKeyedTransactorWithChainID(key, big.NewInt(id))
}

// AddressFromKey derives the account address of a private key.
func AddressFromKey(key *ecdsa.PrivateKey) common.Address {
	return crypto.PubkeyToAddress(key.PublicKey)
}

// ResolveChainID returns the chain ID to sign with. When a selector is given, its EVM chain ID must
// match the chain the client is connected to.
func ResolveChainID(ctx context.Context, client ChainIDReader, sel types.ChainSelector) (uint64, error) {
	connected, err := client.ChainID(ctx)
	if err != nil {
		return 0, err
	}
	if !connected.IsUint64() {
		return 0, fmt.Errorf("%w: %s", ErrChainIDOutOfRange, connected.String())
	}

	if sel == 0 {
		return connected.Uint64(), nil
	}

	expected, err := types.EVMChainID(sel)
	if err != nil {
		return 0, sdkerrors.NewInvalidChainIDError(uint64(sel), 0, 0)
	}

	if expected != connected.Uint64() {
		return 0, sdkerrors.NewInvalidChainIDError(uint64(sel), expected, connected.Uint64())
	}

	return expected, nil
}
