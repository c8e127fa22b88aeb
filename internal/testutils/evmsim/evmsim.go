// package evmsim implements a simulated EVM chain for testing purposes.
package evmsim

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	gethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/stretchr/testify/require"
)

const (
	// DefaultGasLimit is the default gas limit for each transaction in the simulated chain
	DefaultGasLimit = uint64(8000000)

	// DefaultBalance is the default balance for each account in the simulated chain
	DefaultBalance = 1e18

	// SimulatedChainID is the chain ID used for the simulated chain. EVM Simulated chains always use 1337
	//
	// https://pkg.go.dev/github.com/ethereum/go-ethereum/ethclient/simulated#NewBackend
	SimulatedChainID = 1337
)

// SimulatedChain represents a simulated chain with a backend and a list of signers.
type SimulatedChain struct {
	Backend *simulated.Backend
	Signers []*Signer
}

// Signer represents a signer with a private key.
type Signer struct {
	PrivateKey *ecdsa.PrivateKey
}

// NewTransactOpts creates a new transact options with the signer's private key. The gas limit
// is left unset so that it is estimated, and reverts surface at submission time.
func (s *Signer) NewTransactOpts(t *testing.T) *bind.TransactOpts {
	t.Helper()

	auth, err := bind.NewKeyedTransactorWithChainID(s.PrivateKey, big.NewInt(SimulatedChainID))
	require.NoError(t, err)

	return auth
}

// NewFixedGasTransactOpts is NewTransactOpts with the gas limit pinned to DefaultGasLimit, which
// skips estimation and lets failing transactions be mined.
func (s *Signer) NewFixedGasTransactOpts(t *testing.T) *bind.TransactOpts {
	t.Helper()

	auth := s.NewTransactOpts(t)
	auth.GasLimit = DefaultGasLimit

	return auth
}

// Address extracts the address from the signer's private key.
func (s *Signer) Address(t *testing.T) common.Address {
	t.Helper()

	publicKeyECDSA, ok := s.PrivateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		t.Fatal("error casting public key from crypto to ecdsa")
	}

	return crypto.PubkeyToAddress(*publicKeyECDSA)
}

// NewSimulatedChain creates a new simulated chain with the given number of signers. The backend
// is closed when the test finishes.
func NewSimulatedChain(t *testing.T, numSigners uint64) SimulatedChain {
	t.Helper()

	chain := newSimulatedChain(t, numSigners)
	t.Cleanup(func() {
		_ = chain.Backend.Close()
	})

	return chain
}

func newSimulatedChain(t *testing.T, numSigners uint64) SimulatedChain {
	t.Helper()

	// Generate a private key
	signers := make([]*Signer, 0, numSigners)
	for i := uint64(0); i < numSigners; i++ {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)

		signers = append(signers, &Signer{PrivateKey: key})
	}

	// Setup the simulated backend
	genesisAlloc := gethTypes.GenesisAlloc{}
	for _, s := range signers {
		genesisAlloc[s.Address(t)] = gethTypes.Account{
			Balance: big.NewInt(DefaultBalance),
		}
	}

	sim := simulated.NewBackend(genesisAlloc,
		simulated.WithBlockGasLimit(DefaultGasLimit),
	)

	return SimulatedChain{
		Backend: sim,
		Signers: signers,
	}
}

// AutoMineClient returns a client that mines a block after every submitted transaction, so code
// waiting for receipts makes progress without the test committing blocks by hand.
func (s *SimulatedChain) AutoMineClient() simulated.Client {
	return &autoMineClient{Client: s.Backend.Client(), backend: s.Backend}
}

// Head returns the hash of the latest committed block.
func (s *SimulatedChain) Head(t *testing.T) common.Hash {
	t.Helper()

	header, err := s.Backend.Client().HeaderByNumber(context.Background(), nil)
	require.NoError(t, err)

	return header.Hash()
}

// Revert drops pending transactions and resets the chain head to the given block.
func (s *SimulatedChain) Revert(t *testing.T, head common.Hash) {
	t.Helper()

	s.Backend.Rollback()
	if s.Head(t) == head {
		return
	}

	require.NoError(t, s.Backend.Fork(head))
}

// Transfer sends value wei between two signers and mines the transaction.
func (s *SimulatedChain) Transfer(t *testing.T, from *Signer, to common.Address, value *big.Int) *gethTypes.Transaction {
	t.Helper()

	tx := s.SignedTransfer(t, from, to, value)
	require.NoError(t, s.Backend.Client().SendTransaction(context.Background(), tx))
	s.Backend.Commit()

	return tx
}

// SignedTransfer builds and signs a value transfer at the sender's pending nonce without sending
// it.
func (s *SimulatedChain) SignedTransfer(t *testing.T, from *Signer, to common.Address, value *big.Int) *gethTypes.Transaction {
	t.Helper()

	ctx := context.Background()
	client := s.Backend.Client()

	nonce, err := client.PendingNonceAt(ctx, from.Address(t))
	require.NoError(t, err)

	head, err := client.HeaderByNumber(ctx, nil)
	require.NoError(t, err)

	tip := big.NewInt(1e9)
	tx := gethTypes.NewTx(&gethTypes.DynamicFeeTx{
		ChainID:   big.NewInt(SimulatedChainID),
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: new(big.Int).Add(new(big.Int).Mul(head.BaseFee, big.NewInt(2)), tip),
		Gas:       21000,
		To:        &to,
		Value:     value,
	})

	signed, err := gethTypes.SignTx(tx, gethTypes.LatestSignerForChainID(big.NewInt(SimulatedChainID)), from.PrivateKey)
	require.NoError(t, err)

	return signed
}

type autoMineClient struct {
	simulated.Client
	backend *simulated.Backend
}

func (c *autoMineClient) SendTransaction(ctx context.Context, tx *gethTypes.Transaction) error {
	if err := c.Client.SendTransaction(ctx, tx); err != nil {
		return err
	}
	c.backend.Commit()

	return nil
}
