package evmsim

import (
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

// FixtureFunc prepares chain state, typically by deploying contracts, and returns the handles
// tests need.
type FixtureFunc[T any] func(t *testing.T, chain *SimulatedChain) T

// Fixture runs its setup once on a dedicated simulated chain and snapshots the resulting state.
// Every later Load reverts the chain to that snapshot instead of running the setup again, so tests
// sharing a fixture start from identical state. Tests sharing a fixture must not run in parallel.
type Fixture[T any] struct {
	mu         sync.Mutex
	numSigners uint64
	setup      FixtureFunc[T]

	loaded   bool
	chain    *SimulatedChain
	value    T
	snapshot common.Hash
	runs     int
}

// NewFixture creates a fixture whose chain has numSigners funded accounts.
func NewFixture[T any](numSigners uint64, setup FixtureFunc[T]) *Fixture[T] {
	return &Fixture[T]{numSigners: numSigners, setup: setup}
}

// Load returns the fixture value and its chain, reverted to the post-setup snapshot.
func (f *Fixture[T]) Load(t *testing.T) (T, *SimulatedChain) {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.loaded {
		f.chain.Revert(t, f.snapshot)
		return f.value, f.chain
	}

	require.Positive(t, f.numSigners, "fixture needs at least one account")

	chain := newSimulatedChain(t, f.numSigners)
	f.chain = &chain
	f.value = f.setup(t, f.chain)
	f.runs++

	// Anything left pending by the setup is mined into the snapshot.
	f.chain.Backend.Commit()
	f.snapshot = f.chain.Head(t)
	f.loaded = true

	return f.value, f.chain
}

// Runs returns how many times the setup function has been executed.
func (f *Fixture[T]) Runs() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.runs
}

// Close releases the simulated backend.
func (f *Fixture[T]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.chain != nil {
		_ = f.chain.Backend.Close()
	}
	f.chain = nil
	f.loaded = false
}
