package evm

import (
	"context"
	"errors"
	"math/big"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkerrors "github.com/dshop-nft/dshop/sdk/errors"
)

// fakeDeployBackend returns NotFound until minedAfter receipt queries have been made.
type fakeDeployBackend struct {
	minedAfter int32
	queries    atomic.Int32
	err        error
}

func (f *fakeDeployBackend) TransactionReceipt(_ context.Context, txHash common.Hash) (*gethtypes.Receipt, error) {
	n := f.queries.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	if n <= f.minedAfter {
		return nil, ethereum.NotFound
	}

	return &gethtypes.Receipt{TxHash: txHash, Status: gethtypes.ReceiptStatusSuccessful}, nil
}

func (f *fakeDeployBackend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{0x60}, nil
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	hash := common.HexToHash("0xabc")

	tests := []struct {
		name        string
		backend     *fakeDeployBackend
		timeout     time.Duration
		wantQueries int32
		wantTimeout bool
	}{
		{
			name:        "mined immediately",
			backend:     &fakeDeployBackend{},
			timeout:     time.Second,
			wantQueries: 1,
		},
		{
			name:        "mined after polling",
			backend:     &fakeDeployBackend{minedAfter: 3},
			timeout:     5 * time.Second,
			wantQueries: 4,
		},
		{
			name:        "never mined",
			backend:     &fakeDeployBackend{minedAfter: 1 << 30},
			timeout:     50 * time.Millisecond,
			wantTimeout: true,
		},
		{
			name:        "node keeps failing",
			backend:     &fakeDeployBackend{err: errors.New("connection refused")},
			timeout:     50 * time.Millisecond,
			wantTimeout: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithTimeout(context.Background(), tt.timeout)
			defer cancel()

			receipt, err := Confirm(ctx, tt.backend, hash, 5*time.Millisecond)
			if tt.wantTimeout {
				var timeoutErr *sdkerrors.ConfirmationTimeoutError
				require.ErrorAs(t, err, &timeoutErr)
				assert.Equal(t, hash, timeoutErr.TxHash)
				assert.Nil(t, receipt)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, hash, receipt.TxHash)
			assert.Equal(t, tt.wantQueries, tt.backend.queries.Load())
		})
	}
}

func TestConfirm_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	hash := common.HexToHash("0xabc")
	_, err := Confirm(ctx, &fakeDeployBackend{minedAfter: 1 << 30}, hash, 0)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorContains(t, err, "waiting for "+hash.Hex())

	var timeoutErr *sdkerrors.ConfirmationTimeoutError
	assert.NotErrorAs(t, err, &timeoutErr)
}
