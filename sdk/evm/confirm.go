package evm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"

	sdkerrors "github.com/dshop-nft/dshop/sdk/errors"
)

// DefaultPollInterval is how often the receipt of a pending transaction is queried.
const DefaultPollInterval = time.Second

// Confirm blocks until the receipt of txHash is available. It returns a ConfirmationTimeoutError
// when ctx expires first.
func Confirm(ctx context.Context, b bind.DeployBackend, txHash common.Hash, interval time.Duration) (*gethtypes.Receipt, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	queryTicker := time.NewTicker(interval)
	defer queryTicker.Stop()

	start := time.Now()
	logger := log.New("hash", txHash.Hex())
	for {
		receipt, err := b.TransactionReceipt(ctx, txHash)
		if err == nil {
			return receipt, nil
		}

		if errors.Is(err, ethereum.NotFound) {
			logger.Trace("Transaction not yet mined")
		} else {
			logger.Trace("Receipt retrieval failed", "err", err)
		}

		// Wait for the next round.
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, sdkerrors.NewConfirmationTimeoutError(txHash, time.Since(start), ctx.Err())
			}

			return nil, fmt.Errorf("waiting for %s: %w", txHash.Hex(), ctx.Err())
		case <-queryTicker.C:
		}
	}
}
