package evm

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// ErrConstructorReverted is returned when a deployment transaction is mined with a failed status.
var ErrConstructorReverted = errors.New("constructor reverted")

// revertReason extracts the revert reason carried by an RPC error, if any. Error(string) payloads
// are decoded, other payloads are returned as hex.
func revertReason(err error) string {
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return ""
	}

	data, ok := dataErr.ErrorData().(string)
	if !ok {
		return ""
	}

	raw, decodeErr := hexutil.Decode(data)
	if decodeErr != nil || len(raw) == 0 {
		return ""
	}

	if reason, unpackErr := abi.UnpackRevert(raw); unpackErr == nil {
		return reason
	}

	return data
}

// withRevertReason annotates err with its revert reason when the node reported one.
func withRevertReason(err error) error {
	if reason := revertReason(err); reason != "" {
		return fmt.Errorf("%w (revert reason: %s)", err, reason)
	}

	return err
}
