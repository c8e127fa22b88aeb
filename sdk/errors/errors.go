package sdkerrors

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ResolutionError is returned when the build artifact of a named contract cannot be found or
// loaded.
type ResolutionError struct {
	ContractName string
	Reason       string
	Err          error
}

func (e *ResolutionError) Error() string {
	msg := fmt.Sprintf("unable to resolve artifact for contract %q", e.ContractName)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

func NewResolutionError(name, reason string, err error) *ResolutionError {
	return &ResolutionError{ContractName: name, Reason: reason, Err: err}
}

// DeploymentError is returned when the network rejects a deployment transaction or the
// constructor reverts.
type DeploymentError struct {
	ContractName string
	TxHash       common.Hash
	Err          error
}

// Error returns the error message.
func (e *DeploymentError) Error() string {
	if e.TxHash != (common.Hash{}) {
		return fmt.Sprintf("deployment of %s failed (tx %s): %v", e.ContractName, e.TxHash.Hex(), e.Err)
	}

	return fmt.Sprintf("deployment of %s failed: %v", e.ContractName, e.Err)
}

func (e *DeploymentError) Unwrap() error {
	return e.Err
}

func NewDeploymentError(name string, txHash common.Hash, err error) *DeploymentError {
	return &DeploymentError{ContractName: name, TxHash: txHash, Err: err}
}

// ConfirmationTimeoutError is returned when a transaction receipt does not appear before the
// waiting deadline.
type ConfirmationTimeoutError struct {
	TxHash  common.Hash
	Elapsed time.Duration
	Err     error
}

func (e *ConfirmationTimeoutError) Error() string {
	return fmt.Sprintf("transaction %s not confirmed after %s: %v", e.TxHash.Hex(), e.Elapsed.Round(time.Millisecond), e.Err)
}

func (e *ConfirmationTimeoutError) Unwrap() error {
	return e.Err
}

func NewConfirmationTimeoutError(txHash common.Hash, elapsed time.Duration, err error) *ConfirmationTimeoutError {
	return &ConfirmationTimeoutError{TxHash: txHash, Elapsed: elapsed, Err: err}
}

// InvalidChainIDError is returned when a chain selector does not map to an EVM chain or does not
// match the chain the client is connected to.
type InvalidChainIDError struct {
	Selector uint64
	Expected uint64
	Actual   uint64
}

func (e *InvalidChainIDError) Error() string {
	if e.Expected == 0 {
		return fmt.Sprintf("invalid chain selector: %d", e.Selector)
	}

	return fmt.Sprintf("chain selector %d expects chain ID %d, connected to %d", e.Selector, e.Expected, e.Actual)
}

func NewInvalidChainIDError(selector, expected, actual uint64) *InvalidChainIDError {
	return &InvalidChainIDError{Selector: selector, Expected: expected, Actual: actual}
}

// ArgumentError is returned when a constructor argument cannot be converted to its ABI type.
type ArgumentError struct {
	Index int
	Type  string
	Value string
	Err   error
}

// Error returns the error message.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument %d (%s): cannot convert %q: %v", e.Index, e.Type, e.Value, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

func NewArgumentError(index int, typ, value string, err error) *ArgumentError {
	return &ArgumentError{Index: index, Type: typ, Value: value, Err: err}
}
