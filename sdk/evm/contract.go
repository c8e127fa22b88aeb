package evm

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

const ownerMethod = "owner"

// ErrNotOwnable is returned when the contract ABI has no owner() accessor.
var ErrNotOwnable = errors.New("contract has no owner() method")

// Contract is a handle to a deployed contract, driven by its ABI.
type Contract struct {
	address common.Address
	abi     abi.ABI
	bound   *bind.BoundContract
}

// NewContract binds address with the given ABI.
func NewContract(address common.Address, contractABI abi.ABI, backend bind.ContractBackend) *Contract {
	return &Contract{
		address: address,
		abi:     contractABI,
		bound:   bind.NewBoundContract(address, contractABI, backend, backend, backend),
	}
}

// Address returns the address of the contract.
func (c *Contract) Address() common.Address {
	return c.address
}

// ABI returns the ABI the contract is bound with.
func (c *Contract) ABI() abi.ABI {
	return c.abi
}

// Call invokes a read-only method against the latest block and returns its unpacked outputs.
func (c *Contract) Call(ctx context.Context, method string, args ...any) ([]any, error) {
	if _, ok := c.abi.Methods[method]; !ok {
		return nil, fmt.Errorf("method %q not found in abi", method)
	}

	var out []any
	if err := c.bound.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, fmt.Errorf("call %s on %s: %w", method, c.address.Hex(), withRevertReason(err))
	}

	return out, nil
}

// Owner returns the account recorded as the contract owner.
func (c *Contract) Owner(ctx context.Context) (common.Address, error) {
	if _, ok := c.abi.Methods[ownerMethod]; !ok {
		return common.Address{}, ErrNotOwnable
	}

	out, err := c.Call(ctx, ownerMethod)
	if err != nil {
		return common.Address{}, err
	}
	if len(out) != 1 {
		return common.Address{}, fmt.Errorf("owner() returned %d values", len(out))
	}

	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}
