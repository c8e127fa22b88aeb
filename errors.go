package dshop

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// OwnerMismatchError is returned when a deployed contract records an owner other than the account
// that deployed it.
type OwnerMismatchError struct {
	Contract common.Address
	Expected common.Address
	Actual   common.Address
}

// NewOwnerMismatchError creates a new OwnerMismatchError.
func NewOwnerMismatchError(contract, expected, actual common.Address) *OwnerMismatchError {
	return &OwnerMismatchError{Contract: contract, Expected: expected, Actual: actual}
}

func (e *OwnerMismatchError) Error() string {
	return fmt.Sprintf("contract %s is owned by %s, expected %s", e.Contract.Hex(), e.Actual.Hex(), e.Expected.Hex())
}
