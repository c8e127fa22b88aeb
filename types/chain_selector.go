package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"errors"
	"fmt"

	chainsel "github.com/smartcontractkit/chain-selectors"
)

// ChainSelector is a unique identifier for a chain.
//
// These values are defined in the chain-selectors dependency.
// https://github.com/smartcontractkit/chain-selectors
type ChainSelector uint64

var (
	// ErrChainFamilyNotFound is returned when the chain family is not found for a selector
	ErrChainFamilyNotFound = errors.New("chain family not found")

	// ErrUnsupportedChainFamily is returned when the selector does not belong to an EVM chain
	ErrUnsupportedChainFamily = errors.New("unsupported chain family")
)

// GetChainSelectorFamily returns the family of the chain selector.
func GetChainSelectorFamily(sel ChainSelector) (string, error) {
	family, err := chainsel.GetSelectorFamily(uint64(sel))
	if err != nil {
		return "", fmt.Errorf("%w for selector %d", ErrChainFamilyNotFound, sel)
	}

	return family, nil
}

// EVMChainID returns the EVM chain ID of the selector. Only EVM selectors are accepted since
// DSHOP is an EVM contract.
func EVMChainID(sel ChainSelector) (uint64, error) {
	family, err := GetChainSelectorFamily(sel)
	if err != nil {
		return 0, err
	}

	if family != chainsel.FamilyEVM {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedChainFamily, family)
	}

	chain, ok := chainsel.ChainBySelector(uint64(sel))
	if !ok {
		return 0, fmt.Errorf("%w for selector %d", ErrChainFamilyNotFound, sel)
	}

	return chain.EvmChainID, nil
}

// Name returns the human readable chain name, or the numeric selector when unknown.
func (s ChainSelector) Name() string {
	chain, ok := chainsel.ChainBySelector(uint64(s))
	if !ok || chain.Name == "" {
		return fmt.Sprintf("%d", uint64(s))
	}

	return chain.Name
}
