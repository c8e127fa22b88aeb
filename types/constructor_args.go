package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"github.com/go-playground/validator/v10"
)

// ConstructorArgs holds the arguments passed to the DSHOP constructor, in declaration order
// (name, symbol, supply). Values are kept as strings and converted to the ABI input types at
// deployment time.
type ConstructorArgs struct {
	// Name is the ERC-721 token name.
	Name string `json:"name" validate:"required"`

	// Symbol is the ERC-721 token symbol.
	Symbol string `json:"symbol" validate:"required"`

	// Supply is the maximum supply, as a base 10 integer string.
	Supply string `json:"supply" validate:"required,number"`
}

// Validate checks the arguments are present and the supply is numeric.
func (a ConstructorArgs) Validate() error {
	return validator.New().Struct(a)
}

// Values returns the arguments in constructor order.
func (a ConstructorArgs) Values() []string {
	return []string{a.Name, a.Symbol, a.Supply}
}
