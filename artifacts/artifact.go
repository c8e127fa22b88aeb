// Package artifacts loads Hardhat build artifacts and resolves them by contract name.
package artifacts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-playground/validator/v10"
)

// HardhatFormat is the format tag written by Hardhat into every contract artifact.
const HardhatFormat = "hh-sol-artifact-1"

// linkPlaceholder marks an unlinked library reference inside creation bytecode.
const linkPlaceholder = "__$"

var (
	ErrUnlinkedLibrary    = errors.New("bytecode contains unlinked library references")
	ErrInvalidIntegerType = errors.New("invalid integer type")
)

// Artifact is the compiled output of a single contract.
type Artifact struct {
	Format       string          `json:"_format"`
	ContractName string          `json:"contractName" validate:"required"`
	SourceName   string          `json:"sourceName"`
	RawABI       json.RawMessage `json:"abi" validate:"required"`
	Bytecode     string          `json:"bytecode" validate:"required,startswith=0x,min=4"`

	DeployedBytecode       string                     `json:"deployedBytecode"`
	LinkReferences         map[string]json.RawMessage `json:"linkReferences,omitempty"`
	DeployedLinkReferences map[string]json.RawMessage `json:"deployedLinkReferences,omitempty"`

	// ABI is the parsed form of RawABI.
	ABI abi.ABI `json:"-"`
}

// Parse decodes and validates an artifact.
func Parse(data []byte) (*Artifact, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to decode artifact: %w", err)
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}

	parsed, err := abi.JSON(bytes.NewReader(a.RawABI))
	if err == nil {
		err = checkABITypes(parsed)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse abi of %s: %w", a.ContractName, err)
	}
	a.ABI = parsed

	return &a, nil
}

// checkABITypes rejects integer widths outside int8..int256 in steps of 8, which abi.JSON accepts.
func checkABITypes(parsed abi.ABI) error {
	args := []abi.Arguments{parsed.Constructor.Inputs}
	for _, method := range parsed.Methods {
		args = append(args, method.Inputs, method.Outputs)
	}
	for _, event := range parsed.Events {
		args = append(args, event.Inputs)
	}

	for _, list := range args {
		for _, arg := range list {
			if err := checkABIType(arg.Type); err != nil {
				return err
			}
		}
	}

	return nil
}

func checkABIType(typ abi.Type) error {
	switch typ.T {
	case abi.IntTy, abi.UintTy:
		if typ.Size < 8 || typ.Size > 256 || typ.Size%8 != 0 {
			return fmt.Errorf("%w: %s", ErrInvalidIntegerType, typ.String())
		}
	case abi.SliceTy, abi.ArrayTy:
		return checkABIType(*typ.Elem)
	case abi.TupleTy:
		for _, elem := range typ.TupleElems {
			if err := checkABIType(*elem); err != nil {
				return err
			}
		}
	}

	return nil
}

// Validate checks the fields required to deploy the contract.
func (a *Artifact) Validate() error {
	if err := validator.New().Struct(a); err != nil {
		return err
	}

	if a.Format != "" && a.Format != HardhatFormat {
		return fmt.Errorf("unsupported artifact format %q", a.Format)
	}

	return nil
}

// FullyQualifiedName returns the "source:name" identifier used by Hardhat.
func (a *Artifact) FullyQualifiedName() string {
	if a.SourceName == "" {
		return a.ContractName
	}

	return a.SourceName + ":" + a.ContractName
}

// Code decodes the creation bytecode.
func (a *Artifact) Code() ([]byte, error) {
	if strings.Contains(a.Bytecode, linkPlaceholder) {
		return nil, fmt.Errorf("%s: %w", a.ContractName, ErrUnlinkedLibrary)
	}

	code, err := hexutil.Decode(a.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode for %s: %w", a.ContractName, err)
	}

	return code, nil
}

// IsAbstract reports whether the artifact describes an interface or abstract contract, which
// Hardhat emits with an empty "0x" bytecode.
func IsAbstract(data []byte) bool {
	var probe struct {
		Bytecode string `json:"bytecode"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}

	return probe.Bytecode == "0x"
}
