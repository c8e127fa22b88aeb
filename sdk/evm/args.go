package evm

import (
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cast"

	sdkerrors "github.com/dshop-nft/dshop/sdk/errors"
)

var (
	errOutOfRange      = errors.New("value out of range")
	errInvalidAddress  = errors.New("invalid address")
	errInvalidInteger  = errors.New("invalid integer")
	errBytesLength     = errors.New("wrong byte length")
	errUnsupportedType = errors.New("unsupported argument type")
)

// ConvertArgs converts string values into the Go types expected by the ABI arguments, so that
// numeric constructor parameters may be given as "10000".
func ConvertArgs(inputs abi.Arguments, values []string) ([]any, error) {
	if len(inputs) != len(values) {
		return nil, fmt.Errorf("expected %d arguments, got %d", len(inputs), len(values))
	}

	out := make([]any, 0, len(values))
	for i, input := range inputs {
		v, err := convertArg(input.Type, values[i])
		if err != nil {
			return nil, sdkerrors.NewArgumentError(i, input.Type.String(), values[i], err)
		}
		out = append(out, v)
	}

	return out, nil
}

func convertArg(typ abi.Type, value string) (any, error) {
	switch typ.T {
	case abi.StringTy:
		return value, nil
	case abi.BoolTy:
		return cast.ToBoolE(value)
	case abi.UintTy, abi.IntTy:
		return convertInt(typ, value)
	case abi.AddressTy:
		if !common.IsHexAddress(value) {
			return nil, errInvalidAddress
		}

		return common.HexToAddress(value), nil
	case abi.BytesTy:
		return hexutil.Decode(value)
	case abi.FixedBytesTy:
		b, err := hexutil.Decode(value)
		if err != nil {
			return nil, err
		}
		if len(b) != typ.Size {
			return nil, fmt.Errorf("%w: want %d, got %d", errBytesLength, typ.Size, len(b))
		}
		arr := reflect.New(typ.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(b))

		return arr.Interface(), nil
	default:
		return nil, errUnsupportedType
	}
}

func convertInt(typ abi.Type, value string) (any, error) {
	n, ok := new(big.Int).SetString(strings.TrimSpace(value), 0)
	if !ok {
		return nil, errInvalidInteger
	}

	lo, hi := intBounds(typ)
	if n.Cmp(lo) < 0 || n.Cmp(hi) > 0 {
		return nil, errOutOfRange
	}

	// Only 8, 16, 32 and 64 bit integers map to Go native types, the rest pack from *big.Int.
	switch typ.Size {
	case 8, 16, 32, 64:
	default:
		return n, nil
	}

	target := typ.GetType()
	if typ.T == abi.UintTy {
		return reflect.ValueOf(n.Uint64()).Convert(target).Interface(), nil
	}

	return reflect.ValueOf(n.Int64()).Convert(target).Interface(), nil
}

// intBounds returns the inclusive range of an ABI integer type.
func intBounds(typ abi.Type) (*big.Int, *big.Int) {
	one := big.NewInt(1)
	if typ.T == abi.UintTy {
		hi := new(big.Int).Lsh(one, uint(typ.Size))

		return new(big.Int), hi.Sub(hi, one)
	}

	hi := new(big.Int).Lsh(one, uint(typ.Size-1))
	lo := new(big.Int).Neg(hi)

	return lo, hi.Sub(hi, one)
}
