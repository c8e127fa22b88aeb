package dshop

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err      error
		expected string
	}{
		{
			NewOwnerMismatchError(common.HexToAddress("0x1"), common.HexToAddress("0x2"), common.HexToAddress("0x3")),
			"contract 0x0000000000000000000000000000000000000001 is owned by 0x0000000000000000000000000000000000000003, expected 0x0000000000000000000000000000000000000002",
		},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, test.err.Error())
	}
}
