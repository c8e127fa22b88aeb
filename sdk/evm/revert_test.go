package evm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dataError struct {
	data any
}

func (e dataError) Error() string  { return "execution reverted" }
func (e dataError) ErrorData() any { return e.data }

func TestRevertReason(t *testing.T) {
	t.Parallel()

	// Error(string) with message "supply is zero"
	errorString := "0x08c379a0" +
		"0000000000000000000000000000000000000000000000000000000000000020" +
		"000000000000000000000000000000000000000000000000000000000000000e" +
		"737570706c79206973207a65726f000000000000000000000000000000000000"

	tests := []struct {
		name string
		give error
		want string
	}{
		{name: "plain error", give: errors.New("boom"), want: ""},
		{name: "no data", give: dataError{data: "0x"}, want: ""},
		{name: "non string data", give: dataError{data: 1}, want: ""},
		{name: "error string", give: dataError{data: errorString}, want: "supply is zero"},
		{name: "custom error", give: dataError{data: "0x70de1b4b"}, want: "0x70de1b4b"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, revertReason(tt.give))
		})
	}
}

func TestWithRevertReason(t *testing.T) {
	t.Parallel()

	plain := errors.New("boom")
	assert.Equal(t, plain, withRevertReason(plain))

	annotated := withRevertReason(dataError{data: "0x70de1b4b"})
	require.EqualError(t, annotated, "execution reverted (revert reason: 0x70de1b4b)")
}
