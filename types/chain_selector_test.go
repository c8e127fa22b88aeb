package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chainsel "github.com/smartcontractkit/chain-selectors"
)

func TestGetChainSelectorFamily(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    ChainSelector
		want    string
		wantErr string
	}{
		{
			name: "success: evm",
			give: ChainSelector(chainsel.ETHEREUM_TESTNET_SEPOLIA.Selector),
			want: chainsel.FamilyEVM,
		},
		{
			name: "success: solana",
			give: ChainSelector(chainsel.SOLANA_DEVNET.Selector),
			want: chainsel.FamilySolana,
		},
		{
			name:    "invalid chain selector",
			give:    0,
			wantErr: "chain family not found for selector 0",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := GetChainSelectorFamily(tt.give)

			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestEVMChainID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    ChainSelector
		want    uint64
		wantErr error
	}{
		{
			name: "success: geth testnet",
			give: ChainSelector(chainsel.GETH_TESTNET.Selector),
			want: 1337,
		},
		{
			name: "success: sepolia",
			give: ChainSelector(chainsel.ETHEREUM_TESTNET_SEPOLIA.Selector),
			want: 11155111,
		},
		{
			name:    "failure: solana selector",
			give:    ChainSelector(chainsel.SOLANA_DEVNET.Selector),
			wantErr: ErrUnsupportedChainFamily,
		},
		{
			name:    "failure: unknown selector",
			give:    0,
			wantErr: ErrChainFamilyNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := EVMChainID(tt.give)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestChainSelector_Name(t *testing.T) {
	t.Parallel()

	assert.Equal(t, chainsel.ETHEREUM_TESTNET_SEPOLIA.Name, ChainSelector(chainsel.ETHEREUM_TESTNET_SEPOLIA.Selector).Name())
	assert.Equal(t, "0", ChainSelector(0).Name())
}
