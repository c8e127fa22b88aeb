package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Deployment describes a confirmed contract deployment.
type Deployment struct {
	// ContractName is the name of the deployed contract.
	ContractName string `json:"contract_name"`
	// Address is the address assigned to the contract by the network.
	Address common.Address `json:"address"`
	// TxHash is the transaction hash of the deployment transaction.
	TxHash common.Hash `json:"tx_hash"`
	// BlockNumber is the block number where the contract was deployed.
	BlockNumber uint64 `json:"block_number"`
	// Deployer is the account that submitted the deployment transaction.
	Deployer common.Address `json:"deployer"`
	// GasUsed is the gas consumed by the deployment.
	GasUsed uint64 `json:"gas_used"`
	// DeployedAt is the local time the deployment was confirmed.
	DeployedAt time.Time `json:"deployed_at" format:"date-time"`
}
