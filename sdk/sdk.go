package sdk

import (
	"github.com/ethereum/go-ethereum/accounts/abi/bind"

	"github.com/dshop-nft/dshop/artifacts"
)

// ContractDeployBackend is the chain access needed to deploy a contract and wait for it.
type ContractDeployBackend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// ArtifactResolver looks up the build artifact of a named contract.
type ArtifactResolver interface {
	Resolve(name string) (*artifacts.Artifact, error)
}
