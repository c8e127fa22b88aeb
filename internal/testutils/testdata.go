package testutils

import (
	"path/filepath"
	"runtime"
)

// DSHOPContractName is the contract stored in the test artifacts directory.
const DSHOPContractName = "DSHOP"

// ArtifactsDir returns the Hardhat artifacts directory holding the test build of DSHOP.
func ArtifactsDir() string {
	_, file, _, _ := runtime.Caller(0)

	return filepath.Join(filepath.Dir(file), "testdata", "artifacts")
}
