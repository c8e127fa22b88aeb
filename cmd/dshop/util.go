package dshop

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dshop-nft/dshop/artifacts"
	"github.com/dshop-nft/dshop/internal/config"
	"github.com/dshop-nft/dshop/sdk"
	sdkerrors "github.com/dshop-nft/dshop/sdk/errors"
	"github.com/dshop-nft/dshop/sdk/evm"
)

// backend is the node access needed by the commands.
type backend interface {
	sdk.ContractDeployBackend
	evm.ChainIDReader
}

type dialFunc func(ctx context.Context, rawURL string) (backend, error)

func dialEthClient(ctx context.Context, rawURL string) (backend, error) {
	client, err := ethclient.DialContext(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	return client, nil
}

// connect dials the configured node. The returned func releases the connection.
func connect(ctx context.Context, dial dialFunc, cfg *config.Config) (backend, func(), error) {
	client, err := dial(ctx, cfg.RPCURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s: %w", cfg.RPCURL, err)
	}

	closeFn := func() {}
	if c, ok := client.(interface{ Close() }); ok {
		closeFn = c.Close
	}

	return client, closeFn, nil
}

// newResolver opens the artifacts directory. A missing directory means nothing was compiled, which
// is reported like a missing artifact.
func newResolver(dir, contractName string) (*artifacts.Resolver, error) {
	resolver, err := artifacts.NewResolver(dir)
	if err != nil {
		return nil, sdkerrors.NewResolutionError(contractName, "", err)
	}

	return resolver, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return cfg.Build()
}

func loggerContext(ctx context.Context, logger *zap.Logger) context.Context {
	return sdk.WithLogger(ctx, logger.Sugar())
}
