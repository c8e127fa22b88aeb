// Package config loads the deployer settings from the environment and an optional .env file.
package config

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"

	"github.com/dshop-nft/dshop/internal/utils/safecast"
	"github.com/dshop-nft/dshop/types"
)

const (
	EnvPrivateKey     = "PRIVATE_KEY"
	EnvRPCURL         = "RPC_URL"
	EnvChainSelector  = "CHAIN_SELECTOR"
	EnvArtifactsDir   = "ARTIFACTS_DIR"
	EnvConfirmTimeout = "CONFIRM_TIMEOUT"
	EnvPollInterval   = "POLL_INTERVAL"
	EnvGasLimit       = "GAS_LIMIT"

	DefaultEnvFile        = ".env"
	DefaultArtifactsDir   = "artifacts"
	DefaultConfirmTimeout = 5 * time.Minute
	DefaultPollInterval   = time.Second
)

// Config holds the deployer settings.
type Config struct {
	// PrivateKey is the hex encoded key of the deploying account, with or without 0x prefix.
	PrivateKey string `validate:"required,hexadecimal"`

	// RPCURL is the node endpoint (http, https, ws or wss).
	RPCURL string `validate:"required,url"`

	// ChainSelector optionally pins the chain; the node must report the matching chain ID.
	ChainSelector types.ChainSelector

	// ArtifactsDir is the Hardhat artifacts directory.
	ArtifactsDir string `validate:"required"`

	// ConfirmTimeout bounds the wait for the deployment receipt.
	ConfirmTimeout types.Duration

	// PollInterval is how often the receipt is queried.
	PollInterval types.Duration

	// GasLimit overrides gas estimation when non zero.
	GasLimit uint64
}

// Load reads envFile, when it exists, into the process environment without overriding variables
// that are already set, then builds and validates the Config.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	return FromEnv(os.Getenv)
}

// FromEnv builds the Config from a variable lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		PrivateKey:     strings.TrimSpace(getenv(EnvPrivateKey)),
		RPCURL:         strings.TrimSpace(getenv(EnvRPCURL)),
		ArtifactsDir:   ArtifactsDir(getenv),
		ConfirmTimeout: types.NewDuration(DefaultConfirmTimeout),
		PollInterval:   types.NewDuration(DefaultPollInterval),
	}

	if raw := strings.TrimSpace(getenv(EnvChainSelector)); raw != "" {
		sel, err := cast.ToUint64E(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvChainSelector, err)
		}
		cfg.ChainSelector = types.ChainSelector(sel)
	}

	if raw := strings.TrimSpace(getenv(EnvConfirmTimeout)); raw != "" {
		d, err := types.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvConfirmTimeout, err)
		}
		cfg.ConfirmTimeout = d
	}

	if raw := strings.TrimSpace(getenv(EnvPollInterval)); raw != "" {
		d, err := types.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvPollInterval, err)
		}
		cfg.PollInterval = d
	}

	if raw := strings.TrimSpace(getenv(EnvGasLimit)); raw != "" {
		signed, err := cast.ToInt64E(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvGasLimit, err)
		}
		if cfg.GasLimit, err = safecast.Int64ToUint64(signed); err != nil {
			return nil, fmt.Errorf("%s: %w", EnvGasLimit, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the required settings are present and well formed.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if !c.ConfirmTimeout.Positive() {
		return fmt.Errorf("%s must be positive", EnvConfirmTimeout)
	}

	if !c.PollInterval.Positive() {
		return fmt.Errorf("%s must be positive", EnvPollInterval)
	}

	if c.ChainSelector != 0 {
		if _, err := types.EVMChainID(c.ChainSelector); err != nil {
			return fmt.Errorf("%s: %w", EnvChainSelector, err)
		}
	}

	return nil
}

// Key decodes the private key.
func (c *Config) Key() (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(c.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvPrivateKey, err)
	}

	return key, nil
}

// ArtifactsDir returns the configured artifacts directory, which does not require the rest of the
// settings to be present.
func ArtifactsDir(getenv func(string) string) string {
	if dir := strings.TrimSpace(getenv(EnvArtifactsDir)); dir != "" {
		return dir
	}

	return DefaultArtifactsDir
}
