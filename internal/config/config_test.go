package config

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	chainsel "github.com/smartcontractkit/chain-selectors"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/dshop-nft/dshop/types"
)

const testKey = "0x8f2a55949038a9610f50fb23b5883af3b4ecb3c3bb792cbcefbd1542c692be63"

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestFromEnv(t *testing.T) {
	t.Parallel()

	gethSel := strconv.FormatUint(chainsel.GETH_TESTNET.Selector, 10)

	tests := []struct {
		name    string
		env     map[string]string
		want    *Config
		wantErr string
	}{
		{
			name: "defaults",
			env: map[string]string{
				EnvPrivateKey: testKey,
				EnvRPCURL:     "http://127.0.0.1:8545",
			},
			want: &Config{
				PrivateKey:     testKey,
				RPCURL:         "http://127.0.0.1:8545",
				ArtifactsDir:   DefaultArtifactsDir,
				ConfirmTimeout: types.NewDuration(DefaultConfirmTimeout),
				PollInterval:   types.NewDuration(DefaultPollInterval),
			},
		},
		{
			name: "all set",
			env: map[string]string{
				EnvPrivateKey:     testKey[2:],
				EnvRPCURL:         "wss://node.example.org",
				EnvChainSelector:  gethSel,
				EnvArtifactsDir:   "build/artifacts",
				EnvConfirmTimeout: "90s",
				EnvPollInterval:   "250ms",
				EnvGasLimit:       "3000000",
			},
			want: &Config{
				PrivateKey:     testKey[2:],
				RPCURL:         "wss://node.example.org",
				ChainSelector:  types.ChainSelector(chainsel.GETH_TESTNET.Selector),
				ArtifactsDir:   "build/artifacts",
				ConfirmTimeout: types.NewDuration(90 * time.Second),
				PollInterval:   types.NewDuration(250 * time.Millisecond),
				GasLimit:       3_000_000,
			},
		},
		{
			name:    "missing private key",
			env:     map[string]string{EnvRPCURL: "http://127.0.0.1:8545"},
			wantErr: "Config.PrivateKey",
		},
		{
			name:    "private key not hex",
			env:     map[string]string{EnvPrivateKey: "not-a-key", EnvRPCURL: "http://127.0.0.1:8545"},
			wantErr: "Config.PrivateKey",
		},
		{
			name:    "missing rpc url",
			env:     map[string]string{EnvPrivateKey: testKey},
			wantErr: "Config.RPCURL",
		},
		{
			name: "invalid selector",
			env: map[string]string{
				EnvPrivateKey: testKey, EnvRPCURL: "http://127.0.0.1:8545", EnvChainSelector: "abc",
			},
			wantErr: EnvChainSelector,
		},
		{
			name: "non evm selector",
			env: map[string]string{
				EnvPrivateKey:    testKey,
				EnvRPCURL:        "http://127.0.0.1:8545",
				EnvChainSelector: strconv.FormatUint(chainsel.SOLANA_DEVNET.Selector, 10),
			},
			wantErr: "unsupported chain family",
		},
		{
			name: "invalid timeout",
			env: map[string]string{
				EnvPrivateKey: testKey, EnvRPCURL: "http://127.0.0.1:8545", EnvConfirmTimeout: "soon",
			},
			wantErr: EnvConfirmTimeout,
		},
		{
			name: "non positive poll interval",
			env: map[string]string{
				EnvPrivateKey: testKey, EnvRPCURL: "http://127.0.0.1:8545", EnvPollInterval: "0s",
			},
			wantErr: EnvPollInterval + " must be positive",
		},
		{
			name: "negative gas limit",
			env: map[string]string{
				EnvPrivateKey: testKey, EnvRPCURL: "http://127.0.0.1:8545", EnvGasLimit: "-1",
			},
			wantErr: EnvGasLimit,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := FromEnv(envMap(tt.env))
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}

			assert.NilError(t, err)
			assert.DeepEqual(t, tt.want, got)
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := EnvPrivateKey + "=" + testKey + "\n" +
		EnvRPCURL + "=http://from-file:8545\n" +
		EnvArtifactsDir + "=from-file\n"
	assert.NilError(t, os.WriteFile(envFile, []byte(content), 0o600))

	// Process environment wins over the file.
	t.Setenv(EnvArtifactsDir, "from-env")
	t.Setenv(EnvRPCURL, "")
	os.Unsetenv(EnvRPCURL) //nolint:errcheck
	t.Setenv(EnvPrivateKey, "")
	os.Unsetenv(EnvPrivateKey) //nolint:errcheck

	cfg, err := Load(envFile)
	assert.NilError(t, err)
	assert.Equal(t, "http://from-file:8545", cfg.RPCURL)
	assert.Equal(t, "from-env", cfg.ArtifactsDir)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	t.Setenv(EnvPrivateKey, testKey)
	t.Setenv(EnvRPCURL, "http://127.0.0.1:8545")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NilError(t, err)
	assert.Equal(t, DefaultConfirmTimeout, cfg.ConfirmTimeout.Duration)
}

func TestConfig_Key(t *testing.T) {
	t.Parallel()

	withPrefix := &Config{PrivateKey: testKey}
	key, err := withPrefix.Key()
	assert.NilError(t, err)

	withoutPrefix := &Config{PrivateKey: testKey[2:]}
	other, err := withoutPrefix.Key()
	assert.NilError(t, err)
	assert.Check(t, key.Equal(other))

	_, err = (&Config{PrivateKey: "0x1234"}).Key()
	assert.Check(t, is.ErrorContains(err, EnvPrivateKey))
}
