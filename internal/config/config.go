package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/constants"
)

type Config struct {
	// NodeURL is the REST endpoint of the ledger full node.
	NodeURL string `mapstructure:"node_url"`
	// FaucetURL is the test-token dispenser endpoint.
	FaucetURL string `mapstructure:"faucet_url"`
	// ListenAddr is the local API bind address.
	ListenAddr string `mapstructure:"listen_addr"`

	// GasReserve is the margin subtracted from the balance when validating
	// whether a transfer is affordable, as a decimal string.
	GasReserve string `mapstructure:"gas_reserve"`
	// FaucetAmount is the fixed amount requested per faucet call.
	FaucetAmount uint64 `mapstructure:"faucet_amount"`

	// DiscoveryConcurrency bounds in-flight coin-info fetches during asset
	// discovery. 1 means strictly sequential.
	DiscoveryConcurrency int `mapstructure:"discovery_concurrency"`

	// PrivateKeyHex seeds the signing identity. Empty means an ephemeral
	// key is generated at startup.
	PrivateKeyHex string `mapstructure:"private_key_hex"`

	Debug bool `mapstructure:"debug"`
}

// Load reads config.yaml from the usual candidates, overlaid with
// CXLAB_-prefixed environment variables, overlaid on built-in defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("node_url", constants.DefaultNodeURL)
	v.SetDefault("faucet_url", constants.DefaultFaucetURL)
	v.SetDefault("listen_addr", constants.DefaultListenAddr)
	v.SetDefault("gas_reserve", constants.DefaultGasReserve)
	v.SetDefault("faucet_amount", constants.DefaultFaucetAmount)
	v.SetDefault("discovery_concurrency", 1)
	v.SetDefault("private_key_hex", "")
	v.SetDefault("debug", false)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", constants.AppName))
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("CXLAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.NodeURL) == "" {
		return errors.New("node_url must not be empty")
	}
	if strings.TrimSpace(c.GasReserve) == "" {
		return errors.New("gas_reserve must not be empty")
	}
	if c.DiscoveryConcurrency < 1 {
		return errors.New("discovery_concurrency must be >= 1")
	}
	return nil
}
