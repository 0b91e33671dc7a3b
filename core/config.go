package core

import (
	"fmt"
	"strings"
)

type TransferConfig struct {
	AllowSelfTransfer     bool     `koanf:"allow_self_transfer" mapstructure:"allow_self_transfer"`
	SupportedCryptoAssets []string `koanf:"supported_crypto_assets" mapstructure:"supported_crypto_assets"`
	ReversalMaxAttempts   int      `koanf:"reversal_max_attempts" mapstructure:"reversal_max_attempts"`
}

// SupportsCryptoAsset reports whether symbol is in the closed supported set.
// Matching is case-insensitive; configuration is normalized on load.
func (c TransferConfig) SupportsCryptoAsset(symbol string) bool {
	needle := strings.ToUpper(strings.TrimSpace(symbol))
	for _, asset := range c.SupportedCryptoAssets {
		if strings.ToUpper(strings.TrimSpace(asset)) == needle {
			return true
		}
	}
	return false
}

type QueryConfig struct {
	TransactionsPageSize int `koanf:"transactions_page_size" mapstructure:"transactions_page_size"`
	DashboardRecentLimit int `koanf:"dashboard_recent_limit" mapstructure:"dashboard_recent_limit"`
}

type Config struct {
	ServiceName string         `koanf:"service_name" mapstructure:"service_name"`
	Transfers   TransferConfig `koanf:"transfers" mapstructure:"transfers"`
	Queries     QueryConfig    `koanf:"queries" mapstructure:"queries"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "ledger",
		Transfers: TransferConfig{
			AllowSelfTransfer:     false,
			SupportedCryptoAssets: []string{"BTC", "ETH", "USDT"},
			ReversalMaxAttempts:   5,
		},
		Queries: QueryConfig{
			TransactionsPageSize: 50,
			DashboardRecentLimit: 10,
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if len(c.Transfers.SupportedCryptoAssets) == 0 {
		return fmt.Errorf("core: transfers.supported_crypto_assets must not be empty")
	}
	if c.Transfers.ReversalMaxAttempts <= 0 {
		return fmt.Errorf("core: transfers.reversal_max_attempts must be positive")
	}
	if c.Queries.TransactionsPageSize <= 0 {
		return fmt.Errorf("core: queries.transactions_page_size must be positive")
	}
	if c.Queries.DashboardRecentLimit <= 0 {
		return fmt.Errorf("core: queries.dashboard_recent_limit must be positive")
	}
	return nil
}
