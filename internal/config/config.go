// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// NetworkConfig carries the constant addresses of one target deployment. They
// are configuration, not logic: the composers never consult compiled-in
// literals, so the module can run against other networks or test doubles.
type NetworkConfig struct {
	PumpFunProgram        string `mapstructure:"pumpfun_program"`
	PumpFunGlobal         string `mapstructure:"pumpfun_global"`
	PumpFunFeeRecipient   string `mapstructure:"pumpfun_fee_recipient"`
	PumpFunEventAuthority string `mapstructure:"pumpfun_event_authority"`
	RaydiumProgram        string `mapstructure:"raydium_program"`
	TipAccount            string `mapstructure:"tip_account"`
}

// PoolConfig lists the AMM pool account set for the swap operations.
type PoolConfig struct {
	Amm                  string `mapstructure:"amm"`
	AmmAuthority         string `mapstructure:"amm_authority"`
	AmmOpenOrders        string `mapstructure:"amm_open_orders"`
	AmmCoinVault         string `mapstructure:"amm_coin_vault"`
	AmmPcVault           string `mapstructure:"amm_pc_vault"`
	MarketProgram        string `mapstructure:"market_program"`
	Market               string `mapstructure:"market"`
	MarketBids           string `mapstructure:"market_bids"`
	MarketAsks           string `mapstructure:"market_asks"`
	MarketEventQueue     string `mapstructure:"market_event_queue"`
	MarketCoinVault      string `mapstructure:"market_coin_vault"`
	MarketPcVault        string `mapstructure:"market_pc_vault"`
	MarketVaultSigner    string `mapstructure:"market_vault_signer"`
	UserSourceToken      string `mapstructure:"user_source_token"`
	UserDestinationToken string `mapstructure:"user_destination_token"`
}

// TaskConfig describes the single trade this invocation performs.
type TaskConfig struct {
	Operation   string  `mapstructure:"operation"`
	TokenMint   string  `mapstructure:"token_mint"`
	AmountSol   float64 `mapstructure:"amount_sol"`
	TokenAmount uint64  `mapstructure:"token_amount"`
	Slippage    float64 `mapstructure:"slippage"`

	AmountIn     uint64 `mapstructure:"amount_in"`
	MinAmountOut uint64 `mapstructure:"min_amount_out"`
	MaxAmountIn  uint64 `mapstructure:"max_amount_in"`
	AmountOut    uint64 `mapstructure:"amount_out"`

	TipLamports              uint64 `mapstructure:"tip_lamports"`
	PriorityFeeMicroLamports uint64 `mapstructure:"priority_fee_micro_lamports"`
	ComputeUnits             uint32 `mapstructure:"compute_units"`
}

type Config struct {
	RPCURL       string        `mapstructure:"rpc_url"`
	WalletsFile  string        `mapstructure:"wallets_file"`
	WalletName   string        `mapstructure:"wallet_name"`
	DebugLogging bool          `mapstructure:"debug_logging"`
	Network      NetworkConfig `mapstructure:"network"`
	Pool         PoolConfig    `mapstructure:"pool"`
	Task         TaskConfig    `mapstructure:"task"`
}

// Mainnet defaults for the constant addresses.
const (
	DefaultPumpFunProgram        = "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"
	DefaultPumpFunGlobal         = "4wTV1YmiEkRvAtNtsSGPtUrqRYQMe5SKy2uB4Jjaxnjf"
	DefaultPumpFunFeeRecipient   = "CebN5WGQ4jvEPvsVU4EoHEpgzq1VV7AbicfhtW4xC9iM"
	DefaultPumpFunEventAuthority = "Ce6TQqeHC9p8KetsN6JsjHK7UTZk7nasjjnr7XxXp9F1"
	DefaultRaydiumProgram        = "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8"
)

// LoadConfig reads and validates the config file at path.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := map[string]interface{}{
		"wallets_file":                    "configs/wallets.csv",
		"network.pumpfun_program":         DefaultPumpFunProgram,
		"network.pumpfun_global":          DefaultPumpFunGlobal,
		"network.pumpfun_fee_recipient":   DefaultPumpFunFeeRecipient,
		"network.pumpfun_event_authority": DefaultPumpFunEventAuthority,
		"network.raydium_program":         DefaultRaydiumProgram,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if c.RPCURL == "" {
		return errors.New("rpc_url is required")
	}
	u, err := url.Parse(c.RPCURL)
	if err != nil || !strings.HasPrefix(u.Scheme, "http") {
		return errors.New("rpc_url must be an http(s) URL")
	}
	if c.WalletName == "" {
		return errors.New("wallet_name is required")
	}
	if c.Task.Operation == "" {
		return errors.New("task.operation is required")
	}
	if c.Task.TipLamports > 0 && c.Network.TipAccount == "" {
		return errors.New("network.tip_account is required when task.tip_lamports > 0")
	}
	return nil
}
