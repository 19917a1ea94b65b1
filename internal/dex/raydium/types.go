// internal/dex/raydium/types.go
// Package raydium composes swap calls against the Raydium AMM on Solana.
package raydium

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// PoolAccounts is the full AMM account set a swap call references: the pool
// itself, its order-book market and sub-accounts, and the user's token
// accounts. All of them are trusted inputs from the caller; the AMM program
// validates their content at execution time.
type PoolAccounts struct {
	// AMM pool
	Amm           solana.PublicKey
	AmmAuthority  solana.PublicKey
	AmmOpenOrders solana.PublicKey
	AmmCoinVault  solana.PublicKey
	AmmPcVault    solana.PublicKey

	// Order-book market
	MarketProgram     solana.PublicKey
	Market            solana.PublicKey
	MarketBids        solana.PublicKey
	MarketAsks        solana.PublicKey
	MarketEventQueue  solana.PublicKey
	MarketCoinVault   solana.PublicKey
	MarketPcVault     solana.PublicKey
	MarketVaultSigner solana.PublicKey

	// User holdings
	UserSourceToken      solana.PublicKey
	UserDestinationToken solana.PublicKey
}

// Validate checks that every account reference is set. Zero keys here would
// produce a call the AMM program rejects; catch them before composing.
func (p *PoolAccounts) Validate() error {
	checks := []struct {
		name string
		key  solana.PublicKey
	}{
		{"amm", p.Amm},
		{"amm_authority", p.AmmAuthority},
		{"amm_open_orders", p.AmmOpenOrders},
		{"amm_coin_vault", p.AmmCoinVault},
		{"amm_pc_vault", p.AmmPcVault},
		{"market_program", p.MarketProgram},
		{"market", p.Market},
		{"market_bids", p.MarketBids},
		{"market_asks", p.MarketAsks},
		{"market_event_queue", p.MarketEventQueue},
		{"market_coin_vault", p.MarketCoinVault},
		{"market_pc_vault", p.MarketPcVault},
		{"market_vault_signer", p.MarketVaultSigner},
		{"user_source_token", p.UserSourceToken},
		{"user_destination_token", p.UserDestinationToken},
	}
	for _, c := range checks {
		if c.key.IsZero() {
			return fmt.Errorf("missing pool account: %s", c.name)
		}
	}
	return nil
}

// SwapParams describes one swap call.
type SwapParams struct {
	Accounts PoolAccounts

	// Exact-in: AmountIn and MinAmountOut are set.
	// Exact-out: MaxAmountIn and AmountOut are set.
	AmountIn     uint64
	MinAmountOut uint64
	MaxAmountIn  uint64
	AmountOut    uint64

	// TipLamports schedules the incentive-fee transfer before the swap.
	TipLamports uint64

	// Priority fee settings for the compute budget stage; zero disables it.
	PriorityFeeMicroLamports uint64
	ComputeUnits             uint32
}
