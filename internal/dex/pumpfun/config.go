// =============================
// File: internal/dex/pumpfun/config.go
// =============================
package pumpfun

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// Known mainnet pump.fun addresses, used as defaults when the deployment
// config leaves them empty. The composers read them from Config only.
var (
	PumpFunProgramID    = solana.MustPublicKeyFromBase58("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")
	PumpFunGlobal       = solana.MustPublicKeyFromBase58("4wTV1YmiEkRvAtNtsSGPtUrqRYQMe5SKy2uB4Jjaxnjf")
	PumpFunFeeRecipient = solana.MustPublicKeyFromBase58("CebN5WGQ4jvEPvsVU4EoHEpgzq1VV7AbicfhtW4xC9iM")
	PumpFunEventAuth    = solana.MustPublicKeyFromBase58("Ce6TQqeHC9p8KetsN6JsjHK7UTZk7nasjjnr7XxXp9F1")

	AssociatedTokenProgramID = solana.MustPublicKeyFromBase58("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")
)

// Config holds the deployment-specific addresses for the pump.fun engine.
type Config struct {
	// Protocol addresses
	ContractAddress solana.PublicKey
	Global          solana.PublicKey
	FeeRecipient    solana.PublicKey
	EventAuthority  solana.PublicKey

	// Token specific addresses
	Mint                   solana.PublicKey
	BondingCurve           solana.PublicKey
	AssociatedBondingCurve solana.PublicKey
}

// GetDefaultConfig creates a configuration carrying the mainnet defaults.
func GetDefaultConfig() *Config {
	return &Config{
		ContractAddress: PumpFunProgramID,
		Global:          PumpFunGlobal,
		FeeRecipient:    PumpFunFeeRecipient,
		EventAuthority:  PumpFunEventAuth,
	}
}

// SetupForToken configures the Config instance for a specific token: sets the
// mint and derives the bonding curve accounts from it.
func (cfg *Config) SetupForToken(tokenMint string, logger *zap.Logger) error {
	if tokenMint == "" {
		return fmt.Errorf("token mint address is required")
	}

	var err error
	cfg.Mint, err = solana.PublicKeyFromBase58(tokenMint)
	if err != nil {
		return fmt.Errorf("invalid token mint address: %w", err)
	}

	if cfg.ContractAddress.IsZero() {
		cfg.ContractAddress = PumpFunProgramID
	}
	if cfg.Global.IsZero() {
		cfg.Global = PumpFunGlobal
	}
	if cfg.EventAuthority.IsZero() {
		cfg.EventAuthority = PumpFunEventAuth
	}

	// Derive the bonding curve PDA and its token account
	cfg.BondingCurve, _, err = solana.FindProgramAddress(
		[][]byte{[]byte("bonding-curve"), cfg.Mint.Bytes()},
		cfg.ContractAddress,
	)
	if err != nil {
		return fmt.Errorf("failed to derive bonding curve: %w", err)
	}

	cfg.AssociatedBondingCurve, _, err = solana.FindAssociatedTokenAddress(cfg.BondingCurve, cfg.Mint)
	if err != nil {
		return fmt.Errorf("failed to derive associated bonding curve: %w", err)
	}

	logger.Info("PumpFun configuration prepared",
		zap.String("program_id", cfg.ContractAddress.String()),
		zap.String("global_account", cfg.Global.String()),
		zap.String("token_mint", cfg.Mint.String()),
		zap.String("bonding_curve", cfg.BondingCurve.String()),
		zap.String("event_authority", cfg.EventAuthority.String()))

	return nil
}
