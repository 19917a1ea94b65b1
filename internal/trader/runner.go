// internal/trader/runner.go
package trader

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/solana-composer/internal/blockchain/solbc"
	"github.com/rovshanmuradov/solana-composer/internal/config"
	"github.com/rovshanmuradov/solana-composer/internal/dex"
	"github.com/rovshanmuradov/solana-composer/internal/dex/pumpfun"
	"github.com/rovshanmuradov/solana-composer/internal/dex/raydium"
	"github.com/rovshanmuradov/solana-composer/internal/utils/logger"
	"github.com/rovshanmuradov/solana-composer/internal/wallet"
)

// Runner wires config, wallet and client into one trade execution.
type Runner struct {
	logger *logger.Logger
	cfg    *config.Config
	wallet *wallet.Wallet
	client *solbc.Client
}

// NewRunner creates an uninitialized runner.
func NewRunner(log *logger.Logger) *Runner {
	return &Runner{logger: log}
}

// Initialize loads the config file and builds the wallet and RPC client.
func (r *Runner) Initialize(configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	r.cfg = cfg

	wallets, err := wallet.LoadWallets(cfg.WalletsFile)
	if err != nil {
		return fmt.Errorf("failed to load wallets: %w", err)
	}
	w, ok := wallets[cfg.WalletName]
	if !ok {
		return fmt.Errorf("wallet %q not found in %s", cfg.WalletName, cfg.WalletsFile)
	}
	r.wallet = w

	r.client = solbc.NewClient(cfg.RPCURL, r.logger.Logger)

	r.logger.Info("Runner initialized",
		zap.String("rpc_url", cfg.RPCURL),
		zap.String("wallet", w.String()),
		zap.String("operation", cfg.Task.Operation))

	return nil
}

// Run executes the configured trade task once and returns its outcome.
func (r *Runner) Run(ctx context.Context) error {
	task := &dex.Task{
		Operation:    dex.OperationType(r.cfg.Task.Operation),
		TokenMint:    r.cfg.Task.TokenMint,
		AmountSol:    r.cfg.Task.AmountSol,
		TokenAmount:  r.cfg.Task.TokenAmount,
		Slippage:     r.cfg.Task.Slippage,
		AmountIn:     r.cfg.Task.AmountIn,
		MinAmountOut: r.cfg.Task.MinAmountOut,
		MaxAmountIn:  r.cfg.Task.MaxAmountIn,
		AmountOut:    r.cfg.Task.AmountOut,
		TipLamports:  r.cfg.Task.TipLamports,
	}
	if err := task.Validate(); err != nil {
		return err
	}

	// Every log line of this run carries the same correlation id.
	opLogger := r.logger.WithOperation(string(task.Operation))

	engine, err := r.buildEngine(ctx, task.Operation, opLogger)
	if err != nil {
		return err
	}

	opLogger.Info("Executing trade", zap.String("engine", engine.GetName()))

	return engine.Execute(ctx, task)
}

// buildEngine selects and constructs the engine implementation for the
// operation from configuration.
func (r *Runner) buildEngine(ctx context.Context, op dex.OperationType, opLogger *zap.Logger) (dex.DEX, error) {
	tipAccount, err := parseOptionalKey(r.cfg.Network.TipAccount)
	if err != nil {
		return nil, fmt.Errorf("invalid tip account: %w", err)
	}

	switch op {
	case dex.OperationBuy, dex.OperationSell:
		pfCfg, err := r.buildPumpfunConfig(ctx, opLogger)
		if err != nil {
			return nil, err
		}
		inner, err := pumpfun.NewDEX(r.client, r.wallet, opLogger, pfCfg, tipAccount)
		if err != nil {
			return nil, fmt.Errorf("could not create Pump.fun composer: %w", err)
		}
		inner.PriorityFeeMicroLamports = r.cfg.Task.PriorityFeeMicroLamports
		inner.ComputeUnits = r.cfg.Task.ComputeUnits
		return &pumpfunAdapter{inner: inner, logger: opLogger}, nil

	case dex.OperationSwapIn, dex.OperationSwapOut:
		programID, err := parseOptionalKey(r.cfg.Network.RaydiumProgram)
		if err != nil {
			return nil, fmt.Errorf("invalid raydium program: %w", err)
		}
		pool, err := r.buildPoolAccounts()
		if err != nil {
			return nil, err
		}
		client := raydium.NewClient(r.client, r.wallet, opLogger, programID, tipAccount)
		return &raydiumAdapter{
			client:                   client,
			pool:                     pool,
			priorityFeeMicroLamports: r.cfg.Task.PriorityFeeMicroLamports,
			computeUnits:             r.cfg.Task.ComputeUnits,
			logger:                   opLogger,
		}, nil

	default:
		return nil, fmt.Errorf("unknown operation: %s", op)
	}
}

func (r *Runner) buildPumpfunConfig(ctx context.Context, opLogger *zap.Logger) (*pumpfun.Config, error) {
	cfg := pumpfun.GetDefaultConfig()

	var err error
	if cfg.ContractAddress, err = parseKeyOr(r.cfg.Network.PumpFunProgram, pumpfun.PumpFunProgramID); err != nil {
		return nil, fmt.Errorf("invalid pumpfun program: %w", err)
	}
	if cfg.Global, err = parseKeyOr(r.cfg.Network.PumpFunGlobal, pumpfun.PumpFunGlobal); err != nil {
		return nil, fmt.Errorf("invalid pumpfun global: %w", err)
	}
	if cfg.EventAuthority, err = parseKeyOr(r.cfg.Network.PumpFunEventAuthority, pumpfun.PumpFunEventAuth); err != nil {
		return nil, fmt.Errorf("invalid pumpfun event authority: %w", err)
	}

	if err = cfg.SetupForToken(r.cfg.Task.TokenMint, opLogger); err != nil {
		return nil, err
	}

	// A config without a fee recipient delegates the choice to the global
	// account's current value.
	if r.cfg.Network.PumpFunFeeRecipient == "" {
		global, err := pumpfun.FetchGlobalAccount(ctx, r.client, cfg.Global, cfg.ContractAddress, opLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve fee recipient: %w", err)
		}
		cfg.FeeRecipient = global.FeeRecipient
	} else {
		if cfg.FeeRecipient, err = solana.PublicKeyFromBase58(r.cfg.Network.PumpFunFeeRecipient); err != nil {
			return nil, fmt.Errorf("invalid pumpfun fee recipient: %w", err)
		}
	}

	return cfg, nil
}

func (r *Runner) buildPoolAccounts() (raydium.PoolAccounts, error) {
	p := r.cfg.Pool
	keys := map[string]string{
		"amm":                    p.Amm,
		"amm_authority":          p.AmmAuthority,
		"amm_open_orders":        p.AmmOpenOrders,
		"amm_coin_vault":         p.AmmCoinVault,
		"amm_pc_vault":           p.AmmPcVault,
		"market_program":         p.MarketProgram,
		"market":                 p.Market,
		"market_bids":            p.MarketBids,
		"market_asks":            p.MarketAsks,
		"market_event_queue":     p.MarketEventQueue,
		"market_coin_vault":      p.MarketCoinVault,
		"market_pc_vault":        p.MarketPcVault,
		"market_vault_signer":    p.MarketVaultSigner,
		"user_source_token":      p.UserSourceToken,
		"user_destination_token": p.UserDestinationToken,
	}
	parsed := make(map[string]solana.PublicKey, len(keys))
	for name, value := range keys {
		key, err := solana.PublicKeyFromBase58(value)
		if err != nil {
			return raydium.PoolAccounts{}, fmt.Errorf("invalid pool account %s: %w", name, err)
		}
		parsed[name] = key
	}

	return raydium.PoolAccounts{
		Amm:                  parsed["amm"],
		AmmAuthority:         parsed["amm_authority"],
		AmmOpenOrders:        parsed["amm_open_orders"],
		AmmCoinVault:         parsed["amm_coin_vault"],
		AmmPcVault:           parsed["amm_pc_vault"],
		MarketProgram:        parsed["market_program"],
		Market:               parsed["market"],
		MarketBids:           parsed["market_bids"],
		MarketAsks:           parsed["market_asks"],
		MarketEventQueue:     parsed["market_event_queue"],
		MarketCoinVault:      parsed["market_coin_vault"],
		MarketPcVault:        parsed["market_pc_vault"],
		MarketVaultSigner:    parsed["market_vault_signer"],
		UserSourceToken:      parsed["user_source_token"],
		UserDestinationToken: parsed["user_destination_token"],
	}, nil
}

func parseOptionalKey(value string) (solana.PublicKey, error) {
	if value == "" {
		return solana.PublicKey{}, nil
	}
	return solana.PublicKeyFromBase58(value)
}

func parseKeyOr(value string, fallback solana.PublicKey) (solana.PublicKey, error) {
	if value == "" {
		return fallback, nil
	}
	return solana.PublicKeyFromBase58(value)
}
