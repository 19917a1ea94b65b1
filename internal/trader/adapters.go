// internal/trader/adapters.go
package trader

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/solana-composer/internal/dex"
	"github.com/rovshanmuradov/solana-composer/internal/dex/pumpfun"
	"github.com/rovshanmuradov/solana-composer/internal/dex/raydium"
)

// pumpfunAdapter exposes the bonding-curve composer through the DEX interface.
type pumpfunAdapter struct {
	inner  *pumpfun.DEX
	logger *zap.Logger
}

func (a *pumpfunAdapter) GetName() string {
	return "Pump.fun"
}

func (a *pumpfunAdapter) Execute(ctx context.Context, task *dex.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	switch task.Operation {
	case dex.OperationBuy:
		a.logger.Info("Executing buy on Pump.fun")
		_, err := a.inner.ExecuteBuy(ctx, task.AmountSol, task.Slippage, task.TipLamports)
		return err
	case dex.OperationSell:
		a.logger.Info("Executing sell on Pump.fun")
		_, err := a.inner.ExecuteSell(ctx, task.TokenAmount, task.Slippage, task.TipLamports)
		return err
	default:
		return fmt.Errorf("operation %s is not supported on Pump.fun", task.Operation)
	}
}

// raydiumAdapter exposes the AMM composer through the DEX interface. The pool
// account set and priority-fee settings come from deployment config.
type raydiumAdapter struct {
	client                   *raydium.Client
	pool                     raydium.PoolAccounts
	priorityFeeMicroLamports uint64
	computeUnits             uint32
	logger                   *zap.Logger
}

func (a *raydiumAdapter) GetName() string {
	return "Raydium"
}

func (a *raydiumAdapter) Execute(ctx context.Context, task *dex.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	params := &raydium.SwapParams{
		Accounts:                 a.pool,
		TipLamports:              task.TipLamports,
		PriorityFeeMicroLamports: a.priorityFeeMicroLamports,
		ComputeUnits:             a.computeUnits,
	}

	switch task.Operation {
	case dex.OperationSwapIn:
		a.logger.Info("Executing swap exact-in on Raydium")
		params.AmountIn = task.AmountIn
		params.MinAmountOut = task.MinAmountOut
		_, err := a.client.SwapExactIn(ctx, params)
		return err
	case dex.OperationSwapOut:
		a.logger.Info("Executing swap exact-out on Raydium")
		params.MaxAmountIn = task.MaxAmountIn
		params.AmountOut = task.AmountOut
		_, err := a.client.SwapExactOut(ctx, params)
		return err
	default:
		return fmt.Errorf("operation %s is not supported on Raydium", task.Operation)
	}
}
