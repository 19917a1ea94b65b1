// =============================
// File: internal/dex/pumpfun/accounts.go
// =============================
package pumpfun

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rovshanmuradov/solana-composer/internal/blockchain/solbc"
)

// FetchBondingCurveState reads the bonding curve account and decodes the
// reserve snapshot. The curve is read exactly once per trade call.
func (d *DEX) FetchBondingCurveState(ctx context.Context, bondingCurve solana.PublicKey) (*BondingCurveState, error) {
	accountInfo, err := d.client.GetAccountInfo(ctx, bondingCurve)
	if err != nil {
		return nil, fmt.Errorf("failed to get bonding curve account: %w", err)
	}
	if accountInfo == nil || accountInfo.Value == nil {
		return nil, fmt.Errorf("bonding curve account not found: %s", bondingCurve.String())
	}

	state, err := ParseBondingCurveState(accountInfo.Value.Data.GetBinary())
	if err != nil {
		return nil, err
	}

	d.logger.Debug("Fetched bonding curve state",
		zap.Uint64("virtual_token_reserves", state.VirtualTokenReserves),
		zap.Uint64("virtual_sol_reserves", state.VirtualSolReserves),
		zap.Bool("complete", state.Complete))

	return state, nil
}

// userATAExists reports whether the initiator's holding account exists. The
// existence test is zero stored data length, matching the on-chain check.
func (d *DEX) userATAExists(ctx context.Context, ata solana.PublicKey) (bool, error) {
	accountInfo, err := d.client.GetAccountInfo(ctx, ata)
	if err != nil {
		if solbc.IsAccountNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check holding account: %w", err)
	}
	if accountInfo == nil || accountInfo.Value == nil {
		return false, nil
	}
	return len(accountInfo.Value.Data.GetBinary()) > 0, nil
}

// buyPreflight fetches the curve snapshot and the holding-account existence
// flag in one parallel round. Both reads are needed before a buy can be
// composed; neither depends on the other.
func (d *DEX) buyPreflight(ctx context.Context, bondingCurve, userATA solana.PublicKey) (*BondingCurveState, bool, error) {
	var (
		state     *BondingCurveState
		ataExists bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		state, err = d.FetchBondingCurveState(gctx, bondingCurve)
		return err
	})
	g.Go(func() error {
		var err error
		ataExists, err = d.userATAExists(gctx, userATA)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, false, err
	}
	return state, ataExists, nil
}

// GetTokenBalance returns the initiator's raw token balance, trying the fast
// Processed commitment first and falling back to Confirmed.
func (d *DEX) GetTokenBalance(ctx context.Context, commitment ...rpc.CommitmentType) (uint64, error) {
	userATA, err := d.wallet.GetATA(d.config.Mint)
	if err != nil {
		return 0, fmt.Errorf("failed to derive associated token account: %w", err)
	}

	commitmentLevel := rpc.CommitmentProcessed
	if len(commitment) > 0 && commitment[0] != "" {
		commitmentLevel = commitment[0]
	}

	result, err := d.client.GetTokenAccountBalance(ctx, userATA, commitmentLevel)
	if err != nil && commitmentLevel == rpc.CommitmentProcessed {
		d.logger.Debug("Failed to get balance with Processed commitment, trying Confirmed",
			zap.String("user_ata", userATA.String()),
			zap.Error(err))
		result, err = d.client.GetTokenAccountBalance(ctx, userATA, rpc.CommitmentConfirmed)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get token account balance: %w", err)
	}
	if result == nil || result.Value.Amount == "" {
		return 0, fmt.Errorf("no token balance found")
	}

	balance, err := strconv.ParseUint(result.Value.Amount, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse token balance: %w", err)
	}
	return balance, nil
}
