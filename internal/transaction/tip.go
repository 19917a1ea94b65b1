// internal/transaction/tip.go
package transaction

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/solana-composer/internal/blockchain"
	"github.com/rovshanmuradov/solana-composer/internal/dex"
)

// PrepareTipInstruction builds the incentive-fee transfer from the payer to
// the priority account. The instruction is placed strictly before the trade
// call in the same atomic unit, so either both apply or neither does.
//
// A zero or negative tip disables the stage: the returned instruction is nil
// and no error is raised. A payer balance below the tip fails with
// ErrInsufficientFunds before any trade composition happens.
func PrepareTipInstruction(
	ctx context.Context,
	client blockchain.ChainClient,
	payer, tipAccount solana.PublicKey,
	tipLamports uint64,
	logger *zap.Logger,
) (solana.Instruction, error) {
	if tipLamports == 0 {
		return nil, nil
	}
	if tipAccount.IsZero() {
		return nil, fmt.Errorf("tip account is required when tip_lamports > 0")
	}

	balance, err := client.GetBalance(ctx, payer)
	if err != nil {
		return nil, fmt.Errorf("failed to check payer balance: %w", err)
	}
	if balance < tipLamports {
		return nil, fmt.Errorf("%w: balance %d lamports, tip %d lamports",
			dex.ErrInsufficientFunds, balance, tipLamports)
	}

	logger.Debug("Prepared tip transfer",
		zap.String("tip_account", tipAccount.String()),
		zap.Uint64("tip_lamports", tipLamports))

	return system.NewTransferInstruction(tipLamports, payer, tipAccount).Build(), nil
}
