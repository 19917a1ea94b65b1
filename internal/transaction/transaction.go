// internal/transaction/transaction.go
package transaction

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/solana-composer/internal/blockchain"
	"github.com/rovshanmuradov/solana-composer/internal/wallet"
)

// SendAtomic packs the ordered instruction list into one transaction, signs
// it with the payer wallet, submits it and waits for confirmation. The ledger
// guarantees all instructions apply or none do; there is no local retry, a
// failed call is resubmitted by the caller as a new call.
func SendAtomic(
	ctx context.Context,
	client blockchain.ChainClient,
	w *wallet.Wallet,
	instructions []solana.Instruction,
	logger *zap.Logger,
) (solana.Signature, error) {
	if len(instructions) == 0 {
		return solana.Signature{}, fmt.Errorf("no instructions to send")
	}

	blockhash, err := client.GetRecentBlockhash(ctx)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to get recent blockhash: %w", err)
	}

	logger.Debug("Creating transaction",
		zap.Int("num_instructions", len(instructions)),
		zap.String("blockhash", blockhash.String()))

	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(w.PublicKey))
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := w.SignTransaction(tx); err != nil {
		return solana.Signature{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	sig, err := client.SendTransaction(ctx, tx)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %w", err)
	}

	if err := client.WaitForTransactionConfirmation(ctx, sig, rpc.CommitmentConfirmed); err != nil {
		return sig, fmt.Errorf("transaction not confirmed: %w", err)
	}

	logger.Debug("Transaction confirmed", zap.String("signature", sig.String()))
	return sig, nil
}
