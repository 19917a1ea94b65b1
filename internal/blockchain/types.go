// internal/blockchain/types.go
package blockchain

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// ChainClient is the narrow view of the ledger the trade composers need:
// account reads, balance reads and atomic transaction submission. The solbc
// client implements it; tests substitute a mock.
type ChainClient interface {
	GetAccountInfo(ctx context.Context, pubkey solana.PublicKey) (*rpc.GetAccountInfoResult, error)
	GetBalance(ctx context.Context, pubkey solana.PublicKey) (uint64, error)
	GetTokenAccountBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetTokenAccountBalanceResult, error)
	GetRecentBlockhash(ctx context.Context) (solana.Hash, error)
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
	WaitForTransactionConfirmation(ctx context.Context, sig solana.Signature, commitment rpc.CommitmentType) error
}
