// =============================================
// File: internal/dex/pumpfun/global_account.go
// =============================================
package pumpfun

import (
	"context"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/solana-composer/internal/blockchain"
)

// GlobalAccount is the pump.fun global state layout. Field order matches the
// on-chain account byte for byte; the bin decoder walks it sequentially.
type GlobalAccount struct {
	Discriminator               [8]byte
	Initialized                 bool
	Authority                   solana.PublicKey
	FeeRecipient                solana.PublicKey
	InitialVirtualTokenReserves uint64
	InitialVirtualSolReserves   uint64
	InitialRealTokenReserves    uint64
	TokenTotalSupply            uint64
	FeeBasisPoints              uint64
}

// FetchGlobalAccount fetches and deserializes the global account. The fee
// recipient read here fills the fee-account reference when the deployment
// config leaves it empty.
func FetchGlobalAccount(ctx context.Context, client blockchain.ChainClient, globalAddr, programID solana.PublicKey, logger *zap.Logger) (*GlobalAccount, error) {
	accountInfo, err := client.GetAccountInfo(ctx, globalAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to get global account: %w", err)
	}
	if accountInfo == nil || accountInfo.Value == nil {
		return nil, fmt.Errorf("global account not found: %s", globalAddr.String())
	}

	if !accountInfo.Value.Owner.Equals(programID) {
		return nil, fmt.Errorf("global account has incorrect owner: expected %s, got %s",
			programID.String(), accountInfo.Value.Owner.String())
	}

	account := &GlobalAccount{}
	if err := bin.NewBinDecoder(accountInfo.Value.Data.GetBinary()).Decode(account); err != nil {
		return nil, fmt.Errorf("failed to decode global account: %w", err)
	}

	logger.Debug("Global account data parsed",
		zap.Bool("initialized", account.Initialized),
		zap.String("authority", account.Authority.String()),
		zap.String("fee_recipient", account.FeeRecipient.String()),
		zap.Uint64("fee_basis_points", account.FeeBasisPoints))

	return account, nil
}
