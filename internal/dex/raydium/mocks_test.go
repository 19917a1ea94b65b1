// internal/dex/raydium/mocks_test.go
package raydium

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/solana-composer/internal/types"
	"github.com/rovshanmuradov/solana-composer/internal/wallet"
)

// MockChainClient implements blockchain.ChainClient for swap tests.
type MockChainClient struct {
	mock.Mock
}

func (m *MockChainClient) GetAccountInfo(ctx context.Context, pubkey solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	args := m.Called(ctx, pubkey)
	if res := args.Get(0); res != nil {
		return res.(*rpc.GetAccountInfoResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChainClient) GetBalance(ctx context.Context, pubkey solana.PublicKey) (uint64, error) {
	args := m.Called(ctx, pubkey)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockChainClient) GetTokenAccountBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetTokenAccountBalanceResult, error) {
	args := m.Called(ctx, account, commitment)
	if res := args.Get(0); res != nil {
		return res.(*rpc.GetTokenAccountBalanceResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChainClient) GetRecentBlockhash(ctx context.Context) (solana.Hash, error) {
	args := m.Called(ctx)
	return args.Get(0).(solana.Hash), args.Error(1)
}

func (m *MockChainClient) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).(solana.Signature), args.Error(1)
}

func (m *MockChainClient) WaitForTransactionConfirmation(ctx context.Context, sig solana.Signature, commitment rpc.CommitmentType) error {
	args := m.Called(ctx, sig, commitment)
	return args.Error(0)
}

func mockedWallet() *wallet.Wallet {
	w := solana.NewWallet()
	return &wallet.Wallet{
		PrivateKey: w.PrivateKey,
		PublicKey:  w.PublicKey(),
		ATACache:   make(map[string]solana.PublicKey),
	}
}

func newTestClient(t *testing.T, mc *MockChainClient, tipAccount solana.PublicKey) *Client {
	t.Helper()
	logger := zap.NewNop()
	return &Client{
		client:     mc,
		wallet:     mockedWallet(),
		logger:     logger,
		programID:  RaydiumV4ProgramID,
		priority:   types.NewPriorityManager(logger),
		TipAccount: tipAccount,
	}
}
