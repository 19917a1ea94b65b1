// internal/transaction/mocks_test.go
package transaction

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/mock"
)

// MockChainClient implements blockchain.ChainClient.
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
