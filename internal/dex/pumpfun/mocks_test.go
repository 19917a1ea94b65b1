// internal/dex/pumpfun/mocks_test.go
package pumpfun

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/solana-composer/internal/types"
)

// MockChainClient implements blockchain.ChainClient for pipeline tests.
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

// accountInfoWithData wraps raw account bytes the way the RPC layer returns
// them.
func accountInfoWithData(t *testing.T, raw []byte) *rpc.GetAccountInfoResult {
	t.Helper()
	payload, err := json.Marshal([]string{base64.StdEncoding.EncodeToString(raw), "base64"})
	require.NoError(t, err)
	var data rpc.DataBytesOrJSON
	require.NoError(t, json.Unmarshal(payload, &data))
	return &rpc.GetAccountInfoResult{
		RPCContext: rpc.RPCContext{},
		Value:      &rpc.Account{Data: &data},
	}
}

// newTestDEX wires a composer against the mock client with non-mainnet
// addresses, so no constant-account checks interfere.
func newTestDEX(t *testing.T, client *MockChainClient, tipAccount solana.PublicKey) *DEX {
	t.Helper()
	logger := zap.NewNop()

	cfg := &Config{
		ContractAddress: solana.NewWallet().PublicKey(),
		Global:          solana.NewWallet().PublicKey(),
		FeeRecipient:    solana.NewWallet().PublicKey(),
		EventAuthority:  solana.NewWallet().PublicKey(),
		Mint:            solana.NewWallet().PublicKey(),
		BondingCurve:    solana.NewWallet().PublicKey(),
	}
	var err error
	cfg.AssociatedBondingCurve, _, err = solana.FindAssociatedTokenAddress(cfg.BondingCurve, cfg.Mint)
	require.NoError(t, err)

	return &DEX{
		client:     client,
		wallet:     testWallet(),
		logger:     logger,
		config:     cfg,
		priority:   types.NewPriorityManager(logger),
		TipAccount: tipAccount,
	}
}
