// Package mocks holds testify mocks of the connection interfaces.
package mocks

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/mock"
)

type RpcClient struct{ mock.Mock }

func (m *RpcClient) GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
	args := m.Called(ctx, commitment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rpc.GetLatestBlockhashResult), args.Error(1)
}

func (m *RpcClient) SendTransactionWithOpts(ctx context.Context, transaction *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error) {
	args := m.Called(ctx, transaction, opts)
	return args.Get(0).(solana.Signature), args.Error(1)
}

func (m *RpcClient) GetSignatureStatuses(ctx context.Context, searchTransactionHistory bool, transactionSignatures ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
	args := m.Called(ctx, searchTransactionHistory, transactionSignatures)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rpc.GetSignatureStatusesResult), args.Error(1)
}

func (m *RpcClient) GetProgramAccountsWithOpts(ctx context.Context, publicKey solana.PublicKey, opts *rpc.GetProgramAccountsOpts) (rpc.GetProgramAccountsResult, error) {
	args := m.Called(ctx, publicKey, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(rpc.GetProgramAccountsResult), args.Error(1)
}

func (m *RpcClient) GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error) {
	args := m.Called(ctx, account, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rpc.GetAccountInfoResult), args.Error(1)
}

func (m *RpcClient) GetBlockHeight(ctx context.Context, commitment rpc.CommitmentType) (uint64, error) {
	args := m.Called(ctx, commitment)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *RpcClient) GetRecentPrioritizationFees(ctx context.Context, accounts solana.PublicKeySlice) ([]rpc.PriorizationFeeResult, error) {
	args := m.Called(ctx, accounts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rpc.PriorizationFeeResult), args.Error(1)
}

// Blockhash is a GetLatestBlockhash result carrying hash.
func Blockhash(hash solana.Hash) *rpc.GetLatestBlockhashResult {
	return &rpc.GetLatestBlockhashResult{
		Value: &rpc.LatestBlockhashResult{
			Blockhash:            hash,
			LastValidBlockHeight: 100,
		},
	}
}

// SignatureStatus is a GetSignatureStatuses result for one signature.
// A nil status models a signature the node has not seen yet.
func SignatureStatus(status rpc.ConfirmationStatusType, txErr interface{}) *rpc.GetSignatureStatusesResult {
	if status == "" {
		return &rpc.GetSignatureStatusesResult{Value: []*rpc.SignatureStatusesResult{nil}}
	}
	return &rpc.GetSignatureStatusesResult{
		Value: []*rpc.SignatureStatusesResult{{
			Slot:               10,
			ConfirmationStatus: status,
			Err:                txErr,
		}},
	}
}
