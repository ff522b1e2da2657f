// Package mocks holds a testify mock of the bank client.
package mocks

import (
	"context"

	anchortypes "bankgo/anchor/types"
	banktypes "bankgo/bank/types"
	banklib "bankgo/lib/bank"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/mock"
)

type BankClient struct{ mock.Mock }

var _ banktypes.IBankClient = (*BankClient)(nil)

func (m *BankClient) GetProgram() anchortypes.IProgram {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(anchortypes.IProgram)
}

func (m *BankClient) GetBankAccountPublicKey() (solana.PublicKey, error) {
	args := m.Called()
	return args.Get(0).(solana.PublicKey), args.Error(1)
}

func (m *BankClient) GetCreateIx(name string) (solana.Instruction, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(solana.Instruction), args.Error(1)
}

func (m *BankClient) Create(ctx context.Context, name string) (solana.Signature, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(solana.Signature), args.Error(1)
}

func (m *BankClient) GetDepositIx(bank solana.PublicKey, amount uint64) (solana.Instruction, error) {
	args := m.Called(bank, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(solana.Instruction), args.Error(1)
}

func (m *BankClient) Deposit(ctx context.Context, bank solana.PublicKey, amount uint64) (solana.Signature, error) {
	args := m.Called(ctx, bank, amount)
	return args.Get(0).(solana.Signature), args.Error(1)
}

func (m *BankClient) GetWithdrawIx(bank solana.PublicKey, amount int64) (solana.Instruction, error) {
	args := m.Called(bank, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(solana.Instruction), args.Error(1)
}

func (m *BankClient) Withdraw(ctx context.Context, bank solana.PublicKey, amount int64) (solana.Signature, error) {
	args := m.Called(ctx, bank, amount)
	return args.Get(0).(solana.Signature), args.Error(1)
}

func (m *BankClient) GetBanks(ctx context.Context) ([]banktypes.KeyedBank, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]banktypes.KeyedBank), args.Error(1)
}

func (m *BankClient) GetBank(ctx context.Context, address solana.PublicKey) (*banklib.Bank, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*banklib.Bank), args.Error(1)
}
