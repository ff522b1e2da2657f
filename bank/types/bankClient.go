package types

import (
	"context"

	"bankgo/anchor/types"
	banklib "bankgo/lib/bank"
	"github.com/gagliardetto/solana-go"
)

type KeyedBank struct {
	PublicKey solana.PublicKey
	Lamports  uint64
	Account   *banklib.Bank
}

type IBankClient interface {
	GetProgram() types.IProgram
	GetBankAccountPublicKey() (solana.PublicKey, error)
	GetCreateIx(name string) (solana.Instruction, error)
	Create(ctx context.Context, name string) (solana.Signature, error)
	GetDepositIx(bank solana.PublicKey, amount uint64) (solana.Instruction, error)
	Deposit(ctx context.Context, bank solana.PublicKey, amount uint64) (solana.Signature, error)
	GetWithdrawIx(bank solana.PublicKey, amount int64) (solana.Instruction, error)
	Withdraw(ctx context.Context, bank solana.PublicKey, amount int64) (solana.Signature, error)
	GetBanks(ctx context.Context) ([]KeyedBank, error)
	GetBank(ctx context.Context, address solana.PublicKey) (*banklib.Bank, error)
}
