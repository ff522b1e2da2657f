package types

import (
	"context"

	go_bank "bankgo"
	"bankgo/connection"
	"bankgo/tx"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

type IProvider interface {
	GetConnection(...string) (connection.RpcClient, error)
	GetProgram() IProgram
	SetProgram(IProgram)
	GetOpts() *go_bank.ConfirmOptions
	GetWallet() go_bank.IWallet
	GetTxSender() (tx.ITxSender, error)
}

type IProgram interface {
	GetProgramId() solana.PublicKey
	GetProvider() IProvider
	GetAccounts(t any, accountName string) IAccountClient
	GetMethods() IMethodsBuilder
}

type IAccountNamespace interface {
	Client(any, string) IAccountClient
}

type KeyedAccount struct {
	PublicKey solana.PublicKey
	Lamports  uint64
	Account   interface{}
}

type IAccountClient interface {
	Decode([]byte) (interface{}, error)
	Fetch(ctx context.Context, address solana.PublicKey, commitment rpc.CommitmentType) (interface{}, error)
	FetchNullable(ctx context.Context, address solana.PublicKey, commitment rpc.CommitmentType) (interface{}, error)
	All(ctx context.Context, filters []rpc.RPCFilter) ([]KeyedAccount, error)
}

type IMethodsBuilder interface {
	Transaction(ctx context.Context, ixs ...solana.Instruction) (*solana.Transaction, error)
	Rpc(ctx context.Context, opts *go_bank.ConfirmOptions, ixs ...solana.Instruction) (*tx.TxSigAndSlot, error)
}
