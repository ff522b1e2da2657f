package anchor

import (
	go_bank "bankgo"
	"bankgo/anchor/namespace"
	"bankgo/anchor/types"
	"github.com/gagliardetto/solana-go"
)

type Program struct {
	types.IProgram
	ProgramId solana.PublicKey
	Provider  types.IProvider
	Account   *namespace.AccountNamespace
	Methods   *namespace.MethodsBuilder
}

func CreateProgram(
	programId solana.PublicKey,
	provider types.IProvider,
	txParams *go_bank.TxParams,
) *Program {
	program := &Program{
		ProgramId: programId,
		Provider:  provider,
		Account:   namespace.CreateAccountNamespace(provider),
		Methods:   namespace.CreateMethodsBuilder(provider, txParams),
	}
	provider.SetProgram(program)
	return program
}

func (p *Program) GetProgramId() solana.PublicKey {
	return p.ProgramId
}

func (p *Program) GetProvider() types.IProvider {
	return p.Provider
}

func (p *Program) GetAccounts(t any, accountName string) types.IAccountClient {
	return p.Account.Client(t, accountName)
}

func (p *Program) GetMethods() types.IMethodsBuilder {
	return p.Methods
}
