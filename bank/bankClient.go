package bank

import (
	"context"
	"fmt"

	go_bank "bankgo"
	"bankgo/addresses"
	"bankgo/anchor"
	anchortypes "bankgo/anchor/types"
	banktypes "bankgo/bank/types"
	banklib "bankgo/lib/bank"
	"github.com/gagliardetto/solana-go"
	"github.com/go-errors/errors"
)

var ErrNoWallet = errors.Errorf("bank client has no wallet")

type BankClient struct {
	banktypes.IBankClient
	Wallet   go_bank.IWallet
	Opts     go_bank.ConfirmOptions
	Provider *anchor.AnchorProvider
	Program  *anchor.Program
}

func CreateBankClient(config banktypes.BankClientConfig) *BankClient {
	bankClient := &BankClient{
		Wallet: config.Wallet,
		Opts:   go_bank.DefaultConfirmOptions(),
	}
	if config.Opts != nil {
		bankClient.Opts = *config.Opts
	}
	programId := config.ProgramId
	if programId.IsZero() {
		programId = banklib.ProgramID
	}
	bankClient.Provider = anchor.CreateAnchorProvider(
		config.Wallet,
		bankClient.Opts,
		config.Connection,
	)
	bankClient.Provider.ConnectionId = config.ConnectionId
	bankClient.Provider.TxSender = config.TxSender
	bankClient.Provider.ConfirmTimeoutMs = config.ConfirmTimeoutMs
	bankClient.Provider.Blockhashes = config.Blockhashes
	bankClient.Program = anchor.CreateProgram(programId, bankClient.Provider, config.TxParams)
	return bankClient
}

func (p *BankClient) GetProgram() anchortypes.IProgram {
	return p.Program
}

func (p *BankClient) authority() (solana.PublicKey, error) {
	if p.Wallet == nil {
		return solana.PublicKey{}, ErrNoWallet
	}
	return p.Wallet.GetPublicKey(), nil
}

func (p *BankClient) GetBankAccountPublicKey() (solana.PublicKey, error) {
	authority, err := p.authority()
	if err != nil {
		return solana.PublicKey{}, err
	}
	address, err := addresses.GetBankAccountPublicKey(p.Program.GetProgramId(), authority)
	if err != nil {
		return solana.PublicKey{}, errors.WrapPrefix(err, "derive bank address", 0)
	}
	return address, nil
}

func (p *BankClient) GetCreateIx(name string) (solana.Instruction, error) {
	authority, err := p.authority()
	if err != nil {
		return nil, err
	}
	bankAccount, err := p.GetBankAccountPublicKey()
	if err != nil {
		return nil, err
	}
	return p.build(banklib.NewCreateInstruction(name, bankAccount, authority).ValidateAndBuild())
}

func (p *BankClient) Create(ctx context.Context, name string) (solana.Signature, error) {
	ix, err := p.GetCreateIx(name)
	if err != nil {
		return solana.Signature{}, err
	}
	return p.rpc(ctx, ix)
}

func (p *BankClient) GetDepositIx(bank solana.PublicKey, amount uint64) (solana.Instruction, error) {
	authority, err := p.authority()
	if err != nil {
		return nil, err
	}
	return p.build(banklib.NewDepositInstruction(amount, bank, authority).ValidateAndBuild())
}

func (p *BankClient) Deposit(ctx context.Context, bank solana.PublicKey, amount uint64) (solana.Signature, error) {
	ix, err := p.GetDepositIx(bank, amount)
	if err != nil {
		return solana.Signature{}, err
	}
	return p.rpc(ctx, ix)
}

// GetWithdrawIx encodes amount as the program's u64. Negative amounts are
// passed through as their two's complement.
func (p *BankClient) GetWithdrawIx(bank solana.PublicKey, amount int64) (solana.Instruction, error) {
	authority, err := p.authority()
	if err != nil {
		return nil, err
	}
	return p.build(banklib.NewWithdrawInstruction(uint64(amount), bank, authority).ValidateAndBuild())
}

func (p *BankClient) Withdraw(ctx context.Context, bank solana.PublicKey, amount int64) (solana.Signature, error) {
	ix, err := p.GetWithdrawIx(bank, amount)
	if err != nil {
		return solana.Signature{}, err
	}
	return p.rpc(ctx, ix)
}

func (p *BankClient) build(ix *banklib.Instruction, err error) (solana.Instruction, error) {
	if err != nil {
		return nil, err
	}
	return ix.WithProgramID(p.Program.GetProgramId()), nil
}

func (p *BankClient) rpc(ctx context.Context, ix solana.Instruction) (solana.Signature, error) {
	txSig, err := p.Program.GetMethods().Rpc(ctx, &p.Opts, ix)
	if err != nil {
		return solana.Signature{}, err
	}
	return txSig.TxSig, nil
}

func (p *BankClient) GetBanks(ctx context.Context) ([]banktypes.KeyedBank, error) {
	accounts, err := p.Program.GetAccounts(banklib.Bank{}, "Bank").All(ctx, nil)
	if err != nil {
		return nil, err
	}
	banks := make([]banktypes.KeyedBank, 0, len(accounts))
	for _, account := range accounts {
		bankAccount, ok := account.Account.(*banklib.Bank)
		if !ok {
			return nil, fmt.Errorf("account %s decoded as %T", account.PublicKey, account.Account)
		}
		banks = append(banks, banktypes.KeyedBank{
			PublicKey: account.PublicKey,
			Lamports:  account.Lamports,
			Account:   bankAccount,
		})
	}
	return banks, nil
}

func (p *BankClient) GetBank(ctx context.Context, address solana.PublicKey) (*banklib.Bank, error) {
	account, err := p.Program.GetAccounts(banklib.Bank{}, "Bank").Fetch(ctx, address, p.Opts.Commitment)
	if err != nil {
		return nil, err
	}
	return account.(*banklib.Bank), nil
}
