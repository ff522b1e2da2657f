package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	go_bank "bankgo"
	"bankgo/bank"
	"bankgo/bank/mocks"
	banktypes "bankgo/bank/types"
	banklib "bankgo/lib/bank"
	"bankgo/view"
	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, stdin string) (*app, *mocks.BankClient, *bytes.Buffer, go_bank.IWallet) {
	t.Helper()
	privateKey, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	wallet := go_bank.CreateWallet(privateKey)
	client := new(mocks.BankClient)
	factory := func(go_bank.IWallet) (banktypes.IBankClient, error) { return client, nil }
	log, _ := test.NewNullLogger()
	out := new(bytes.Buffer)
	return &app{
		view:    view.CreateView(view.ViewConfig{Wallet: wallet, Factory: factory, Logger: log}),
		factory: factory,
		in:      strings.NewReader(stdin),
		out:     out,
		log:     log,
	}, client, out, wallet
}

func banksOf(owner solana.PublicKey, balances ...uint64) ([]banktypes.KeyedBank, []solana.PublicKey) {
	var banks []banktypes.KeyedBank
	var addresses []solana.PublicKey
	for _, balance := range balances {
		address := solana.NewWallet().PublicKey()
		addresses = append(addresses, address)
		banks = append(banks, banktypes.KeyedBank{
			PublicKey: address,
			Account:   &banklib.Bank{Name: bank.BankName(owner), Balance: balance, Owner: owner},
		})
	}
	return banks, addresses
}

func TestExecuteList(t *testing.T) {
	cli, client, out, wallet := newTestApp(t, "")
	banks, _ := banksOf(wallet.GetPublicKey(), 42)
	client.On("GetBanks", mock.Anything).Return(banks, nil).Once()

	require.NoError(t, cli.execute(context.Background(), "list", nil))
	assert.Contains(t, out.String(), "#0 "+bank.BankName(wallet.GetPublicKey()))
	assert.Contains(t, out.String(), "balance: 42 ")
}

func TestExecuteDepositByIndex(t *testing.T) {
	cli, client, _, wallet := newTestApp(t, "")
	banks, addresses := banksOf(wallet.GetPublicKey(), 1, 2)
	client.On("GetBanks", mock.Anything).Return(banks, nil)
	client.On("Deposit", mock.Anything, addresses[1], bank.DEPOSIT_AMOUNT).Return(solana.Signature{1}, nil).Once()

	require.NoError(t, cli.execute(context.Background(), "deposit", []string{"1"}))
	client.AssertExpectations(t)
}

func TestExecuteWithdrawByAddress(t *testing.T) {
	cli, client, _, wallet := newTestApp(t, "")
	banks, addresses := banksOf(wallet.GetPublicKey(), 135_690_880)
	client.On("GetBanks", mock.Anything).Return(banks, nil)
	client.On("Withdraw", mock.Anything, addresses[0], int64(100_000_000)).Return(solana.Signature{}, assert.AnError).Once()

	err := cli.execute(context.Background(), "withdraw", []string{addresses[0].String()})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestExecuteUnknownBank(t *testing.T) {
	cli, client, _, wallet := newTestApp(t, "")
	banks, _ := banksOf(wallet.GetPublicKey(), 1)
	client.On("GetBanks", mock.Anything).Return(banks, nil)

	assert.ErrorIs(t, cli.execute(context.Background(), "deposit", []string{"7"}), ErrUnknownBank)
	assert.ErrorIs(t, cli.execute(context.Background(), "deposit", []string{solana.NewWallet().PublicKey().String()}), ErrUnknownBank)
	assert.ErrorIs(t, cli.execute(context.Background(), "deposit", nil), ErrUsage)
	assert.ErrorIs(t, cli.execute(context.Background(), "transfer", nil), ErrUsage)
	client.AssertNotCalled(t, "Deposit", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecuteInstruction(t *testing.T) {
	cli, client, out, wallet := newTestApp(t, "")
	owner := wallet.GetPublicKey()
	address := solana.NewWallet().PublicKey()
	name := bank.BankName(owner)
	client.On("GetBankAccountPublicKey").Return(address, nil).Once()
	client.On("GetCreateIx", name).Return(banklib.NewCreateInstruction(name, address, owner).Build(), nil).Once()

	require.NoError(t, cli.execute(context.Background(), "ix", []string{"create"}))
	assert.Contains(t, out.String(), "bank: "+address.String())
	assert.Contains(t, out.String(), "Create")
	assert.Contains(t, out.String(), "data: 181ec828051c0777")
}

func TestInteractive(t *testing.T) {
	cli, client, out, wallet := newTestApp(t, "refresh\n\nquit\ncreate\n")
	banks, _ := banksOf(wallet.GetPublicKey(), 5)
	client.On("GetBanks", mock.Anything).Return(banks, nil).Twice()

	require.NoError(t, cli.execute(context.Background(), "interactive", nil))
	client.AssertExpectations(t)
	client.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Equal(t, 2, strings.Count(out.String(), "[Create bank] [Refresh banks]"))
}

func TestExecuteWithoutWallet(t *testing.T) {
	cli, _, out, _ := newTestApp(t, "")
	cli.view.SetWallet(nil)

	assert.ErrorIs(t, cli.execute(context.Background(), "create", nil), view.ErrWalletNotConnected)
	assert.Equal(t, "Wallet not connected\n", out.String())
}
