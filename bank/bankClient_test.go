package bank

import (
	"context"
	"encoding/binary"
	"sync"
	"testing"

	go_bank "bankgo"
	"bankgo/addresses"
	banktypes "bankgo/bank/types"
	"bankgo/connection"
	"bankgo/connection/mocks"
	banklib "bankgo/lib/bank"
	"github.com/davecgh/go-spew/spew"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestBankClient(t *testing.T, withWallet bool) (*BankClient, *mocks.RpcClient, *go_bank.Wallet) {
	t.Helper()
	privateKey, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	wallet := go_bank.CreateWallet(privateKey)
	rpcClient := new(mocks.RpcClient)
	manager := connection.CreateManager()
	manager.AddRpc("test", rpcClient)
	config := banktypes.BankClientConfig{Connection: manager, ConnectionId: "test"}
	if withWallet {
		config.Wallet = wallet
	}
	return CreateBankClient(config), rpcClient, wallet
}

// expectRpc wires one successful send and confirm, handing the sent
// transaction to inspect.
func expectRpc(rpcClient *mocks.RpcClient, inspect func(tx *solana.Transaction)) {
	rpcClient.On("GetLatestBlockhash", mock.Anything, rpc.CommitmentConfirmed).
		Return(mocks.Blockhash(solana.Hash{1}), nil).Once()
	rpcClient.On("SendTransactionWithOpts", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { inspect(args.Get(1).(*solana.Transaction)) }).
		Return(solana.Signature{8}, nil).Once()
	rpcClient.On("GetSignatureStatuses", mock.Anything, false, mock.Anything).
		Return(mocks.SignatureStatus(rpc.ConfirmationStatusConfirmed, nil), nil).Once()
}

func instructionOf(t *testing.T, tx *solana.Transaction) ([]byte, []solana.PublicKey) {
	t.Helper()
	require.Len(t, tx.Message.Instructions, 1)
	compiled := tx.Message.Instructions[0]
	programId, err := tx.Message.Program(compiled.ProgramIDIndex)
	require.NoError(t, err)
	assert.Equal(t, banklib.ProgramID, programId)
	accounts, err := compiled.ResolveInstructionAccounts(&tx.Message)
	require.NoError(t, err)
	keys := make([]solana.PublicKey, 0, len(accounts))
	for _, account := range accounts {
		keys = append(keys, account.PublicKey)
	}
	return []byte(compiled.Data), keys
}

func TestConstants(t *testing.T) {
	assert.Equal(t, uint64(100_000_000), DEPOSIT_AMOUNT)
	assert.Equal(t, int64(35_690_880), KEEP_RENT)
	owner := solana.MustPublicKeyFromBase58("4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T")
	assert.Equal(t, "WSOS Bank 4Nd1mB", BankName(owner))
	assert.Equal(t, int64(100_000_000), WithdrawAmount(135_690_880))
	assert.Equal(t, int64(-35_690_879), WithdrawAmount(1))
}

func TestCreate(t *testing.T) {
	client, rpcClient, wallet := newTestBankClient(t, true)
	expectedBank, err := addresses.GetBankAccountPublicKey(banklib.ProgramID, wallet.GetPublicKey())
	require.NoError(t, err)

	name := BankName(wallet.GetPublicKey())
	expectRpc(rpcClient, func(tx *solana.Transaction) {
		data, keys := instructionOf(t, tx)
		expected := append([]byte{}, banklib.Instruction_Create[:]...)
		expected = binary.LittleEndian.AppendUint32(expected, uint32(len(name)))
		expected = append(expected, name...)
		assert.Equal(t, expected, data)
		assert.Equal(t, []solana.PublicKey{expectedBank, wallet.GetPublicKey(), solana.SystemProgramID}, keys)
	})

	txSig, err := client.Create(context.Background(), name)
	require.NoError(t, err)
	assert.Equal(t, solana.Signature{8}, txSig)
	rpcClient.AssertExpectations(t)
}

func TestDeposit(t *testing.T) {
	client, rpcClient, wallet := newTestBankClient(t, true)
	bankAddress := solana.NewWallet().PublicKey()
	expectRpc(rpcClient, func(tx *solana.Transaction) {
		data, keys := instructionOf(t, tx)
		assert.Equal(t, binary.LittleEndian.AppendUint64(banklib.Instruction_Deposit.Bytes(), DEPOSIT_AMOUNT), data)
		assert.Equal(t, []solana.PublicKey{bankAddress, wallet.GetPublicKey(), solana.SystemProgramID}, keys)
	})

	_, err := client.Deposit(context.Background(), bankAddress, DEPOSIT_AMOUNT)
	require.NoError(t, err)
	rpcClient.AssertExpectations(t)
}

func TestWithdrawNegativeAmountIsNotClamped(t *testing.T) {
	client, rpcClient, wallet := newTestBankClient(t, true)
	bankAddress := solana.NewWallet().PublicKey()
	amount := WithdrawAmount(1_000)
	require.Negative(t, amount)
	expectRpc(rpcClient, func(tx *solana.Transaction) {
		data, keys := instructionOf(t, tx)
		assert.Equal(t, uint64(amount), binary.LittleEndian.Uint64(data[8:]))
		assert.Equal(t, []solana.PublicKey{bankAddress, wallet.GetPublicKey()}, keys)
	})

	_, err := client.Withdraw(context.Background(), bankAddress, amount)
	require.NoError(t, err)
	rpcClient.AssertExpectations(t)
}

// go test -race --run TestProgramOverrideIsPerClient

func TestProgramOverrideIsPerClient(t *testing.T) {
	deployment := solana.MustPublicKeyFromBase58("11111111111111111111111111111112")
	bankAddress := solana.NewWallet().PublicKey()
	manager := connection.CreateManager()
	manager.AddRpc("test", new(mocks.RpcClient))

	var wait sync.WaitGroup
	for i := 0; i < 8; i++ {
		for _, programId := range []solana.PublicKey{deployment, {}} {
			wait.Add(1)
			go func(programId solana.PublicKey) {
				defer wait.Done()
				client := CreateBankClient(banktypes.BankClientConfig{
					Connection:   manager,
					ConnectionId: "test",
					Wallet:       go_bank.CreateWallet(solana.NewWallet().PrivateKey),
					ProgramId:    programId,
				})
				ix, err := client.GetDepositIx(bankAddress, DEPOSIT_AMOUNT)
				if !assert.NoError(t, err) {
					return
				}
				expected := programId
				if expected.IsZero() {
					expected = banklib.ProgramID
				}
				assert.Equal(t, expected, ix.ProgramID())
				assert.Equal(t, expected, client.GetProgram().GetProgramId())
			}(programId)
		}
	}
	wait.Wait()
	assert.NotEqual(t, deployment, banklib.ProgramID)
}

func TestOperationsWithoutWallet(t *testing.T) {
	client, rpcClient, _ := newTestBankClient(t, false)
	_, err := client.GetBankAccountPublicKey()
	assert.ErrorIs(t, err, ErrNoWallet)
	_, err = client.Create(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNoWallet)
	_, err = client.Deposit(context.Background(), solana.NewWallet().PublicKey(), 1)
	assert.ErrorIs(t, err, ErrNoWallet)
	_, err = client.Withdraw(context.Background(), solana.NewWallet().PublicKey(), 1)
	assert.ErrorIs(t, err, ErrNoWallet)
	rpcClient.AssertNotCalled(t, "SendTransactionWithOpts", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetBanks(t *testing.T) {
	client, rpcClient, wallet := newTestBankClient(t, false)
	address := solana.NewWallet().PublicKey()
	var data []byte
	{
		data = append(data, banklib.BankDiscriminator[:]...)
		data = binary.LittleEndian.AppendUint32(data, 4)
		data = append(data, "bank"...)
		data = binary.LittleEndian.AppendUint64(data, 42)
		data = append(data, wallet.GetPublicKey().Bytes()...)
	}
	rpcClient.On("GetProgramAccountsWithOpts", mock.Anything, banklib.ProgramID, mock.Anything).Return(rpc.GetProgramAccountsResult{
		{Pubkey: address, Account: &rpc.Account{Lamports: 99, Data: rpc.DataBytesOrJSONFromBytes(data)}},
	}, nil).Once()

	banks, err := client.GetBanks(context.Background())
	require.NoError(t, err)
	spew.Dump("TestGetBanks Result", banks)
	require.Len(t, banks, 1)
	assert.Equal(t, address, banks[0].PublicKey)
	assert.Equal(t, uint64(99), banks[0].Lamports)
	assert.Equal(t, "bank", banks[0].Account.Name)
	assert.Equal(t, uint64(42), banks[0].Account.Balance)
	assert.Equal(t, wallet.GetPublicKey(), banks[0].Account.Owner)
}

func TestSendFailureIsReturned(t *testing.T) {
	client, rpcClient, _ := newTestBankClient(t, true)
	rpcClient.On("GetLatestBlockhash", mock.Anything, rpc.CommitmentConfirmed).
		Return(nil, assert.AnError).Once()

	_, err := client.Deposit(context.Background(), solana.NewWallet().PublicKey(), 1)
	assert.ErrorIs(t, err, assert.AnError)
}
