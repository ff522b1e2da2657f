package tx

import (
	"context"
	"testing"
	"time"

	go_bank "bankgo"
	"bankgo/connection/mocks"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestSender(t *testing.T, timeout int64) (*BaseTxSender, *mocks.RpcClient, *go_bank.Wallet) {
	t.Helper()
	privateKey, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	wallet := go_bank.CreateWallet(privateKey)
	connection := new(mocks.RpcClient)
	opts := go_bank.DefaultConfirmOptions()
	sender := CreateBaseTxSender(connection, wallet, &opts, timeout)
	sender.PollInterval = 5 * time.Millisecond
	return sender, connection, wallet
}

func memoInstruction(signer solana.PublicKey) solana.Instruction {
	return solana.NewInstruction(
		solana.MemoProgramID,
		solana.AccountMetaSlice{solana.Meta(signer).SIGNER()},
		[]byte("bank"),
	)
}

func TestSendConfirmsAtConfirmedCommitment(t *testing.T) {
	sender, connection, wallet := newTestSender(t, 1000)
	ctx := context.Background()
	txSig := solana.Signature{1, 2, 3}

	connection.On("GetLatestBlockhash", mock.Anything, rpc.CommitmentConfirmed).
		Return(mocks.Blockhash(solana.Hash{9}), nil).Once()
	connection.On("SendTransactionWithOpts", mock.Anything, mock.AnythingOfType("*solana.Transaction"), mock.Anything).
		Return(txSig, nil).Once()
	connection.On("GetSignatureStatuses", mock.Anything, false, mock.Anything).
		Return(mocks.SignatureStatus("", nil), nil).Once()
	connection.On("GetSignatureStatuses", mock.Anything, false, mock.Anything).
		Return(mocks.SignatureStatus(rpc.ConfirmationStatusProcessed, nil), nil).Once()
	connection.On("GetSignatureStatuses", mock.Anything, false, mock.Anything).
		Return(mocks.SignatureStatus(rpc.ConfirmationStatusConfirmed, nil), nil).Once()

	tx, err := sender.GetTransaction(ctx, []solana.Instruction{memoInstruction(wallet.GetPublicKey())}, wallet.GetPublicKey(), nil)
	require.NoError(t, err)
	assert.Equal(t, solana.Hash{9}, tx.Message.RecentBlockhash)

	result, err := sender.Send(ctx, tx, nil, false)
	require.NoError(t, err)
	assert.Equal(t, txSig, result.TxSig)
	assert.Equal(t, uint64(10), result.Slot)
	assert.NoError(t, tx.VerifySignatures())
	connection.AssertExpectations(t)
}

func TestSendSkipsSigningWhenPreSigned(t *testing.T) {
	sender, connection, wallet := newTestSender(t, 1000)
	tx, err := solana.NewTransaction(
		[]solana.Instruction{memoInstruction(wallet.GetPublicKey())},
		solana.Hash{1},
		solana.TransactionPayer(wallet.GetPublicKey()),
	)
	require.NoError(t, err)

	connection.On("SendTransactionWithOpts", mock.Anything, tx, mock.Anything).
		Return(solana.Signature{7}, nil).Once()
	connection.On("GetSignatureStatuses", mock.Anything, false, mock.Anything).
		Return(mocks.SignatureStatus(rpc.ConfirmationStatusFinalized, nil), nil).Once()

	_, err = sender.Send(context.Background(), tx, nil, true)
	require.NoError(t, err)
	assert.Empty(t, tx.Signatures)
}

func TestConfirmTimeout(t *testing.T) {
	sender, connection, _ := newTestSender(t, 30)
	connection.On("GetSignatureStatuses", mock.Anything, false, mock.Anything).
		Return(mocks.SignatureStatus(rpc.ConfirmationStatusProcessed, nil), nil)

	_, err := sender.Confirm(context.Background(), solana.Signature{4}, nil)
	assert.ErrorIs(t, err, ErrConfirmTimeout)
	assert.Equal(t, uint64(1), sender.GetTimeoutCount())
}

func TestConfirmTransactionError(t *testing.T) {
	sender, connection, _ := newTestSender(t, 1000)
	connection.On("GetSignatureStatuses", mock.Anything, false, mock.Anything).
		Return(mocks.SignatureStatus(rpc.ConfirmationStatusConfirmed, map[string]interface{}{"InstructionError": []interface{}{0, "Custom"}}), nil)

	_, err := sender.Confirm(context.Background(), solana.Signature{4}, nil)
	assert.ErrorIs(t, err, ErrTransactionFailed)
	assert.Equal(t, uint64(0), sender.GetTimeoutCount())
}

func TestConfirmCancelled(t *testing.T) {
	sender, connection, _ := newTestSender(t, 1000)
	connection.On("GetSignatureStatuses", mock.Anything, false, mock.Anything).
		Return(mocks.SignatureStatus("", nil), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sender.Confirm(ctx, solana.Signature{4}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSendTransactionError(t *testing.T) {
	sender, connection, wallet := newTestSender(t, 1000)
	tx, err := solana.NewTransaction(
		[]solana.Instruction{memoInstruction(wallet.GetPublicKey())},
		solana.Hash{1},
		solana.TransactionPayer(wallet.GetPublicKey()),
	)
	require.NoError(t, err)
	connection.On("SendTransactionWithOpts", mock.Anything, tx, mock.Anything).
		Return(solana.Signature{}, assert.AnError).Once()

	_, err = sender.Send(context.Background(), tx, nil, false)
	assert.ErrorIs(t, err, assert.AnError)
	connection.AssertNotCalled(t, "GetSignatureStatuses", mock.Anything, mock.Anything, mock.Anything)
}

func TestCommitmentReached(t *testing.T) {
	assert.False(t, CommitmentReached(rpc.ConfirmationStatusProcessed, rpc.CommitmentConfirmed))
	assert.True(t, CommitmentReached(rpc.ConfirmationStatusConfirmed, rpc.CommitmentConfirmed))
	assert.True(t, CommitmentReached(rpc.ConfirmationStatusFinalized, rpc.CommitmentConfirmed))
	assert.False(t, CommitmentReached(rpc.ConfirmationStatusConfirmed, rpc.CommitmentFinalized))
	assert.True(t, CommitmentReached(rpc.ConfirmationStatusProcessed, rpc.CommitmentProcessed))
	assert.False(t, CommitmentReached("", rpc.CommitmentProcessed))
}

type cachedBlockhash struct{ hash solana.Hash }

func (c cachedBlockhash) GetLatestBlockhash(...int) *rpc.LatestBlockhashResult {
	if c.hash.IsZero() {
		return nil
	}
	return &rpc.LatestBlockhashResult{Blockhash: c.hash}
}

func TestGetTransactionUsesCachedBlockhash(t *testing.T) {
	sender, connection, wallet := newTestSender(t, 0)
	sender.Blockhashes = cachedBlockhash{hash: solana.Hash{4}}

	tx, err := sender.GetTransaction(context.Background(), []solana.Instruction{memoInstruction(wallet.GetPublicKey())}, wallet.GetPublicKey(), nil)
	require.NoError(t, err)
	assert.Equal(t, solana.Hash{4}, tx.Message.RecentBlockhash)
	connection.AssertNotCalled(t, "GetLatestBlockhash", mock.Anything, mock.Anything)

	sender.Blockhashes = cachedBlockhash{}
	connection.On("GetLatestBlockhash", mock.Anything, rpc.CommitmentConfirmed).
		Return(mocks.Blockhash(solana.Hash{5}), nil).Once()
	tx, err = sender.GetTransaction(context.Background(), []solana.Instruction{memoInstruction(wallet.GetPublicKey())}, wallet.GetPublicKey(), nil)
	require.NoError(t, err)
	assert.Equal(t, solana.Hash{5}, tx.Message.RecentBlockhash)
}
