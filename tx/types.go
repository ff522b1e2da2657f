package tx

import (
	"context"

	go_bank "bankgo"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// IBlockhashSource serves recent blockhashes without a round trip. A nil
// result means the cache is empty.
type IBlockhashSource interface {
	GetLatestBlockhash(offsets ...int) *rpc.LatestBlockhashResult
}

type TxSigAndSlot struct {
	TxSig solana.Signature
	Slot  uint64
}

type ITxSender interface {
	GetTransaction(
		ctx context.Context,
		ixs []solana.Instruction,
		payer solana.PublicKey,
		opts *go_bank.ConfirmOptions,
	) (*solana.Transaction, error)

	// Send signs (unless preSigned), submits and waits for opts.Commitment.
	Send(
		ctx context.Context,
		tx *solana.Transaction,
		opts *go_bank.ConfirmOptions,
		preSigned bool,
	) (*TxSigAndSlot, error)

	SendTransaction(
		ctx context.Context,
		tx *solana.Transaction,
		opts *go_bank.ConfirmOptions,
	) (solana.Signature, error)

	Confirm(
		ctx context.Context,
		txSig solana.Signature,
		opts *go_bank.ConfirmOptions,
	) (*TxSigAndSlot, error)

	GetTimeoutCount() uint64
}
