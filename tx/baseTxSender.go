package tx

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	go_bank "bankgo"
	"bankgo/connection"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/go-errors/errors"
)

const DEFAULT_TIMEOUT = 35000

const DEFAULT_POLL_INTERVAL = 400 * time.Millisecond

var (
	ErrConfirmTimeout    = errors.Errorf("transaction was not confirmed in time")
	ErrTransactionFailed = errors.Errorf("transaction failed")
)

type BaseTxSender struct {
	ITxSender

	connection   connection.RpcClient
	wallet       go_bank.IWallet
	opts         go_bank.ConfirmOptions
	timeout      time.Duration
	timeoutCount atomic.Uint64
	PollInterval time.Duration
	Blockhashes  IBlockhashSource
}

// CreateBaseTxSender builds a sender; timeout is in milliseconds and falls
// back to DEFAULT_TIMEOUT when not positive.
func CreateBaseTxSender(
	connection connection.RpcClient,
	wallet go_bank.IWallet,
	opts *go_bank.ConfirmOptions,
	timeout int64,
) *BaseTxSender {
	if timeout <= 0 {
		timeout = DEFAULT_TIMEOUT
	}
	txSender := &BaseTxSender{
		connection:   connection,
		wallet:       wallet,
		timeout:      time.Duration(timeout) * time.Millisecond,
		PollInterval: DEFAULT_POLL_INTERVAL,
	}
	if opts != nil {
		txSender.opts = *opts
	} else {
		txSender.opts = go_bank.DefaultConfirmOptions()
	}
	return txSender
}

func (p *BaseTxSender) resolveOpts(opts *go_bank.ConfirmOptions) *go_bank.ConfirmOptions {
	if opts == nil {
		return &p.opts
	}
	return opts
}

func (p *BaseTxSender) GetTransaction(
	ctx context.Context,
	ixs []solana.Instruction,
	payer solana.PublicKey,
	opts *go_bank.ConfirmOptions,
) (*solana.Transaction, error) {
	blockhash, err := p.latestBlockhash(ctx, p.resolveOpts(opts))
	if err != nil {
		return nil, err
	}
	tx, err := solana.NewTransaction(
		ixs,
		blockhash,
		solana.TransactionPayer(payer),
	)
	if err != nil {
		return nil, errors.Wrap(err, 0)
	}
	return tx, nil
}

func (p *BaseTxSender) latestBlockhash(ctx context.Context, opts *go_bank.ConfirmOptions) (solana.Hash, error) {
	if p.Blockhashes != nil {
		if cached := p.Blockhashes.GetLatestBlockhash(); cached != nil {
			return cached.Blockhash, nil
		}
	}
	commitment := opts.PreflightCommitment
	if commitment == "" {
		commitment = rpc.CommitmentConfirmed
	}
	latest, err := p.connection.GetLatestBlockhash(ctx, commitment)
	if err != nil {
		return solana.Hash{}, errors.WrapPrefix(err, "get latest blockhash", 0)
	}
	if latest == nil || latest.Value == nil {
		return solana.Hash{}, errors.Errorf("empty blockhash response")
	}
	return latest.Value.Blockhash, nil
}

func (p *BaseTxSender) Send(
	ctx context.Context,
	tx *solana.Transaction,
	opts *go_bank.ConfirmOptions,
	preSigned bool,
) (*TxSigAndSlot, error) {
	opts = p.resolveOpts(opts)
	if !preSigned {
		if _, err := p.wallet.SignTransaction(tx); err != nil {
			return nil, err
		}
	}
	txSig, err := p.SendTransaction(ctx, tx, opts)
	if err != nil {
		return nil, err
	}
	return p.Confirm(ctx, txSig, opts)
}

func (p *BaseTxSender) SendTransaction(
	ctx context.Context,
	tx *solana.Transaction,
	opts *go_bank.ConfirmOptions,
) (solana.Signature, error) {
	opts = p.resolveOpts(opts)
	txSig, err := p.connection.SendTransactionWithOpts(ctx, tx, opts.TransactionOpts)
	if err != nil {
		return solana.Signature{}, errors.WrapPrefix(err, "send transaction", 0)
	}
	return txSig, nil
}

// Confirm polls the signature status until it reaches opts.Commitment.
func (p *BaseTxSender) Confirm(
	ctx context.Context,
	txSig solana.Signature,
	opts *go_bank.ConfirmOptions,
) (*TxSigAndSlot, error) {
	opts = p.resolveOpts(opts)
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	ticker := time.NewTicker(p.PollInterval)
	defer ticker.Stop()
	for {
		out, err := p.connection.GetSignatureStatuses(ctx, false, txSig)
		if err == nil && out != nil && len(out.Value) > 0 && out.Value[0] != nil {
			status := out.Value[0]
			if status.Err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrTransactionFailed, txSig, status.Err)
			}
			if CommitmentReached(status.ConfirmationStatus, opts.Commitment) {
				return &TxSigAndSlot{TxSig: txSig, Slot: status.Slot}, nil
			}
		}
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				p.timeoutCount.Add(1)
				return nil, fmt.Errorf("%w: %s", ErrConfirmTimeout, txSig)
			}
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (p *BaseTxSender) GetTimeoutCount() uint64 {
	return p.timeoutCount.Load()
}

func commitmentRank(commitment rpc.CommitmentType) int {
	switch commitment {
	case rpc.CommitmentProcessed:
		return 1
	case rpc.CommitmentFinalized:
		return 3
	default:
		return 2
	}
}

// CommitmentReached reports whether a node-reported status satisfies the
// requested commitment.
func CommitmentReached(status rpc.ConfirmationStatusType, commitment rpc.CommitmentType) bool {
	var reached int
	switch status {
	case rpc.ConfirmationStatusProcessed:
		reached = 1
	case rpc.ConfirmationStatusConfirmed:
		reached = 2
	case rpc.ConfirmationStatusFinalized:
		reached = 3
	default:
		return false
	}
	return reached >= commitmentRank(commitment)
}
