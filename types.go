package go_bank

import (
	"github.com/gagliardetto/solana-go/rpc"
)

type ConfirmOptions struct {
	rpc.TransactionOpts
	Commitment rpc.CommitmentType
}

// DefaultConfirmOptions mirrors the provider defaults with the commitment
// every bank operation waits for.
func DefaultConfirmOptions() ConfirmOptions {
	return ConfirmOptions{
		TransactionOpts: rpc.TransactionOpts{
			SkipPreflight:       false,
			PreflightCommitment: rpc.CommitmentConfirmed,
		},
		Commitment: rpc.CommitmentConfirmed,
	}
}

type IPriorityFeeSource interface {
	GetPriorityFee() uint64
}

// TxParams prefixes compute budget instructions. PriorityFee, when set,
// replaces ComputeUnitsPrice with its latest estimate.
type TxParams struct {
	ComputeUnits      uint64
	ComputeUnitsPrice uint64
	PriorityFee       IPriorityFeeSource
}
