package namespace

import (
	"context"

	go_bank "bankgo"
	"bankgo/anchor/types"
	"bankgo/tx"
	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/go-errors/errors"
)

const DEFAULT_COMPUTE_UNITS = 200_000

type MethodsBuilder struct {
	provider types.IProvider
	txParams go_bank.TxParams
}

var _ types.IMethodsBuilder = (*MethodsBuilder)(nil)

func CreateMethodsBuilder(provider types.IProvider, txParams *go_bank.TxParams) *MethodsBuilder {
	builder := &MethodsBuilder{provider: provider}
	if txParams != nil {
		builder.txParams = *txParams
	}
	return builder
}

func (p *MethodsBuilder) instructions(ixs []solana.Instruction) []solana.Instruction {
	var allIx []solana.Instruction
	if units := p.txParams.ComputeUnits; units != 0 && units != DEFAULT_COMPUTE_UNITS {
		allIx = append(allIx, computebudget.NewSetComputeUnitLimitInstructionBuilder().SetUnits(uint32(units)).Build())
	}
	price := p.txParams.ComputeUnitsPrice
	if p.txParams.PriorityFee != nil {
		price = p.txParams.PriorityFee.GetPriorityFee()
	}
	if price != 0 {
		allIx = append(allIx, computebudget.NewSetComputeUnitPriceInstructionBuilder().SetMicroLamports(price).Build())
	}
	return append(allIx, ixs...)
}

// Transaction builds an unsigned transaction paid by the provider wallet.
func (p *MethodsBuilder) Transaction(ctx context.Context, ixs ...solana.Instruction) (*solana.Transaction, error) {
	wallet := p.provider.GetWallet()
	if wallet == nil {
		return nil, errors.Errorf("provider has no wallet")
	}
	sender, err := p.provider.GetTxSender()
	if err != nil {
		return nil, err
	}
	return sender.GetTransaction(ctx, p.instructions(ixs), wallet.GetPublicKey(), p.provider.GetOpts())
}

// Rpc signs, submits and waits until opts.Commitment (provider options when nil).
func (p *MethodsBuilder) Rpc(ctx context.Context, opts *go_bank.ConfirmOptions, ixs ...solana.Instruction) (*tx.TxSigAndSlot, error) {
	transaction, err := p.Transaction(ctx, ixs...)
	if err != nil {
		return nil, err
	}
	sender, err := p.provider.GetTxSender()
	if err != nil {
		return nil, err
	}
	if opts == nil {
		opts = p.provider.GetOpts()
	}
	return sender.Send(ctx, transaction, opts, false)
}
