package priorityFee

import (
	"context"
	"slices"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/go-errors/errors"
)

type SolanaPriorityFeeResponse struct {
	Slot              uint64
	PrioritizationFee uint64
}

// FetchSolanaPriorityFee returns the samples of the last lookbackDistance
// slots, newest first.
func FetchSolanaPriorityFee(
	ctx context.Context,
	connection FeeRpcClient,
	lookbackDistance uint64,
	addresses solana.PublicKeySlice,
) ([]SolanaPriorityFeeResponse, error) {
	response, err := connection.GetRecentPrioritizationFees(ctx, addresses)
	if err != nil {
		return nil, errors.WrapPrefix(err, "getRecentPrioritizationFees", 0)
	}
	if len(response) == 0 {
		return []SolanaPriorityFeeResponse{}, nil
	}
	slices.SortFunc(response, func(a, b rpc.PriorizationFeeResult) int {
		if a.Slot < b.Slot {
			return 1
		}
		if a.Slot > b.Slot {
			return -1
		}
		return 0
	})

	var cutoffSlot uint64
	if response[0].Slot > lookbackDistance {
		cutoffSlot = response[0].Slot - lookbackDistance
	}
	var descResults []SolanaPriorityFeeResponse
	for _, result := range response {
		if result.Slot >= cutoffSlot {
			descResults = append(descResults, SolanaPriorityFeeResponse{Slot: result.Slot, PrioritizationFee: result.PrioritizationFee})
		}
	}
	return descResults, nil
}
