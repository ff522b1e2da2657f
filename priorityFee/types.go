package priorityFee

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/sirupsen/logrus"
)

const DEFAULT_PRIORITY_FEE_FREQUENCY_MS = int64(10_000)

type IPriorityFeeStrategy interface {
	Calculate(samples []SolanaPriorityFeeResponse) uint64
}

type PriorityFeeMethod string

const (
	PriorityFeeMethodSolana PriorityFeeMethod = "solana"
	PriorityFeeMethodHelius PriorityFeeMethod = "helius"
)

type FeeRpcClient interface {
	GetRecentPrioritizationFees(ctx context.Context, accounts solana.PublicKeySlice) ([]rpc.PriorizationFeeResult, error)
}

type PriorityFeeSubscriberConfig struct {
	/// rpc connection, required for PriorityFeeMethodSolana
	Connection FeeRpcClient
	/// frequency to refresh samples, in milliseconds
	FrequencyMs int64
	/// addresses the transactions write lock, usually the bank account
	Addresses []solana.PublicKey
	/// strategy applied to samples, defaults to AverageStrategy
	CustomStrategy    IPriorityFeeStrategy
	PriorityFeeMethod PriorityFeeMethod
	/// lookback window, in slots
	SlotsToCheck uint64
	/// url for helius rpc, required for PriorityFeeMethodHelius
	HeliusRpcUrl string
	/// helius level used as the custom result
	HeliusPriorityLevel HeliusPriorityLevel
	/// clamp any returned priority fee value to this value
	MaxFeeMicroLamports uint64
	/// multiplier applied to priority fee before MaxFeeMicroLamports, defaults to 1.0
	PriorityFeeMultiplier float64

	Logger   *logrus.Logger
	Callback func(*PriorityFeeSubscriber)
}
