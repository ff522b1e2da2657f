package priorityFee

import (
	"context"
	"sync"
	"time"

	go_bank "bankgo"
	"bankgo/utils"
	"github.com/gagliardetto/solana-go"
	"github.com/go-errors/errors"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

type PriorityFeeSubscriber struct {
	connection            FeeRpcClient
	httpClient            *resty.Client
	frequencyMs           int64
	addresses             solana.PublicKeySlice
	customStrategy        IPriorityFeeStrategy
	averageStrategy       *AverageStrategy
	maxStrategy           *MaxStrategy
	priorityFeeMethod     PriorityFeeMethod
	lookbackDistance      uint64
	maxFeeMicroLamports   uint64
	priorityFeeMultiplier float64

	heliusRpcUrl        string
	heliusPriorityLevel HeliusPriorityLevel

	latestPriorityFee        uint64
	lastCustomStrategyResult uint64
	lastAvgStrategyResult    uint64
	lastMaxStrategyResult    uint64
	lastSlotSeen             uint64

	log      *logrus.Logger
	mxState  *sync.RWMutex
	wait     sync.WaitGroup
	cancel   func()
	callback func(*PriorityFeeSubscriber)
}

var _ go_bank.IPriorityFeeSource = (*PriorityFeeSubscriber)(nil)

func CreatePriorityFeeSubscriber(config PriorityFeeSubscriberConfig) (*PriorityFeeSubscriber, error) {
	switch config.PriorityFeeMethod {
	case PriorityFeeMethodSolana:
		if config.Connection == nil {
			return nil, errors.Errorf("connection must be provided to use the solana priority fee method")
		}
	case PriorityFeeMethodHelius:
		if config.HeliusRpcUrl == "" {
			return nil, errors.Errorf("helius rpc url must be provided to use the helius priority fee method")
		}
	default:
		return nil, errors.Errorf("priority fee method %q not implemented", config.PriorityFeeMethod)
	}
	subscriber := &PriorityFeeSubscriber{
		connection:            config.Connection,
		httpClient:            CreateHttpClient(),
		frequencyMs:           utils.TT(config.FrequencyMs > 0, config.FrequencyMs, DEFAULT_PRIORITY_FEE_FREQUENCY_MS),
		addresses:             config.Addresses,
		customStrategy:        utils.TT[IPriorityFeeStrategy](config.CustomStrategy != nil, config.CustomStrategy, &AverageStrategy{}),
		averageStrategy:       &AverageStrategy{},
		maxStrategy:           &MaxStrategy{},
		lookbackDistance:      utils.TT(config.SlotsToCheck > 0, config.SlotsToCheck, uint64(50)),
		priorityFeeMultiplier: utils.TT(config.PriorityFeeMultiplier > 0.0, config.PriorityFeeMultiplier, 1.0),
		priorityFeeMethod:     config.PriorityFeeMethod,
		maxFeeMicroLamports:   config.MaxFeeMicroLamports,
		heliusRpcUrl:          config.HeliusRpcUrl,
		heliusPriorityLevel:   utils.TT(config.HeliusPriorityLevel != "", config.HeliusPriorityLevel, HeliusPriorityLevelMedium),
		log:                   utils.TT(config.Logger == nil, logrus.StandardLogger(), config.Logger),
		mxState:               new(sync.RWMutex),
		callback:              config.Callback,
	}
	return subscriber, nil
}

func (p *PriorityFeeSubscriber) Subscribe(ctx context.Context) {
	if p.cancel != nil {
		return
	}
	p.load(ctx)
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.wait.Add(1)
	go func(ctx context.Context) {
		defer p.wait.Done()
		ticker := time.NewTicker(time.Millisecond * time.Duration(p.frequencyMs))
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.load(ctx)
			}
		}
	}(ctx)
}

func (p *PriorityFeeSubscriber) Unsubscribe() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
		p.wait.Wait()
	}
}

func (p *PriorityFeeSubscriber) loadForSolana(ctx context.Context) error {
	samples, err := FetchSolanaPriorityFee(ctx, p.connection, p.lookbackDistance, p.GetAddresses())
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return nil
	}
	defer p.mxState.Unlock()
	p.mxState.Lock()
	p.latestPriorityFee = samples[0].PrioritizationFee
	p.lastSlotSeen = samples[0].Slot
	p.lastAvgStrategyResult = p.averageStrategy.Calculate(samples)
	p.lastMaxStrategyResult = p.maxStrategy.Calculate(samples)
	p.lastCustomStrategyResult = p.customStrategy.Calculate(samples)
	return nil
}

func (p *PriorityFeeSubscriber) loadForHelius(ctx context.Context) error {
	var accountKeys []string
	for _, address := range p.GetAddresses() {
		accountKeys = append(accountKeys, address.String())
	}
	result, err := FetchHeliusPriorityFee(ctx, p.httpClient, p.heliusRpcUrl, accountKeys)
	if err != nil {
		return err
	}
	defer p.mxState.Unlock()
	p.mxState.Lock()
	p.latestPriorityFee = uint64(result.PriorityFeeEstimate)
	p.lastAvgStrategyResult = uint64(result.PriorityFeeLevels[HeliusPriorityLevelMedium])
	p.lastMaxStrategyResult = uint64(result.PriorityFeeLevels[HeliusPriorityLevelUnsafeMax])
	if level, exists := result.PriorityFeeLevels[p.heliusPriorityLevel]; exists {
		p.lastCustomStrategyResult = uint64(level)
	} else {
		p.lastCustomStrategyResult = p.latestPriorityFee
	}
	return nil
}

func (p *PriorityFeeSubscriber) load(ctx context.Context) {
	var err error
	switch p.priorityFeeMethod {
	case PriorityFeeMethodSolana:
		err = p.loadForSolana(ctx)
	case PriorityFeeMethodHelius:
		err = p.loadForHelius(ctx)
	}
	if err != nil {
		p.log.WithError(err).WithField("method", string(p.priorityFeeMethod)).Warn("priority fee refresh failed")
		return
	}
	if p.callback != nil {
		(p.callback)(p)
	}
}

func (p *PriorityFeeSubscriber) clamp(value uint64) uint64 {
	if p.maxFeeMicroLamports > 0 && value > p.maxFeeMicroLamports {
		return p.maxFeeMicroLamports
	}
	return value
}

// GetPriorityFee is the multiplied, clamped custom strategy result in micro
// lamports per compute unit.
func (p *PriorityFeeSubscriber) GetPriorityFee() uint64 {
	return p.GetCustomStrategyResult()
}

func (p *PriorityFeeSubscriber) GetMaxPriorityFee() uint64 {
	return p.maxFeeMicroLamports
}

func (p *PriorityFeeSubscriber) GetCustomStrategyResult() uint64 {
	defer p.mxState.RUnlock()
	p.mxState.RLock()
	return p.clamp(uint64(float64(p.lastCustomStrategyResult) * p.priorityFeeMultiplier))
}

func (p *PriorityFeeSubscriber) GetRawCustomStrategyResult() uint64 {
	defer p.mxState.RUnlock()
	p.mxState.RLock()
	return p.lastCustomStrategyResult
}

func (p *PriorityFeeSubscriber) GetAvgStrategyResult() uint64 {
	defer p.mxState.RUnlock()
	p.mxState.RLock()
	return p.clamp(p.lastAvgStrategyResult)
}

func (p *PriorityFeeSubscriber) GetMaxStrategyResult() uint64 {
	defer p.mxState.RUnlock()
	p.mxState.RLock()
	return p.clamp(p.lastMaxStrategyResult)
}

func (p *PriorityFeeSubscriber) GetLastSlotSeen() uint64 {
	defer p.mxState.RUnlock()
	p.mxState.RLock()
	return p.lastSlotSeen
}

func (p *PriorityFeeSubscriber) GetAddresses() solana.PublicKeySlice {
	defer p.mxState.RUnlock()
	p.mxState.RLock()
	return p.addresses
}

func (p *PriorityFeeSubscriber) UpdateAddresses(addresses []solana.PublicKey) {
	defer p.mxState.Unlock()
	p.mxState.Lock()
	p.addresses = addresses
}
