package blockhashSubscriber

import (
	"context"
	"sync"
	"time"

	go_bank "bankgo"
	"bankgo/connection"
	"bankgo/lib/event"
	"bankgo/tx"
	"bankgo/utils"
	ag_solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/sirupsen/logrus"
)

type BlockHashSubscriberConfig struct {
	Connection       connection.RpcClient
	Commitment       *rpc.CommitmentType
	UpdateIntervalMs *int64
	EventEmitter     *event.EventEmitter
	Logger           *logrus.Logger
}

// BlockHashSubscriber polls the latest blockhash and keeps the ones that are
// still valid at the latest block height.
type BlockHashSubscriber struct {
	connection connection.RpcClient
	commitment rpc.CommitmentType

	updateIntervalMs  int64
	latestBlockHeight uint64
	blockhashes       []*rpc.LatestBlockhashResult

	eventEmitter *event.EventEmitter
	log          *logrus.Logger
	mxState      *sync.RWMutex
	wait         sync.WaitGroup
	cancel       func()
}

var _ tx.IBlockhashSource = (*BlockHashSubscriber)(nil)

func CreateBlockHashSubscriber(config BlockHashSubscriberConfig) *BlockHashSubscriber {
	return &BlockHashSubscriber{
		connection:       config.Connection,
		commitment:       utils.TTM[rpc.CommitmentType](config.Commitment == nil, rpc.CommitmentConfirmed, func() rpc.CommitmentType { return *config.Commitment }),
		eventEmitter:     utils.TT(config.EventEmitter == nil, go_bank.EventEmitter(), config.EventEmitter),
		log:              utils.TT(config.Logger == nil, logrus.StandardLogger(), config.Logger),
		mxState:          new(sync.RWMutex),
		updateIntervalMs: utils.TTM[int64](config.UpdateIntervalMs == nil, int64(1000), func() int64 { return max(*config.UpdateIntervalMs, 100) }),
	}
}

func (p *BlockHashSubscriber) GetEventEmitter() *event.EventEmitter {
	return p.eventEmitter
}

func (p *BlockHashSubscriber) updateBlockhash(ctx context.Context) {
	blockhash, err := p.connection.GetLatestBlockhash(ctx, p.commitment)
	if err != nil || blockhash == nil || blockhash.Value == nil {
		p.log.WithError(err).Debug("blockhash poll failed")
		return
	}
	blockHeight, err := p.connection.GetBlockHeight(ctx, p.commitment)
	if err != nil {
		p.log.WithError(err).Debug("block height poll failed")
		return
	}

	p.mxState.Lock()
	p.latestBlockHeight = blockHeight
	added := len(p.blockhashes) == 0 || !blockhash.Value.Blockhash.Equals(p.blockhashes[len(p.blockhashes)-1].Blockhash)
	if added {
		p.blockhashes = append(p.blockhashes, blockhash.Value)
	}
	p.pruneBlockhashes()
	p.mxState.Unlock()

	if added {
		p.eventEmitter.Emit("newBlockhash", blockhash.Value.Blockhash)
	}
}

func (p *BlockHashSubscriber) GetBlockhashCacheSize() int {
	defer p.mxState.RUnlock()
	p.mxState.RLock()
	return len(p.blockhashes)
}

func (p *BlockHashSubscriber) GetLatestBlockHeight() uint64 {
	defer p.mxState.RUnlock()
	p.mxState.RLock()
	return p.latestBlockHeight
}

// GetLatestBlockhash returns the newest cached blockhash, or an older one
// when an offset is given.
func (p *BlockHashSubscriber) GetLatestBlockhash(offsets ...int) *rpc.LatestBlockhashResult {
	defer p.mxState.RUnlock()
	p.mxState.RLock()
	offset := utils.TTM[int](len(offsets) > 0, func() int { return offsets[0] }, 0)
	if len(p.blockhashes) == 0 {
		return nil
	}
	clampedOffset := max(0, min(len(p.blockhashes)-1, offset))
	return p.blockhashes[len(p.blockhashes)-1-clampedOffset]
}

func (p *BlockHashSubscriber) pruneBlockhashes() {
	if p.latestBlockHeight > 0 {
		var newBlockhashes []*rpc.LatestBlockhashResult
		for _, blockhash := range p.blockhashes {
			if blockhash.LastValidBlockHeight > p.latestBlockHeight {
				newBlockhashes = append(newBlockhashes, blockhash)
			}
		}
		p.blockhashes = newBlockhashes
	}
}

func (p *BlockHashSubscriber) GetLatestHash() ag_solanago.Hash {
	latest := p.GetLatestBlockhash()
	if latest == nil {
		return ag_solanago.Hash{}
	}
	return latest.Blockhash
}

func (p *BlockHashSubscriber) Subscribe(ctx context.Context) {
	if p.cancel != nil {
		return
	}
	p.updateBlockhash(ctx)
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.wait.Add(1)
	go func(ctx context.Context) {
		defer p.wait.Done()
		ticker := time.NewTicker(time.Duration(p.updateIntervalMs) * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.updateBlockhash(ctx)
			case <-ctx.Done():
				return
			}
		}
	}(ctx)
}

func (p *BlockHashSubscriber) Unsubscribe() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	p.cancel = nil
	p.wait.Wait()
}
