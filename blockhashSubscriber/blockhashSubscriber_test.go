package blockhashSubscriber

import (
	"context"
	"testing"

	"bankgo/connection/mocks"
	"bankgo/lib/event"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func blockhash(hash solana.Hash, lastValid uint64) *rpc.GetLatestBlockhashResult {
	return &rpc.GetLatestBlockhashResult{Value: &rpc.LatestBlockhashResult{Blockhash: hash, LastValidBlockHeight: lastValid}}
}

func TestUpdateBlockhashCachesAndPrunes(t *testing.T) {
	connection := new(mocks.RpcClient)
	subscriber := CreateBlockHashSubscriber(BlockHashSubscriberConfig{Connection: connection, EventEmitter: event.CreateEventEmitter()})
	assert.Nil(t, subscriber.GetLatestBlockhash())
	ctx := context.Background()

	connection.On("GetLatestBlockhash", mock.Anything, rpc.CommitmentConfirmed).Return(blockhash(solana.Hash{1}, 150), nil).Once()
	connection.On("GetBlockHeight", mock.Anything, rpc.CommitmentConfirmed).Return(uint64(100), nil).Once()
	subscriber.updateBlockhash(ctx)

	connection.On("GetLatestBlockhash", mock.Anything, rpc.CommitmentConfirmed).Return(blockhash(solana.Hash{1}, 150), nil).Once()
	connection.On("GetBlockHeight", mock.Anything, rpc.CommitmentConfirmed).Return(uint64(101), nil).Once()
	subscriber.updateBlockhash(ctx)
	assert.Equal(t, 1, subscriber.GetBlockhashCacheSize())

	connection.On("GetLatestBlockhash", mock.Anything, rpc.CommitmentConfirmed).Return(blockhash(solana.Hash{2}, 200), nil).Once()
	connection.On("GetBlockHeight", mock.Anything, rpc.CommitmentConfirmed).Return(uint64(120), nil).Once()
	subscriber.updateBlockhash(ctx)
	assert.Equal(t, 2, subscriber.GetBlockhashCacheSize())
	assert.Equal(t, solana.Hash{2}, subscriber.GetLatestHash())
	assert.Equal(t, solana.Hash{1}, subscriber.GetLatestBlockhash(1).Blockhash)
	assert.Equal(t, solana.Hash{1}, subscriber.GetLatestBlockhash(9).Blockhash)

	connection.On("GetLatestBlockhash", mock.Anything, rpc.CommitmentConfirmed).Return(blockhash(solana.Hash{3}, 300), nil).Once()
	connection.On("GetBlockHeight", mock.Anything, rpc.CommitmentConfirmed).Return(uint64(160), nil).Once()
	subscriber.updateBlockhash(ctx)
	assert.Equal(t, 2, subscriber.GetBlockhashCacheSize(), "hash 1 expired at height 150")
	assert.Equal(t, uint64(160), subscriber.GetLatestBlockHeight())
}

func TestUpdateBlockhashKeepsCacheOnError(t *testing.T) {
	connection := new(mocks.RpcClient)
	subscriber := CreateBlockHashSubscriber(BlockHashSubscriberConfig{Connection: connection, EventEmitter: event.CreateEventEmitter()})
	connection.On("GetLatestBlockhash", mock.Anything, rpc.CommitmentConfirmed).Return(nil, assert.AnError).Once()

	subscriber.updateBlockhash(context.Background())
	assert.Equal(t, 0, subscriber.GetBlockhashCacheSize())
	connection.AssertNotCalled(t, "GetBlockHeight", mock.Anything, mock.Anything)
}

func TestSubscribeUnsubscribe(t *testing.T) {
	connection := new(mocks.RpcClient)
	interval := int64(100)
	subscriber := CreateBlockHashSubscriber(BlockHashSubscriberConfig{
		Connection:       connection,
		UpdateIntervalMs: &interval,
		EventEmitter:     event.CreateEventEmitter(),
	})
	connection.On("GetLatestBlockhash", mock.Anything, rpc.CommitmentConfirmed).Return(blockhash(solana.Hash{7}, 500), nil)
	connection.On("GetBlockHeight", mock.Anything, rpc.CommitmentConfirmed).Return(uint64(10), nil)

	subscriber.Subscribe(context.Background())
	assert.Equal(t, solana.Hash{7}, subscriber.GetLatestHash())
	subscriber.Unsubscribe()
	subscriber.Unsubscribe()
}
