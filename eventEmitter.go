package go_bank

import (
	"sync"

	"bankgo/lib/event"
)

var (
	eventEmitter     *event.EventEmitter
	eventEmitterOnce sync.Once
)

func EventEmitter() *event.EventEmitter {
	eventEmitterOnce.Do(func() {
		eventEmitter = event.CreateEventEmitter()
	})
	return eventEmitter
}
