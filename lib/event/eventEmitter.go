package event

import (
	"slices"
	"sync"

	"github.com/google/uuid"
)

type CallbackItem struct {
	Id        string
	Priority  int
	IsOnetime bool
	Callback  Callback
}
type Callback func(object ...interface{})

type EventEmitter struct {
	callbacks map[string][]CallbackItem
	mxState   *sync.RWMutex
}

func CreateEventEmitter() *EventEmitter {
	return &EventEmitter{
		callbacks: make(map[string][]CallbackItem),
		mxState:   new(sync.RWMutex),
	}
}

// addHandler keeps callbacks ordered by ascending priority.
func (s *EventEmitter) addHandler(event string, callbackItem CallbackItem) {
	defer s.mxState.Unlock()
	s.mxState.Lock()
	callbacks := s.callbacks[event]
	idx := slices.IndexFunc(callbacks, func(item CallbackItem) bool {
		return item.Priority > callbackItem.Priority
	})
	if idx < 0 {
		s.callbacks[event] = append(callbacks, callbackItem)
		return
	}
	s.callbacks[event] = slices.Insert(callbacks, idx, callbackItem)
}

func (s *EventEmitter) On(event string, callback Callback, priorityArr ...int) string {
	priority := 100
	if len(priorityArr) > 0 {
		priority = priorityArr[0]
	}
	id := uuid.NewString()
	s.addHandler(event, CallbackItem{Callback: callback, Priority: priority, Id: id})
	return id
}

func (s *EventEmitter) Once(event string, callback Callback, priorityArr ...int) string {
	priority := 100
	if len(priorityArr) > 0 {
		priority = priorityArr[0]
	}
	id := uuid.NewString()
	s.addHandler(event, CallbackItem{Callback: callback, Priority: priority, Id: id, IsOnetime: true})
	return id
}

func (s *EventEmitter) Off(event string, callbackIds ...string) {
	defer s.mxState.Unlock()
	s.mxState.Lock()
	if len(callbackIds) == 0 {
		delete(s.callbacks, event)
		return
	}
	callbacks, exists := s.callbacks[event]
	if !exists {
		return
	}
	s.callbacks[event] = slices.DeleteFunc(slices.Clone(callbacks), func(cb CallbackItem) bool {
		return slices.Contains(callbackIds, cb.Id)
	})
}

// Emit runs each callback on its own goroutine.
func (s *EventEmitter) Emit(event string, object ...interface{}) {
	s.mxState.RLock()
	callbacks, exists := s.callbacks[event]
	if !exists {
		s.mxState.RUnlock()
		return
	}
	var removed []string
	for _, callback := range callbacks {
		go (callback.Callback)(object...)
		if callback.IsOnetime {
			removed = append(removed, callback.Id)
		}
	}
	s.mxState.RUnlock()
	if len(removed) > 0 {
		s.Off(event, removed...)
	}
}

func (s *EventEmitter) Listeners(event string) int {
	s.mxState.RLock()
	defer s.mxState.RUnlock()
	return len(s.callbacks[event])
}
