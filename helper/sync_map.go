package helper

import (
	"sync"
	"sync/atomic"
)

// SyncMap is a typed wrapper of sync.Map that also keeps its size.
type SyncMap[Key comparable, Value any] struct {
	inner sync.Map
	size  atomic.Int64
}

func (m *SyncMap[Key, Value]) Get(key Key) (value Value, exists bool) {
	rawValue, exists := m.inner.Load(key)
	if !exists {
		return value, exists
	}
	return rawValue.(Value), exists
}

// PutIfAbsent stores value unless key already exists, returning the value that
// ends up in the map.
func (m *SyncMap[Key, Value]) PutIfAbsent(key Key, value Value) (actual Value, exists bool) {
	actualValue, exists := m.inner.LoadOrStore(key, value)
	if !exists {
		m.size.Add(1)
		return value, exists
	}
	return actualValue.(Value), exists
}

func (m *SyncMap[Key, Value]) Remove(key Key) (value Value, exists bool) {
	rawValue, exists := m.inner.LoadAndDelete(key)
	if !exists {
		return value, exists
	}
	m.size.Add(-1)
	return rawValue.(Value), exists
}

// ForEach calls f for every entry in no particular order until f returns false.
func (m *SyncMap[Key, Value]) ForEach(f func(key Key, value Value) bool) {
	m.inner.Range(func(key, value any) bool { return f(key.(Key), value.(Value)) })
}

func (m *SyncMap[Key, Value]) Len() int {
	return int(m.size.Load())
}
