package helper_test

import (
	"sync"
	"testing"

	"github.com/thanhminhmr/go-testerror/helper"
)

func TestSyncMap(t *testing.T) {
	var m helper.SyncMap[string, int]
	if _, exists := m.Get("a"); exists {
		t.Fatalf("expected empty map")
	}
	if actual, exists := m.PutIfAbsent("a", 1); exists || actual != 1 {
		t.Fatalf("unexpected put result %d %v", actual, exists)
	}
	if actual, exists := m.PutIfAbsent("a", 2); !exists || actual != 1 {
		t.Fatalf("expected existing value, got %d %v", actual, exists)
	}
	if m.Len() != 1 {
		t.Fatalf("unexpected length %d", m.Len())
	}
	if value, exists := m.Remove("a"); !exists || value != 1 || m.Len() != 0 {
		t.Fatalf("unexpected remove result %d %v", value, exists)
	}
}

func TestSyncMapConcurrentPut(t *testing.T) {
	var m helper.SyncMap[int, int]
	var waitGroup sync.WaitGroup
	for worker := range 8 {
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			for key := range 100 {
				m.PutIfAbsent(key, worker)
			}
		}()
	}
	waitGroup.Wait()
	count := 0
	m.ForEach(func(int, int) bool {
		count++
		return true
	})
	if count != 100 || m.Len() != 100 {
		t.Fatalf("unexpected sizes %d %d", count, m.Len())
	}
}
