package resilience

import (
	"sync"
	"testing"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	var km KeyedMutex

	const workers = 50
	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			unlock := km.Lock("team-1")
			counter++
			unlock()
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Fatalf("expected %d increments, got %d", workers, counter)
	}
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	var km KeyedMutex

	unlockA := km.Lock("team-a")
	done := make(chan struct{})
	go func() {
		unlockB := km.Lock("team-b")
		unlockB()
		close(done)
	}()

	// Holding team-a must not block team-b.
	<-done
	unlockA()
}

func TestKeyedMutex_ReleasesEntries(t *testing.T) {
	var km KeyedMutex

	unlock := km.Lock("game-9")
	unlock()

	km.mu.Lock()
	defer km.mu.Unlock()
	if len(km.locks) != 0 {
		t.Fatalf("expected lock map to be empty, has %d entries", len(km.locks))
	}
}
