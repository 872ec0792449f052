package memory

import (
	"sync"
	"testing"

	"github.com/paydesk/paydesk/credstore/credstoretest"
)

func TestConformance(t *testing.T) {
	credstoretest.Run(t, New())
}

func TestConcurrentAccess(t *testing.T) {
	store := New()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Save("tok")
			_, _ = store.Load()
			_ = store.Clear()
		}()
	}
	wg.Wait()
}
