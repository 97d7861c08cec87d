package leaktest

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckNoGoroutineLeak_JoinedWorkers(t *testing.T) {
	CheckNoGoroutineLeak(t, func() {
		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				time.Sleep(time.Millisecond)
			}()
		}
		wg.Wait()
	})
}

func TestGoroutineChecker_WaitsForStragglers(t *testing.T) {
	checker := NewGoroutineChecker(t)

	go func() { time.Sleep(50 * time.Millisecond) }()

	checker.Check(0)
}

func TestGoroutineChecker_Tolerance(t *testing.T) {
	checker := NewGoroutineChecker(t)
	done := make(chan struct{})
	go func() { <-done }()

	checker.Check(1)
	close(done)
}

func TestWaitFor_TimesOut(t *testing.T) {
	done := make(chan struct{})
	defer close(done)
	go func() { <-done }()

	_, ok := waitFor(0, 20*time.Millisecond)
	assert.False(t, ok)
}
