package vizutil

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebounceCoalesces(t *testing.T) {
	var calls atomic.Int32
	trigger, _ := Debounce(func() { calls.Add(1) }, 20*time.Millisecond)
	for i := 0; i < 10; i++ {
		trigger()
		time.Sleep(2 * time.Millisecond)
	}
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebounceCancel(t *testing.T) {
	var calls atomic.Int32
	trigger, cancel := Debounce(func() { calls.Add(1) }, 20*time.Millisecond)
	trigger()
	cancel()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}
