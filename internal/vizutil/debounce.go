package vizutil

import (
	"sync"
	"time"
)

// DefaultQuiet is the resize quiet window.
const DefaultQuiet = 150 * time.Millisecond

// Debounce wraps redraw so a burst of trigger calls runs it once, quiet after
// the last call. cancel drops any pending run.
func Debounce(redraw func(), quiet time.Duration) (trigger func(), cancel func()) {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	trigger = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(quiet, redraw)
	}
	cancel = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
			timer = nil
		}
	}
	return trigger, cancel
}
