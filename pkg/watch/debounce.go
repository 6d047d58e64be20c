package watch

import (
	"sync"
	"time"
)

// Debounce returns a function that runs the latest fn it was given once
// calls have stopped for d.
func Debounce(d time.Duration) func(fn func()) {
	var mu sync.Mutex
	var timer *time.Timer
	return func(fn func()) {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, fn)
	}
}
