package gtm

import "time"

// DefaultRequestDelay is the pause after every Tag Manager request. The API
// quota is per minute and per project, so calls are spaced instead of retried.
const DefaultRequestDelay = 4 * time.Second

// Pacer blocks between remote requests
type Pacer interface {
	Pause()
}

// FixedDelay sleeps for a constant duration. The wait is not cancellable.
type FixedDelay time.Duration

// Pause implements Pacer
func (d FixedDelay) Pause() {
	if d > 0 {
		time.Sleep(time.Duration(d))
	}
}
