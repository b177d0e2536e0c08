package consumer

import "time"

// SetRetryDelays shortens the backoff for tests and returns a restore func.
func SetRetryDelays(base, max time.Duration) func() {
	prevBase, prevMax := retryBaseDelay, retryMaxDelay
	retryBaseDelay, retryMaxDelay = base, max
	return func() { retryBaseDelay, retryMaxDelay = prevBase, prevMax }
}
