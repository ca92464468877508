// Package backoff produces jittered, exponentially growing delays for retry
// loops. It never sleeps; callers wait the returned duration themselves.
package backoff

import (
	"time"
)

// Sequence yields the successive delays of a single retry sequence.
// Implementations are owned by one caller at a time.
type Sequence interface {
	Pause() time.Duration
}
