package transport

import (
	"fmt"
	"sync/atomic"
	"time"
)

var sessionCounter atomic.Int64

// newSessionID builds a process-unique session identifier from the
// connection time and a monotonic counter; good enough for log
// correlation without pulling in a UUID dependency nothing else needs.
func newSessionID() string {
	n := sessionCounter.Add(1)
	return fmt.Sprintf("sess-%d-%d", time.Now().UnixNano(), n)
}
