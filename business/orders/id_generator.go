package orders

import (
	"strconv"
	"sync"
	"time"
)

const orderIDPrefix = "KLD-"

// IDGenerator issues "KLD-<unix millis>" ids. Two orders in the same
// millisecond get consecutive values instead of colliding.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDGenerator(now func() time.Time) *IDGenerator {
	return &IDGenerator{now: now}
}

func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms

	return orderIDPrefix + strconv.FormatInt(ms, 10)
}
