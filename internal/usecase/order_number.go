package usecase

import (
	"fmt"
	"sync"
	"time"

	"github.com/jaevor/go-nanoid"
)

const orderNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewOrderNumberGenerator returns a generator producing numbers like
// ORD-20250827-4F7KQ2MX: date-stamped with an 8-char random suffix. Collision
// odds are negligible; the rare unique-constraint hit is retried by the
// order usecase with a fresh number. The nanoid generator keeps internal
// buffer state, so concurrent checkouts go through a mutex.
func NewOrderNumberGenerator() (func() string, error) {
	suffix, err := nanoid.CustomASCII(orderNumberAlphabet, 8)
	if err != nil {
		return nil, fmt.Errorf("init order number generator: %w", err)
	}
	var mu sync.Mutex
	return func() string {
		mu.Lock()
		s := suffix()
		mu.Unlock()
		return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), s)
	}, nil
}
