package character

import (
	"hash/fnv"
	"sync"
)

// stripeCount is a power of two so the hash maps onto stripes with a mask.
const stripeCount = 64

// characterLocks serializes mutations per character ID. Two IDs may share a
// stripe; that costs contention, never correctness.
type characterLocks struct {
	stripes [stripeCount]sync.Mutex
}

func (l *characterLocks) lock(characterID string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(characterID))
	stripe := &l.stripes[h.Sum32()&(stripeCount-1)]
	stripe.Lock()
	return stripe.Unlock
}
