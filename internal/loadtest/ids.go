package loadtest

import (
	"math/rand/v2"
	"slices"
	"sync"
)

// KnownIDs is the set of manager ids created during a run, shared by every user.
type KnownIDs struct {
	mu  sync.Mutex
	ids []string
}

// Add records an id returned by a successful create.
func (k *KnownIDs) Add(id string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.ids = append(k.ids, id)
}

// Remove forgets id. Unknown ids are ignored.
func (k *KnownIDs) Remove(id string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if i := slices.Index(k.ids, id); i >= 0 {
		k.ids[i] = k.ids[len(k.ids)-1]
		k.ids = k.ids[:len(k.ids)-1]
	}
}

// Random returns a uniformly chosen id, or false when the set is empty.
func (k *KnownIDs) Random(r *rand.Rand) (string, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if len(k.ids) == 0 {
		return "", false
	}
	return k.ids[r.IntN(len(k.ids))], true
}

// Len returns the number of known ids.
func (k *KnownIDs) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.ids)
}
