package chord

import (
	"math/big"
	"sync"

	"github.com/jorvik-labs/ringd/internal/ring"
)

// fingerTable is the table of routing shortcuts: ring.M ordered entries,
// entry i pointing at the successor of self.id + 2^i.
type fingerTable struct {
	mu      sync.RWMutex
	self    *big.Int
	entries []*FingerEntry
}

func newFingerTable(self *big.Int) *fingerTable {
	return &fingerTable{
		self:    new(big.Int).Set(self),
		entries: make([]*FingerEntry, ring.M),
	}
}

// initAll points every finger at the same node, used right after Create or
// Join before fix_fingers has had a chance to differentiate them.
func (ft *fingerTable) initAll(node *NodeAddress) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	for i := 0; i < ring.M; i++ {
		start := ring.AddPowerOfTwo(ft.self, i)
		ft.entries[i] = NewFingerEntry(start, node)
	}
}

func (ft *fingerTable) get(i int) *FingerEntry {
	if i < 0 || i >= ring.M {
		return nil
	}
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	return ft.entries[i].Copy()
}

func (ft *fingerTable) set(i int, entry *FingerEntry) {
	if i < 0 || i >= ring.M {
		return
	}
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.entries[i] = entry.Copy()
}

// setNodeForIndexZero rewrites finger 0 to follow the immediate successor,
// keeping it in lockstep with the successor list without waiting for its
// turn in the fix_fingers round robin.
func (ft *fingerTable) setNodeForIndexZero(node *NodeAddress) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	if ft.entries[0] == nil {
		ft.entries[0] = NewFingerEntry(ring.AddPowerOfTwo(ft.self, 0), node)
		return
	}
	ft.entries[0].Node = node.Copy()
}

// closestPreceding scans fingers from ring.M down to 1 and returns the first
// entry whose node lies strictly between self and target. If none
// qualifies, it returns a copy of self.
func (ft *fingerTable) closestPreceding(self *NodeAddress, target *big.Int) *NodeAddress {
	ft.mu.RLock()
	defer ft.mu.RUnlock()

	for i := ring.M - 1; i >= 0; i-- {
		entry := ft.entries[i]
		if entry.IsNil() {
			continue
		}
		if ring.InOpenOpen(ft.self, target, entry.Node.ID) {
			return entry.Node.Copy()
		}
	}
	return self.Copy()
}

// invalidate resets a finger back to self, used when an RPC to the node it
// names fails with a transport error.
func (ft *fingerTable) invalidate(self *NodeAddress, dead *NodeAddress) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	for i, entry := range ft.entries {
		if entry != nil && entry.Node != nil && entry.Node.Equals(dead) {
			ft.entries[i] = NewFingerEntry(entry.Start, self)
		}
	}
}
