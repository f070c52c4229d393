package chord

import "sync"

// successorList is the failover and replica-set structure: up to R
// distinct addresses, the head being the immediate successor. It also
// defines the replica set for keys this node primarily owns.
type successorList struct {
	mu   sync.RWMutex
	size int
	list []*NodeAddress
}

func newSuccessorList(size int) *successorList {
	return &successorList{size: size, list: nil}
}

// first returns the immediate successor, or nil if the list is empty.
func (sl *successorList) first() *NodeAddress {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	if len(sl.list) == 0 {
		return nil
	}
	return sl.list[0].Copy()
}

// all returns a defensive copy of the whole list.
func (sl *successorList) all() []*NodeAddress {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	out := make([]*NodeAddress, len(sl.list))
	for i, n := range sl.list {
		out[i] = n.Copy()
	}
	return out
}

// exceptSelf returns the list with any entry matching self removed.
func (sl *successorList) exceptSelf(self *NodeAddress) []*NodeAddress {
	all := sl.all()
	out := make([]*NodeAddress, 0, len(all))
	for _, n := range all {
		if !n.Equals(self) {
			out = append(out, n)
		}
	}
	return out
}

// replace installs a single successor as the new head, keeping as much of
// the prior tail as fits after the head and dedup against it.
func (sl *successorList) replace(head *NodeAddress) {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	if head == nil {
		sl.list = nil
		return
	}

	newList := make([]*NodeAddress, 0, sl.size)
	newList = append(newList, head.Copy())
	for _, n := range sl.list {
		if len(newList) >= sl.size {
			break
		}
		if !n.Equals(head) {
			newList = append(newList, n.Copy())
		}
	}
	sl.list = newList
}

// mergeFromSuccessor implements the list maintenance rule: after learning
// successor s, prepend s to s's own successor list, drop duplicates of
// self, and truncate to R.
func (sl *successorList) mergeFromSuccessor(self, s *NodeAddress, sSuccessors []*NodeAddress) {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	merged := make([]*NodeAddress, 0, sl.size)
	merged = append(merged, s.Copy())
	for _, n := range sSuccessors {
		if len(merged) >= sl.size {
			break
		}
		if n.IsNil() || n.Equals(self) {
			continue
		}
		dup := false
		for _, m := range merged {
			if m.Equals(n) {
				dup = true
				break
			}
		}
		if !dup {
			merged = append(merged, n.Copy())
		}
	}
	sl.list = merged
}

// dropHead removes the head of the list and promotes the next entry. It is
// a no-op on an empty list.
func (sl *successorList) dropHead() {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	if len(sl.list) > 0 {
		sl.list = sl.list[1:]
	}
}

// isEmpty reports whether the node has no known successor at all, the
// isolated state.
func (sl *successorList) isEmpty() bool {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return len(sl.list) == 0
}

// remove drops a specific address from the list wherever it appears; used
// by routing and successor failover once a peer fails with a transport
// error.
func (sl *successorList) remove(dead *NodeAddress) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	out := sl.list[:0:0]
	for _, n := range sl.list {
		if !n.Equals(dead) {
			out = append(out, n)
		}
	}
	sl.list = out
}
