package chord

import "github.com/jorvik-labs/ringd/internal/store"

// NodeSummary is the payload behind the GetNodeSummary debug RPC: a
// snapshot of everything this node currently believes about the ring
// around it.
type NodeSummary struct {
	Self        *NodeAddress
	Predecessor *NodeAddress
	Successors  []*NodeAddress
}

// GetNodeSummary reports self, predecessor and successor list. The RPC
// layer serves it whether or not dev_mode is enabled.
func (n *Node) GetNodeSummary() *NodeSummary {
	return &NodeSummary{
		Self:        n.Address(),
		Predecessor: n.getPredecessor(),
		Successors:  n.successors.all(),
	}
}

// GetKvStoreSize returns the number of live entries in the local store.
func (n *Node) GetKvStoreSize() int {
	return n.store.Len()
}

// GetKvStoreData dumps the full local store, for debug use only. It is
// only honored when dev_mode is enabled; that gating happens at the RPC
// layer.
func (n *Node) GetKvStoreData() []store.Pair {
	return n.store.Snapshot()
}
