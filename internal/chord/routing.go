package chord

import (
	"context"
	"errors"
	"math/big"

	"github.com/jorvik-labs/ringd/internal/ring"
)

// FindSuccessor resolves the node currently responsible for id.
// A forwarding hop that fails with a transport error evicts that peer and
// is retried, at most config.LookupRetries times, before giving up with
// ErrUnroutable; successful hops do not count against that budget. The
// whole resolution is bounded end to end by config.LookupTimeout.
func (n *Node) FindSuccessor(ctx context.Context, id *big.Int) (*NodeAddress, error) {
	ctx, cancel := context.WithTimeout(ctx, n.config.LookupTimeout)
	defer cancel()
	return n.findSuccessor(ctx, id, n.config.LookupRetries)
}

func (n *Node) findSuccessor(ctx context.Context, id *big.Int, retriesLeft int) (*NodeAddress, error) {
	successor := n.firstSuccessor()
	if successor == nil {
		// Isolated node with no successor of its own yet: it is
		// provisionally responsible for the whole ring.
		return n.address.Copy(), nil
	}

	if ring.InOpenClosed(n.id, successor.ID, id) {
		return successor.Copy(), nil
	}

	next := n.closestPrecedingNode(id)
	if next.Equals(n.address) {
		// Degenerate ring: nothing closer than self, fall back to the
		// successor even though id isn't strictly in range yet.
		return successor.Copy(), nil
	}

	result, err := n.remote.FindSuccessor(ctx, next, id)
	if err == nil {
		return result, nil
	}
	if !errors.Is(err, ErrTransport) {
		return nil, err
	}

	n.fingers.invalidate(n.address, next)
	n.successors.remove(next)

	if retriesLeft <= 0 {
		return nil, ErrUnroutable
	}
	return n.findSuccessor(ctx, id, retriesLeft-1)
}

// closestPrecedingNode scans the finger table for the node closest to, but
// not past, id, falling back to self when nothing qualifies.
func (n *Node) closestPrecedingNode(id *big.Int) *NodeAddress {
	return n.fingers.closestPreceding(n.address, id)
}

// ClosestPrecedingFinger is the RPC-facing form of closestPrecedingNode,
// exposed over RPC so an iterative-lookup client could be built against it.
func (n *Node) ClosestPrecedingFinger(id *big.Int) *NodeAddress {
	return n.closestPrecedingNode(id)
}

// GetPredecessor is the RPC-facing accessor for the predecessor slot. A nil
// return means "absent".
func (n *Node) GetPredecessor() *NodeAddress {
	return n.getPredecessor()
}

// GetSuccessorList is the RPC-facing accessor for the successor list.
func (n *Node) GetSuccessorList() []*NodeAddress {
	return n.successors.all()
}
