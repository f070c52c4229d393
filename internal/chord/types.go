package chord

import (
	"fmt"
	"math/big"

	"github.com/jorvik-labs/ringd/internal/ring"
)

// NodeAddress identifies one ring peer: its ring identifier plus the
// transport endpoint used to dial it. Ring references are always carried as
// addresses, never as live handles to another node's in-memory state; this
// is what lets a node model a peer's failure as "the RPC failed", with no
// cyclic references to untangle.
type NodeAddress struct {
	ID   *big.Int
	Host string
	Port int
}

// NewNodeAddress builds a NodeAddress, copying id so the caller's big.Int
// can't be mutated out from under it.
func NewNodeAddress(id *big.Int, host string, port int) *NodeAddress {
	if id == nil {
		return &NodeAddress{ID: new(big.Int), Host: host, Port: port}
	}
	return &NodeAddress{ID: new(big.Int).Set(id), Host: host, Port: port}
}

// AddressOf builds a NodeAddress by hashing host:port into its ring ID.
func AddressOf(host string, port int) *NodeAddress {
	addr := fmt.Sprintf("%s:%d", host, port)
	return NewNodeAddress(ring.HashAddress(addr), host, port)
}

func (n *NodeAddress) String() string {
	if n == nil {
		return "NodeAddress{nil}"
	}
	return fmt.Sprintf("NodeAddress{id:%s addr:%s}", ring.Short(n.ID, 8), n.Address())
}

// Address returns the "host:port" dial string.
func (n *NodeAddress) Address() string {
	if n == nil {
		return ""
	}
	return fmt.Sprintf("%s:%d", n.Host, n.Port)
}

// Equals compares two node addresses by id, host and port.
func (n *NodeAddress) Equals(other *NodeAddress) bool {
	if n == nil && other == nil {
		return true
	}
	if n == nil || other == nil {
		return false
	}
	if n.ID == nil || other.ID == nil {
		return n.ID == other.ID && n.Host == other.Host && n.Port == other.Port
	}
	return n.ID.Cmp(other.ID) == 0 && n.Host == other.Host && n.Port == other.Port
}

// Copy returns a deep copy so the receiver can't alias the caller's ID.
func (n *NodeAddress) Copy() *NodeAddress {
	if n == nil {
		return nil
	}
	return NewNodeAddress(n.ID, n.Host, n.Port)
}

// IsNil reports whether n is nil or missing an identifier.
func (n *NodeAddress) IsNil() bool {
	return n == nil || n.ID == nil
}

// IDBytes renders the node's identifier as a fixed-width big-endian byte
// slice, the 20-byte form identifiers take on the wire.
func (n *NodeAddress) IDBytes() []byte {
	if n == nil || n.ID == nil {
		return ring.IDToBytes(nil)
	}
	return ring.IDToBytes(n.ID)
}

// NodeAddressFromIDBytes builds a NodeAddress from a wire-encoded
// identifier and dial address.
func NodeAddressFromIDBytes(idBytes []byte, host string, port int) *NodeAddress {
	return NewNodeAddress(new(big.Int).SetBytes(idBytes), host, port)
}

// FingerEntry is one row of the finger table: the ring position it covers
// and the node currently believed to be its successor.
type FingerEntry struct {
	Start *big.Int
	Node  *NodeAddress
}

// NewFingerEntry builds a FingerEntry, copying both fields.
func NewFingerEntry(start *big.Int, node *NodeAddress) *FingerEntry {
	var startCopy *big.Int
	if start != nil {
		startCopy = new(big.Int).Set(start)
	}
	return &FingerEntry{Start: startCopy, Node: node.Copy()}
}

func (f *FingerEntry) String() string {
	if f == nil {
		return "FingerEntry{nil}"
	}
	return fmt.Sprintf("FingerEntry{start:%s node:%s}", ring.Short(f.Start, 8), f.Node.String())
}

// Copy returns a deep copy of the finger entry.
func (f *FingerEntry) Copy() *FingerEntry {
	if f == nil {
		return nil
	}
	return NewFingerEntry(f.Start, f.Node)
}

// IsNil reports whether the entry or its node is unset.
func (f *FingerEntry) IsNil() bool {
	return f == nil || f.Start == nil || f.Node.IsNil()
}
