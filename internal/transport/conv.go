package transport

import (
	"github.com/jorvik-labs/ringd/internal/chord"
	"github.com/jorvik-labs/ringd/internal/rpc/wire"
)

// toWireNode renders a chord.NodeAddress for the wire. A nil or empty
// address marshals to nil, which fromWireNode reads back as "absent"
// (e.g. no predecessor).
func toWireNode(n *chord.NodeAddress) *wire.Node {
	if n.IsNil() {
		return nil
	}
	return &wire.Node{Id: n.IDBytes(), Host: n.Host, Port: int32(n.Port)}
}

func fromWireNode(n *wire.Node) *chord.NodeAddress {
	if n == nil {
		return nil
	}
	return chord.NodeAddressFromIDBytes(n.Id, n.Host, int(n.Port))
}
