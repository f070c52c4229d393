package chord

import (
	"context"
	"math/big"
	"time"

	"github.com/jorvik-labs/ringd/internal/pow"
	"github.com/jorvik-labs/ringd/internal/store"
)

// RemoteClient is everything a node needs to say to a peer over the
// transport layer. Implementations must translate any connection
// failure, timeout, or reset into ErrTransport so the routing and
// stabilization engines can react uniformly; every other error is an
// application-level outcome returned as-is.
//
// Node state never holds a live handle to a peer, only its NodeAddress;
// every call here dials fresh or reuses a pooled connection keyed by
// address.
type RemoteClient interface {
	FindSuccessor(ctx context.Context, addr *NodeAddress, id *big.Int) (*NodeAddress, error)
	FindClosestPrecedingFinger(ctx context.Context, addr *NodeAddress, id *big.Int) (*NodeAddress, error)
	GetPredecessor(ctx context.Context, addr *NodeAddress) (*NodeAddress, error)
	GetSuccessorList(ctx context.Context, addr *NodeAddress) ([]*NodeAddress, error)
	// Notify announces self as a candidate predecessor and returns the
	// pairs the callee streamed back as part of handing off ownership.
	Notify(ctx context.Context, addr *NodeAddress, self *NodeAddress, token *pow.Token) ([]store.Pair, error)
	FixFingers(ctx context.Context, addr *NodeAddress) error
	Stabilize(ctx context.Context, addr *NodeAddress) error
	Health(ctx context.Context, addr *NodeAddress) error
	// Handoff streams pairs to addr as part of a voluntary departure.
	Handoff(ctx context.Context, addr *NodeAddress, pairs []store.Pair) error
	// ReplicatePush is the fire-and-forget sibling of Handoff used by
	// replica reconciliation; failures are logged, never propagated.
	ReplicatePush(ctx context.Context, addr *NodeAddress, pairs []store.Pair)
	Get(ctx context.Context, addr *NodeAddress, key string) ([]byte, store.Status, error)
	Put(ctx context.Context, addr *NodeAddress, key string, value []byte, ttl time.Duration, replication int) error
}
