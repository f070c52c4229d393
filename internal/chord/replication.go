package chord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jorvik-labs/ringd/internal/ring"
	"github.com/jorvik-labs/ringd/internal/store"
)

// Put is the hashtable surface's write path. It locates the primary
// owner of key and forwards the write there with the requested replication
// factor; replication <= 0 means "use this node's configured default".
func (n *Node) Put(ctx context.Context, key string, value []byte, ttl time.Duration, replication int) error {
	if replication <= 0 {
		replication = n.config.ReplicationFactor
	}

	primary, err := n.FindSuccessor(ctx, ring.HashString(key))
	if err != nil {
		return fmt.Errorf("chord: put: locating primary for key %q: %w", key, err)
	}

	if primary.Equals(n.address) {
		return n.storeAndFanOut(ctx, key, value, ttl, replication)
	}
	if err := n.remote.Put(ctx, primary, key, value, ttl, replication); err != nil {
		return fmt.Errorf("chord: put: forwarding to primary %s: %w", primary.Address(), err)
	}
	return nil
}

// storeAndFanOut is the primary-side half of write fan-out: store locally,
// then replicate to the next replication-1 successors with replication=0
// so they store without forwarding further.
func (n *Node) storeAndFanOut(ctx context.Context, key string, value []byte, ttl time.Duration, replication int) error {
	n.store.Put(key, value, ttl)

	if replication <= 1 {
		return nil
	}
	successors := n.successors.exceptSelf(n.address)
	fanOut := replication - 1
	if fanOut > len(successors) {
		fanOut = len(successors)
	}
	for _, succ := range successors[:fanOut] {
		if err := n.remote.Put(ctx, succ, key, value, ttl, 0); err != nil {
			n.logger.Warn().Err(err).Str("replica", succ.Address()).Msg("replica put failed")
		}
	}
	return nil
}

// HandleReplicatedPut is invoked by the RPC server when a peer forwards a
// Put to this node as part of write fan-out (replication field 0). It
// never forwards further.
func (n *Node) HandleReplicatedPut(key string, value []byte, ttl time.Duration) {
	n.store.Put(key, value, ttl)
}

// Get is the hashtable surface's read path. It always routes to the
// primary; it deliberately does not fall back to replicas, favoring
// consistency of routing over availability.
func (n *Node) Get(ctx context.Context, key string) ([]byte, store.Status, error) {
	primary, err := n.FindSuccessor(ctx, ring.HashString(key))
	if err != nil {
		return nil, store.StatusNotFound, fmt.Errorf("chord: get: locating primary for key %q: %w", key, err)
	}

	if primary.Equals(n.address) {
		value, status := n.store.Get(key)
		return value, status, nil
	}

	value, status, err := n.remote.Get(ctx, primary, key)
	if err != nil {
		if errors.Is(err, ErrTransport) {
			return nil, store.StatusNotFound, ErrRouting
		}
		return nil, store.StatusNotFound, err
	}
	return value, status, nil
}

// Leave performs the voluntary-departure handoff: stream the
// entire local store to the immediate successor, then shut the node down.
// A node that never calls Leave (e.g. it crashes) is handled instead by
// check_predecessor/stabilize detecting the gap.
func (n *Node) Leave(ctx context.Context) error {
	successor := n.firstSuccessor()
	if successor != nil && !successor.Equals(n.address) {
		pairs := n.store.Snapshot()
		if len(pairs) > 0 {
			if err := n.remote.Handoff(ctx, successor, pairs); err != nil {
				n.logger.Warn().Err(err).Str("successor", successor.Address()).Msg("leave: handoff failed")
			}
		}
	}
	n.Shutdown()
	return nil
}

// HandleHandoff merges an inbound voluntary-departure or replica-push
// stream into the local store, resolving conflicts by
// latest-expiration-wins.
func (n *Node) HandleHandoff(pairs []store.Pair) {
	n.store.MergeReplicated(pairs)
}
