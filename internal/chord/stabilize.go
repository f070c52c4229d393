package chord

import (
	"context"
	"errors"
	"math/big"
	"math/rand"
	"time"

	"github.com/jorvik-labs/ringd/internal/pow"
	"github.com/jorvik-labs/ringd/internal/ring"
	"github.com/jorvik-labs/ringd/internal/store"
)

// jitterFraction is the ±20% jitter applied to every periodic interval,
// so that many nodes booted at the same instant don't hammer each other
// in lockstep. dev_mode reduces it to a tenth of that.
const jitterFraction = 0.20

func (n *Node) jitter(d time.Duration) time.Duration {
	frac := jitterFraction
	if n.config.DevMode {
		frac /= 10
	}
	delta := float64(d) * frac
	offset := (rand.Float64()*2 - 1) * delta
	return d + time.Duration(offset)
}

// startBackgroundTasks launches the three cooperating periodic loops.
// Each is cancelled as a unit via n.ctx, one broadcast signal observed at
// every suspension point.
func (n *Node) startBackgroundTasks() {
	n.wg.Add(3)
	go n.runLoop(n.config.StabilizeInterval, n.stabilizeTick)
	go n.runLoop(n.config.FixFingersInterval, n.fixFingersTick)
	go n.runLoop(n.config.CheckPredecessorInterval, n.checkPredecessorTick)
}

// runLoop ticks tick at interval (jittered) until the node is shut down.
func (n *Node) runLoop(interval time.Duration, tick func(ctx context.Context)) {
	defer n.wg.Done()
	timer := time.NewTimer(n.jitter(interval))
	defer timer.Stop()
	for {
		select {
		case <-n.ctx.Done():
			return
		case <-timer.C:
			ctx, cancel := context.WithTimeout(n.ctx, n.config.RPCTimeout)
			tick(ctx)
			cancel()
			timer.Reset(n.jitter(interval))
		}
	}
}

func (n *Node) stabilizeTick(ctx context.Context) {
	if err := n.stabilize(ctx); err != nil {
		n.logger.Debug().Err(err).Msg("stabilize round failed")
	}
}

func (n *Node) fixFingersTick(ctx context.Context) {
	n.fixFingers(ctx)
}

func (n *Node) checkPredecessorTick(ctx context.Context) {
	n.checkPredecessor(ctx)
}

// stabilize is the core correctness protocol of the ring: it asks the current
// successor for its predecessor, adopts that predecessor if it lies
// strictly between self and the successor, refreshes the successor list,
// and notifies the (possibly new) successor so handoff can happen.
// isolationInvariantRounds is how many consecutive successor-less rounds a
// node tolerates while still holding a predecessor before it treats the
// state as an invariant violation and re-bootstraps through that
// predecessor.
const isolationInvariantRounds = 4

func (n *Node) stabilize(ctx context.Context) error {
	successor := n.firstSuccessor()
	if successor == nil {
		if pred := n.getPredecessor(); pred != nil && !pred.IsNil() {
			if n.isolatedRounds.Add(1) >= isolationInvariantRounds {
				n.isolatedRounds.Store(0)
				n.logger.Error().Err(ErrInvariant).
					Str("predecessor", pred.Address()).
					Msg("successor list empty with live predecessor, re-bootstrapping through predecessor")
				n.successors.replace(pred)
				n.fingers.setNodeForIndexZero(pred)
			}
		}
		return nil
	}
	n.isolatedRounds.Store(0)

	x, err := n.remote.GetPredecessor(ctx, successor)
	if err != nil {
		if errors.Is(err, ErrTransport) {
			return n.failoverSuccessor(ctx, successor)
		}
		return err
	}
	// A successor equal to self is the bootstrap degenerate case: the ring
	// had one member and a joiner has announced itself via notify. The
	// open-open check is false on equal endpoints, so that case is adopted
	// explicitly or the two nodes would never link up.
	if x != nil && !x.IsNil() && !x.Equals(n.address) {
		if ring.InOpenOpen(n.id, successor.ID, x.ID) || successor.Equals(n.address) {
			successor = x
			n.successors.replace(successor)
			n.fingers.setNodeForIndexZero(successor)
		}
	}

	sSuccessors, err := n.remote.GetSuccessorList(ctx, successor)
	if err != nil {
		if errors.Is(err, ErrTransport) {
			return n.failoverSuccessor(ctx, successor)
		}
		return err
	}
	n.successors.mergeFromSuccessor(n.address, successor, sSuccessors)

	if successor.Equals(n.address) {
		// Sole member: nothing to notify, nothing to hand off.
		return nil
	}

	token, err := n.mintToken(successor)
	if err != nil {
		return err
	}
	pairs, err := n.remote.Notify(ctx, successor, n.address, token)
	if err != nil {
		if errors.Is(err, ErrTransport) {
			return n.failoverSuccessor(ctx, successor)
		}
		return err
	}
	n.store.MergeReplicated(pairs)
	return nil
}

// failoverSuccessor drops the dead head of the successor list and
// promotes the next entry. If the list empties, the
// node is isolated and simply waits for the next notify.
func (n *Node) failoverSuccessor(ctx context.Context, dead *NodeAddress) error {
	n.fingers.invalidate(n.address, dead)
	n.successors.remove(dead)
	n.logger.Warn().Str("dead_successor", dead.Address()).Msg("successor unreachable, failing over")
	return nil
}

// mintToken produces the proof-of-work token a notify call to target must
// present. On first contact this is the join token; on routine
// re-notification from an already-accepted predecessor the token still
// must satisfy the verifier's minimum, so it is minted fresh every round.
func (n *Node) mintToken(target *NodeAddress) (*pow.Token, error) {
	return pow.Mint(n.address.Address(), n.config.EffectivePowDifficulty(), 0)
}

// Notify is the server-side half of the notify protocol: validate the
// caller's admission token, conditionally adopt it as predecessor, and
// return the pairs the caller is now primary for.
//
// The handoff range is computed against the previous predecessor value
// before the predecessor field is swapped, so a racing stabilize round
// can never see a half-updated predecessor.
func (n *Node) Notify(ctx context.Context, caller *NodeAddress, token *pow.Token) ([]store.Pair, error) {
	if caller.Equals(n.address) {
		return nil, nil
	}
	if err := n.pow.Validate(token, caller.Address()); err != nil {
		return nil, ErrPermissionDenied
	}

	prev := n.getPredecessor()
	advance := prev == nil || prev.IsNil() || ring.InOpenOpen(prev.ID, n.id, caller.ID)
	if !advance {
		return nil, nil
	}

	var lo *big.Int
	if prev == nil || prev.IsNil() {
		lo = n.id
	} else {
		lo = prev.ID
	}
	n.setPredecessor(caller)

	pairs := n.store.DrainRange(lo, caller.ID)

	n.pushReplicas(ctx)

	return pairs, nil
}

// Stabilize runs one stabilization round on demand. The RPC server exposes
// it as the wire-level Stabilize() endpoint; the background loop calls
// the same method on its own timer.
func (n *Node) Stabilize(ctx context.Context) error {
	return n.stabilize(ctx)
}

// FixFingers advances the fix_fingers round-robin by one entry on demand,
// the RPC-facing counterpart of fixFingersTick.
func (n *Node) FixFingers(ctx context.Context) {
	n.fixFingers(ctx)
}

// Health is the RPC-facing liveness probe: it always succeeds as long
// as the node is reachable and not shut down.
func (n *Node) Health() error {
	if n.IsShutdown() {
		return ErrTransport
	}
	return nil
}

// fixFingers maintains one finger table entry per call, round-robin over
// all ring.M entries, amortizing the cost of keeping the whole table
// fresh.
func (n *Node) fixFingers(ctx context.Context) {
	n.nextFingerMu.Lock()
	i := n.nextFingerToFix
	n.nextFingerToFix = (n.nextFingerToFix + 1) % ring.M
	n.nextFingerMu.Unlock()

	start := ring.AddPowerOfTwo(n.id, i)
	addr, err := n.findSuccessor(ctx, start, n.config.LookupRetries)
	if err != nil {
		n.logger.Debug().Err(err).Int("finger", i).Msg("fix_fingers lookup failed")
		return
	}
	n.fingers.set(i, NewFingerEntry(start, addr))
	if i == 0 {
		n.successors.replace(addr)
	}
}

// checkPredecessor pings the predecessor and clears the slot if it no
// longer answers; the next notify from a live node will repopulate it.
func (n *Node) checkPredecessor(ctx context.Context) {
	pred := n.getPredecessor()
	if pred == nil {
		return
	}
	if err := n.remote.Health(ctx, pred); err != nil {
		n.logger.Warn().Str("predecessor", pred.Address()).Msg("predecessor unresponsive, clearing")
		n.clearPredecessor()
	}
}

// pushReplicas streams the node's currently-owned range to every member of
// its successor list, so replicas reconfigured by a recent notify
// converge. Best-effort: failures are
// logged and left for the next round.
func (n *Node) pushReplicas(ctx context.Context) {
	pred := n.getPredecessor()
	var lo *big.Int
	if pred == nil || pred.IsNil() {
		lo = n.id
	} else {
		lo = pred.ID
	}
	pairs := n.store.CloneRange(lo, n.id)
	if len(pairs) == 0 {
		return
	}
	for _, succ := range n.successors.exceptSelf(n.address) {
		n.remote.ReplicatePush(ctx, succ, pairs)
	}
}
