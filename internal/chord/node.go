// Package chord implements the distributed protocol engine: the ring data
// model, finger-table routing, the stabilization loops, and the replicated
// key-value store that rides on top of them.
package chord

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jorvik-labs/ringd/internal/config"
	"github.com/jorvik-labs/ringd/internal/logging"
	"github.com/jorvik-labs/ringd/internal/pow"
	"github.com/jorvik-labs/ringd/internal/store"
)

// Node is one participant in the ring: its identity, its view of the ring's
// routing structures, its local key-value store, and the background tasks
// that keep all three converging under churn.
//
// A Node never holds a live handle to another node, only NodeAddress
// values dialed through RemoteClient. This is what lets a peer's
// crash be modeled uniformly as "the next RPC returns ErrTransport".
type Node struct {
	id      *big.Int
	address *NodeAddress
	config  *config.Config
	logger  *logging.Logger

	remote RemoteClient
	store  *store.Store
	pow    *pow.Validator

	fingers    *fingerTable
	successors *successorList

	predecessor   *NodeAddress
	predecessorMu sync.RWMutex

	nextFingerToFix int
	nextFingerMu    sync.Mutex

	// isolatedRounds counts consecutive stabilize rounds spent with an
	// empty successor list while a predecessor is still known, the
	// inconsistency the invariant check repairs.
	isolatedRounds atomic.Int32

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	shutdown   bool
	shutdownMu sync.RWMutex
}

// New creates a Node bound to cfg.Address(), with an empty store and
// routing state. Callers must call SetRemote before Create/Join.
func New(cfg *config.Config, logger *logging.Logger) (*Node, error) {
	if cfg == nil {
		return nil, fmt.Errorf("chord: config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Get()
	}

	addr := AddressOf(cfg.Host, cfg.Port)
	ctx, cancel := context.WithCancel(context.Background())

	n := &Node{
		id:              addr.ID,
		address:         addr,
		config:          cfg,
		logger:          logger.WithFields(logging.Fields{"node_id": addr.String()}),
		store:           store.New(),
		pow:             pow.NewValidator(cfg.EffectivePowDifficulty(), replayDedupWindow),
		fingers:         newFingerTable(addr.ID),
		successors:      newSuccessorList(cfg.SuccessorListSize),
		nextFingerToFix: 0,
		ctx:             ctx,
		cancel:          cancel,
	}
	n.fingers.initAll(addr)

	n.logger.Info().Str("address", addr.Address()).Msg("node created")
	return n, nil
}

// replayDedupWindow is the single-use window for PoW tokens.
const replayDedupWindow = 5 * time.Minute

// SetRemote wires the RPC client used for all outbound calls.
func (n *Node) SetRemote(remote RemoteClient) {
	n.remote = remote
}

// ID returns a defensive copy of the node's ring identifier.
func (n *Node) ID() *big.Int {
	return new(big.Int).Set(n.id)
}

// Address returns a defensive copy of the node's own address.
func (n *Node) Address() *NodeAddress {
	return n.address.Copy()
}

func (n *Node) firstSuccessor() *NodeAddress {
	return n.successors.first()
}

func (n *Node) getPredecessor() *NodeAddress {
	n.predecessorMu.RLock()
	defer n.predecessorMu.RUnlock()
	return n.predecessor.Copy()
}

func (n *Node) setPredecessor(addr *NodeAddress) {
	n.predecessorMu.Lock()
	defer n.predecessorMu.Unlock()
	n.predecessor = addr.Copy()
}

func (n *Node) clearPredecessor() {
	n.predecessorMu.Lock()
	defer n.predecessorMu.Unlock()
	n.predecessor = nil
}

// Create starts a brand new ring with this node as its sole member.
func (n *Node) Create() {
	n.successors.replace(n.address)
	n.fingers.setNodeForIndexZero(n.address)
	n.clearPredecessor()
	n.startBackgroundTasks()
	n.logger.Info().Msg("created new ring")
}

// Shutdown cancels every background task and marks the node unusable. It
// does not transfer keys; voluntary departure with handoff is a separate
// call (see replication.go's Leave).
func (n *Node) Shutdown() {
	n.shutdownMu.Lock()
	if n.shutdown {
		n.shutdownMu.Unlock()
		return
	}
	n.shutdown = true
	n.shutdownMu.Unlock()

	n.cancel()
	n.wg.Wait()
	n.logger.Info().Msg("node shut down")
}

// IsShutdown reports whether Shutdown has been called.
func (n *Node) IsShutdown() bool {
	n.shutdownMu.RLock()
	defer n.shutdownMu.RUnlock()
	return n.shutdown
}
