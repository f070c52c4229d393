package chord

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jorvik-labs/ringd/internal/config"
	"github.com/jorvik-labs/ringd/internal/logging"
	"github.com/jorvik-labs/ringd/internal/pow"
	"github.com/jorvik-labs/ringd/internal/store"
)

// registry lets a handful of Nodes share one process and dial each other
// by address without a real network.
type registry struct {
	mu    sync.Mutex
	nodes map[string]*Node
}

func newRegistry() *registry {
	return &registry{nodes: make(map[string]*Node)}
}

func (r *registry) register(n *Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes[n.Address().Address()] = n
}

func (r *registry) lookup(addr *NodeAddress) (*Node, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.nodes[addr.Address()]
	return n, ok
}

// fakeRemote implements RemoteClient by dispatching straight into another
// Node's methods in-process, translating "no such peer" into ErrTransport
// exactly as a dropped connection would.
type fakeRemote struct {
	reg *registry
}

func (f *fakeRemote) peer(addr *NodeAddress) (*Node, error) {
	n, ok := f.reg.lookup(addr)
	if !ok {
		return nil, ErrTransport
	}
	if n.IsShutdown() {
		return nil, ErrTransport
	}
	return n, nil
}

func (f *fakeRemote) FindSuccessor(ctx context.Context, addr *NodeAddress, id *big.Int) (*NodeAddress, error) {
	p, err := f.peer(addr)
	if err != nil {
		return nil, err
	}
	return p.FindSuccessor(ctx, id)
}

func (f *fakeRemote) FindClosestPrecedingFinger(ctx context.Context, addr *NodeAddress, id *big.Int) (*NodeAddress, error) {
	p, err := f.peer(addr)
	if err != nil {
		return nil, err
	}
	return p.ClosestPrecedingFinger(id), nil
}

func (f *fakeRemote) GetPredecessor(ctx context.Context, addr *NodeAddress) (*NodeAddress, error) {
	p, err := f.peer(addr)
	if err != nil {
		return nil, err
	}
	return p.GetPredecessor(), nil
}

func (f *fakeRemote) GetSuccessorList(ctx context.Context, addr *NodeAddress) ([]*NodeAddress, error) {
	p, err := f.peer(addr)
	if err != nil {
		return nil, err
	}
	return p.GetSuccessorList(), nil
}

func (f *fakeRemote) Notify(ctx context.Context, addr *NodeAddress, self *NodeAddress, token *pow.Token) ([]store.Pair, error) {
	p, err := f.peer(addr)
	if err != nil {
		return nil, err
	}
	return p.Notify(ctx, self, token)
}

func (f *fakeRemote) FixFingers(ctx context.Context, addr *NodeAddress) error {
	p, err := f.peer(addr)
	if err != nil {
		return err
	}
	p.FixFingers(ctx)
	return nil
}

func (f *fakeRemote) Stabilize(ctx context.Context, addr *NodeAddress) error {
	p, err := f.peer(addr)
	if err != nil {
		return err
	}
	return p.Stabilize(ctx)
}

func (f *fakeRemote) Health(ctx context.Context, addr *NodeAddress) error {
	p, err := f.peer(addr)
	if err != nil {
		return err
	}
	return p.Health()
}

func (f *fakeRemote) Handoff(ctx context.Context, addr *NodeAddress, pairs []store.Pair) error {
	p, err := f.peer(addr)
	if err != nil {
		return err
	}
	p.HandleHandoff(pairs)
	return nil
}

func (f *fakeRemote) ReplicatePush(ctx context.Context, addr *NodeAddress, pairs []store.Pair) {
	if p, err := f.peer(addr); err == nil {
		p.HandleHandoff(pairs)
	}
}

func (f *fakeRemote) Get(ctx context.Context, addr *NodeAddress, key string) ([]byte, store.Status, error) {
	p, err := f.peer(addr)
	if err != nil {
		return nil, store.StatusNotFound, err
	}
	return p.Get(ctx, key)
}

func (f *fakeRemote) Put(ctx context.Context, addr *NodeAddress, key string, value []byte, ttl time.Duration, replication int) error {
	p, err := f.peer(addr)
	if err != nil {
		return err
	}
	if replication == 0 {
		p.HandleReplicatedPut(key, value, ttl)
		return nil
	}
	return p.Put(ctx, key, value, ttl, replication)
}

func newClusterNode(t *testing.T, reg *registry, host string, port int) *Node {
	t.Helper()
	cfg := config.Default()
	cfg.Host = host
	cfg.Port = port
	cfg.DevMode = true
	cfg.StabilizeInterval = 30 * time.Millisecond
	cfg.FixFingersInterval = 30 * time.Millisecond
	cfg.CheckPredecessorInterval = 30 * time.Millisecond

	n, err := New(cfg, logging.Get())
	require.NoError(t, err)
	n.SetRemote(&fakeRemote{reg: reg})
	reg.register(n)
	return n
}

// waitFor polls cond until it's true or timeout elapses.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	require.True(t, cond(), "condition not met within %s", timeout)
}

func TestNew_ValidatesConfigAndArgs(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		n, err := New(nil, logging.Get())
		assert.Error(t, err)
		assert.Nil(t, n)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := config.Default()
		cfg.Port = -1
		n, err := New(cfg, logging.Get())
		assert.Error(t, err)
		assert.Nil(t, n)
	})

	t.Run("nil logger falls back to global", func(t *testing.T) {
		cfg := config.Default()
		cfg.Port = 18000
		n, err := New(cfg, nil)
		require.NoError(t, err)
		require.NotNil(t, n)
	})
}

func TestSingleNodeRing(t *testing.T) {
	reg := newRegistry()
	n1 := newClusterNode(t, reg, "127.0.0.1", 18100)
	n1.Create()
	defer n1.Shutdown()

	succ, err := n1.FindSuccessor(context.Background(), n1.ID())
	require.NoError(t, err)
	assert.True(t, succ.Equals(n1.Address()))

	require.NoError(t, n1.Put(context.Background(), "foo", []byte("bar"), 0, 1))
	value, status, err := n1.Get(context.Background(), "foo")
	require.NoError(t, err)
	assert.Equal(t, store.StatusOK, status)
	assert.Equal(t, "bar", string(value))
}

func TestTwoNodeJoin_Stabilizes(t *testing.T) {
	reg := newRegistry()
	n1 := newClusterNode(t, reg, "127.0.0.1", 18110)
	n1.Create()
	defer n1.Shutdown()

	n2 := newClusterNode(t, reg, "127.0.0.1", 18111)
	defer n2.Shutdown()
	require.NoError(t, n2.Join(context.Background(), n1.Address()))

	waitFor(t, 2*time.Second, func() bool {
		p1 := n1.GetPredecessor()
		p2 := n2.GetPredecessor()
		return p1 != nil && p1.Equals(n2.Address()) &&
			p2 != nil && p2.Equals(n1.Address())
	})

	assert.True(t, n1.firstSuccessor().Equals(n2.Address()))
	assert.True(t, n2.firstSuccessor().Equals(n1.Address()))
}

func TestHandoffOnJoin(t *testing.T) {
	reg := newRegistry()
	n1 := newClusterNode(t, reg, "127.0.0.1", 18120)
	n1.Create()
	defer n1.Shutdown()

	require.NoError(t, n1.Put(context.Background(), "k1", []byte("v1"), 0, 1))

	n2 := newClusterNode(t, reg, "127.0.0.1", 18121)
	defer n2.Shutdown()
	require.NoError(t, n2.Join(context.Background(), n1.Address()))

	waitFor(t, 2*time.Second, func() bool {
		v, status, err := n1.Get(context.Background(), "k1")
		return err == nil && status == store.StatusOK && string(v) == "v1"
	})
}

func TestPoWRejection(t *testing.T) {
	reg := newRegistry()
	n1 := newClusterNode(t, reg, "127.0.0.1", 18130)
	n1.Create()
	defer n1.Shutdown()

	badToken := &pow.Token{Address: "someone-else:9999", Timestamp: time.Now().Unix(), Nonce: 0, Difficulty: 0}
	_, err := n1.Notify(context.Background(), AddressOf("127.0.0.1", 18131), badToken)
	require.ErrorIs(t, err, ErrPermissionDenied)
	assert.Nil(t, n1.GetPredecessor())
}

// collidingRemote answers FindSuccessor with a fixed address, simulating a
// ring that already contains a member at the joiner's own id.
type collidingRemote struct {
	*fakeRemote
	collision *NodeAddress
}

func (c *collidingRemote) FindSuccessor(ctx context.Context, addr *NodeAddress, id *big.Int) (*NodeAddress, error) {
	return c.collision.Copy(), nil
}

func TestJoin_AddressCollisionIsFatal(t *testing.T) {
	reg := newRegistry()
	n1 := newClusterNode(t, reg, "127.0.0.1", 18140)
	n1.Create()
	defer n1.Shutdown()

	n2 := newClusterNode(t, reg, "127.0.0.1", 18141)
	defer n2.Shutdown()

	// A ring member with n2's exact id but a different endpoint.
	collision := NewNodeAddress(n2.ID(), "10.0.0.9", 4040)
	n2.SetRemote(&collidingRemote{fakeRemote: &fakeRemote{reg: reg}, collision: collision})

	err := n2.Join(context.Background(), n1.Address())
	require.ErrorIs(t, err, ErrConflict)
	assert.Nil(t, n2.GetPredecessor())
	assert.Equal(t, 0, n2.GetKvStoreSize())
}
