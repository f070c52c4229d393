package chord

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jorvik-labs/ringd/internal/config"
	"github.com/jorvik-labs/ringd/internal/logging"
	"github.com/jorvik-labs/ringd/internal/ring"
)

// newQuietNode builds a node without Create/Join, so no background loops
// mutate routing state under the test.
func newQuietNode(t *testing.T, reg *registry, port int) *Node {
	t.Helper()
	cfg := config.Default()
	cfg.Host = "127.0.0.1"
	cfg.Port = port
	cfg.DevMode = true

	n, err := New(cfg, logging.Get())
	require.NoError(t, err)
	n.SetRemote(&fakeRemote{reg: reg})
	reg.register(n)
	return n
}

func TestFindSuccessor_EvictsDeadFingerAndRetries(t *testing.T) {
	reg := newRegistry()
	n1 := newQuietNode(t, reg, 18150)

	n2 := AddressOf("127.0.0.1", 18151)
	n1.successors.replace(n2)

	// A finger pointing at a peer nobody can reach, positioned so it is
	// the closest preceding node for the lookup target.
	dead := NewNodeAddress(ring.Add(n1.ID(), big.NewInt(1)), "10.0.0.66", 7070)
	n1.fingers.set(100, NewFingerEntry(dead.ID, dead))

	target := ring.Add(n2.ID, big.NewInt(1))
	got, err := n1.FindSuccessor(context.Background(), target)
	require.NoError(t, err)
	assert.True(t, got.Equals(n2))

	// The transport failure must have reset the finger back to self.
	assert.True(t, n1.fingers.get(100).Node.Equals(n1.Address()))
}

func TestFindSuccessor_IsolatedNodeAnswersSelf(t *testing.T) {
	reg := newRegistry()
	n1 := newQuietNode(t, reg, 18160)

	got, err := n1.FindSuccessor(context.Background(), big.NewInt(42))
	require.NoError(t, err)
	assert.True(t, got.Equals(n1.Address()))
}

func TestClosestPrecedingFinger_NeverOvershootsTarget(t *testing.T) {
	reg := newRegistry()
	n1 := newQuietNode(t, reg, 18170)

	for _, id := range []*big.Int{big.NewInt(1), ring.HashString("probe"), ring.MaxID()} {
		got := n1.ClosestPrecedingFinger(id)
		if got.Equals(n1.Address()) {
			continue
		}
		assert.True(t, ring.InOpenOpen(n1.ID(), id, got.ID))
	}
}
