package transport

import (
	"context"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jorvik-labs/ringd/internal/chord"
	"github.com/jorvik-labs/ringd/internal/config"
	"github.com/jorvik-labs/ringd/internal/logging"
)

func newTestNode(t *testing.T, port int) *chord.Node {
	t.Helper()
	cfg := config.Default()
	cfg.Host = "127.0.0.1"
	cfg.Port = port
	cfg.DevMode = true
	cfg.StabilizeInterval = 50 * time.Millisecond
	cfg.FixFingersInterval = 50 * time.Millisecond
	cfg.CheckPredecessorInterval = 50 * time.Millisecond

	node, err := chord.New(cfg, logging.Get())
	require.NoError(t, err)
	return node
}

func newTestServer(t *testing.T, node *chord.Node, port int) *GRPCServer {
	t.Helper()
	server, err := NewGRPCServer(node, fmt.Sprintf("127.0.0.1:%d", port), logging.Get(), true, "")
	require.NoError(t, err)
	require.NoError(t, server.Start())
	t.Cleanup(func() { server.Stop() })
	return server
}

func TestNewGRPCClient(t *testing.T) {
	client := NewGRPCClient(logging.Get(), 5*time.Second, "")
	require.NotNil(t, client)
	assert.Equal(t, 5*time.Second, client.timeout)
	defer client.Close()
}

func TestNewGRPCClient_NilLogger(t *testing.T) {
	client := NewGRPCClient(nil, 5*time.Second, "")
	require.NotNil(t, client)
	assert.NotNil(t, client.logger)
}

func TestGRPCClient_FindSuccessor_SingleNodeRing(t *testing.T) {
	node := newTestNode(t, 18300)
	node.Create()
	defer node.Shutdown()
	newTestServer(t, node, 18300)

	client := NewGRPCClient(logging.Get(), 2*time.Second, "")
	defer client.Close()

	self := node.Address()
	successor, err := client.FindSuccessor(context.Background(), self, big.NewInt(100))
	require.NoError(t, err)
	require.NotNil(t, successor)
	assert.Equal(t, node.ID(), successor.ID)
}

func TestGRPCClient_FindSuccessor_Unreachable(t *testing.T) {
	client := NewGRPCClient(logging.Get(), 500*time.Millisecond, "")
	defer client.Close()

	dead := chord.AddressOf("127.0.0.1", 19999)
	_, err := client.FindSuccessor(context.Background(), dead, big.NewInt(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, chord.ErrTransport)
}

func TestGRPCClient_GetPredecessor_InitiallyNil(t *testing.T) {
	node := newTestNode(t, 18310)
	node.Create()
	defer node.Shutdown()
	newTestServer(t, node, 18310)

	client := NewGRPCClient(logging.Get(), 2*time.Second, "")
	defer client.Close()

	pred, err := client.GetPredecessor(context.Background(), node.Address())
	require.NoError(t, err)
	assert.Nil(t, pred)
}

func TestGRPCClient_PutAndGet(t *testing.T) {
	node := newTestNode(t, 18320)
	node.Create()
	defer node.Shutdown()
	newTestServer(t, node, 18320)

	client := NewGRPCClient(logging.Get(), 2*time.Second, "")
	defer client.Close()

	err := client.Put(context.Background(), node.Address(), "greeting", []byte("hello"), 0, 1)
	require.NoError(t, err)

	value, status, err := client.Get(context.Background(), node.Address(), "greeting")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(value))
	_ = status
}
