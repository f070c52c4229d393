// Package integration exercises a handful of real ringd nodes talking over
// actual gRPC connections on loopback.
package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jorvik-labs/ringd/internal/chord"
	"github.com/jorvik-labs/ringd/internal/config"
	"github.com/jorvik-labs/ringd/internal/logging"
	"github.com/jorvik-labs/ringd/internal/transport"
)

// testCluster owns every node, server, and client spun up for one test and
// tears all of it down together.
type testCluster struct {
	nodes   []*chord.Node
	servers []*transport.GRPCServer
	clients []*transport.GRPCClient
	logger  *logging.Logger
}

func newTestCluster(t *testing.T) *testCluster {
	t.Helper()
	loggerCfg := logging.DefaultConfig()
	loggerCfg.Level = "error"
	logger, err := logging.New(loggerCfg)
	require.NoError(t, err)
	return &testCluster{logger: logger}
}

// addNode creates a node bound to 127.0.0.1:port, starts its gRPC server,
// and either creates a new ring (bootstrap == nil) or joins through it.
func (tc *testCluster) addNode(t *testing.T, port int, bootstrap *chord.NodeAddress) *chord.Node {
	t.Helper()

	cfg := config.Default()
	cfg.Host = "127.0.0.1"
	cfg.Port = port
	cfg.DevMode = true
	cfg.StabilizeInterval = 100 * time.Millisecond
	cfg.FixFingersInterval = 100 * time.Millisecond
	cfg.CheckPredecessorInterval = 150 * time.Millisecond
	cfg.LogLevel = "error"

	node, err := chord.New(cfg, tc.logger)
	require.NoError(t, err)

	server, err := transport.NewGRPCServer(node, fmt.Sprintf("127.0.0.1:%d", port), tc.logger, true, "")
	require.NoError(t, err)
	require.NoError(t, server.Start())

	client := transport.NewGRPCClient(tc.logger, cfg.RPCTimeout, "")
	node.SetRemote(client)

	if bootstrap == nil {
		node.Create()
	} else {
		require.NoError(t, node.Join(context.Background(), bootstrap))
	}

	tc.nodes = append(tc.nodes, node)
	tc.servers = append(tc.servers, server)
	tc.clients = append(tc.clients, client)
	return node
}

func (tc *testCluster) shutdown(t *testing.T) {
	t.Helper()
	for _, node := range tc.nodes {
		node.Shutdown()
	}
	for _, server := range tc.servers {
		if err := server.Stop(); err != nil {
			t.Logf("error stopping server: %v", err)
		}
	}
	for _, client := range tc.clients {
		if err := client.Close(); err != nil {
			t.Logf("error closing client: %v", err)
		}
	}
}

// waitForStabilization gives the background loops enough rounds to converge
// at the fast intervals addNode configures.
func (tc *testCluster) waitForStabilization() {
	time.Sleep(2 * time.Second)
}
