package transport

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/jorvik-labs/ringd/internal/chord"
	"github.com/jorvik-labs/ringd/internal/logging"
	"github.com/jorvik-labs/ringd/internal/pow"
	"github.com/jorvik-labs/ringd/internal/ring"
	"github.com/jorvik-labs/ringd/internal/rpc"
	"github.com/jorvik-labs/ringd/internal/rpc/wire"
	"github.com/jorvik-labs/ringd/internal/store"
)

// Compile-time check that GRPCClient satisfies the chord engine's outbound
// transport contract.
var _ chord.RemoteClient = (*GRPCClient)(nil)

// GRPCClient dials peers over gRPC, pooling one connection per address so
// the routing and stabilization engines don't pay a handshake on every
// hop. A node never holds a live handle to a peer, only this client does,
// keyed by address.
type GRPCClient struct {
	logger    *logging.Logger
	timeout   time.Duration
	authToken string

	mu    sync.RWMutex
	conns map[string]*grpc.ClientConn
}

// NewGRPCClient creates a client whose outbound calls default to timeout
// when the caller's context carries no deadline of its own. authToken, when
// non-empty, is attached to every unary call as x-auth-token metadata so it
// satisfies a peer server's AuthInterceptor.
func NewGRPCClient(logger *logging.Logger, timeout time.Duration, authToken string) *GRPCClient {
	if logger == nil {
		logger = logging.Get()
	}
	return &GRPCClient{
		logger:    logger.WithFields(logging.Fields{"component": "grpc_client"}),
		timeout:   timeout,
		authToken: authToken,
		conns:     make(map[string]*grpc.ClientConn),
	}
}

func (c *GRPCClient) conn(address string) (*grpc.ClientConn, error) {
	c.mu.RLock()
	cc, ok := c.conns[address]
	c.mu.RUnlock()
	if ok {
		return cc, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cc, ok := c.conns[address]; ok {
		return cc, nil
	}

	cc, err := grpc.NewClient(address,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(wire.Codec{})),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: dialing %s: %v", chord.ErrTransport, address, err)
	}
	c.conns[address] = cc
	return cc, nil
}

// Close tears down every pooled connection.
func (c *GRPCClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var firstErr error
	for addr, cc := range c.conns {
		if err := cc.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(c.conns, addr)
	}
	return firstErr
}

func (c *GRPCClient) client(addr *chord.NodeAddress) (rpc.ChordServiceClient, error) {
	cc, err := c.conn(addr.Address())
	if err != nil {
		return nil, err
	}
	return rpc.NewChordServiceClient(cc), nil
}

func (c *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.authToken != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, AuthTokenHeader, c.authToken)
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

// asTransportErr maps a gRPC status error to chord.ErrTransport when it
// represents unreachability, a reset, or a deadline, the cases the
// routing and stabilization engines must react to uniformly. A non-status
// error is also treated as a transport failure. PermissionDenied and
// AlreadyExists map back to chord.ErrPermissionDenied and chord.ErrConflict,
// and every other status passes through unchanged, so application-level
// outcomes stay distinguishable.
func asTransportErr(address string, err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%w: %s: %v", chord.ErrTransport, address, err)
	}
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled, codes.Aborted:
		return fmt.Errorf("%w: %s: %v", chord.ErrTransport, address, err)
	case codes.PermissionDenied:
		return chord.ErrPermissionDenied
	case codes.AlreadyExists:
		return chord.ErrConflict
	default:
		return err
	}
}

func (c *GRPCClient) FindSuccessor(ctx context.Context, addr *chord.NodeAddress, id *big.Int) (*chord.NodeAddress, error) {
	cl, err := c.client(addr)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	resp, err := cl.FindSuccessor(ctx, &wire.FindSuccessorRequest{Id: ring.IDToBytes(id)})
	if err != nil {
		return nil, asTransportErr(addr.Address(), err)
	}
	return fromWireNode(resp.Successor), nil
}

func (c *GRPCClient) FindClosestPrecedingFinger(ctx context.Context, addr *chord.NodeAddress, id *big.Int) (*chord.NodeAddress, error) {
	cl, err := c.client(addr)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	resp, err := cl.FindClosestPrecedingFinger(ctx, &wire.FindClosestPrecedingFingerRequest{Id: ring.IDToBytes(id)})
	if err != nil {
		return nil, asTransportErr(addr.Address(), err)
	}
	return fromWireNode(resp.Node), nil
}

func (c *GRPCClient) GetPredecessor(ctx context.Context, addr *chord.NodeAddress) (*chord.NodeAddress, error) {
	cl, err := c.client(addr)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	resp, err := cl.GetPredecessor(ctx, &wire.GetPredecessorRequest{})
	if err != nil {
		return nil, asTransportErr(addr.Address(), err)
	}
	return fromWireNode(resp.Predecessor), nil
}

func (c *GRPCClient) GetSuccessorList(ctx context.Context, addr *chord.NodeAddress) ([]*chord.NodeAddress, error) {
	cl, err := c.client(addr)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	resp, err := cl.GetSuccessorList(ctx, &wire.GetSuccessorListRequest{})
	if err != nil {
		return nil, asTransportErr(addr.Address(), err)
	}
	out := make([]*chord.NodeAddress, len(resp.Successors))
	for i, n := range resp.Successors {
		out[i] = fromWireNode(n)
	}
	return out, nil
}

func (c *GRPCClient) Notify(ctx context.Context, addr *chord.NodeAddress, self *chord.NodeAddress, token *pow.Token) ([]store.Pair, error) {
	cl, err := c.client(addr)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	stream, err := cl.Notify(ctx, &wire.NotifyRequest{Node: toWireNode(self), PowToken: toWireToken(token)})
	if err != nil {
		return nil, asTransportErr(addr.Address(), err)
	}

	var pairs []store.Pair
	for {
		pair, err := stream.Recv()
		if err != nil {
			if isStreamEnd(err) {
				break
			}
			return nil, asTransportErr(addr.Address(), err)
		}
		pairs = append(pairs, store.Pair{Key: pair.Key, Value: pair.Value, Expiration: pair.ExpirationDate})
	}
	return pairs, nil
}

func (c *GRPCClient) FixFingers(ctx context.Context, addr *chord.NodeAddress) error {
	cl, err := c.client(addr)
	if err != nil {
		return err
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	_, err = cl.FixFingers(ctx, &wire.FixFingersRequest{})
	return asTransportErr(addr.Address(), err)
}

func (c *GRPCClient) Stabilize(ctx context.Context, addr *chord.NodeAddress) error {
	cl, err := c.client(addr)
	if err != nil {
		return err
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	_, err = cl.Stabilize(ctx, &wire.StabilizeRequest{})
	return asTransportErr(addr.Address(), err)
}

func (c *GRPCClient) Health(ctx context.Context, addr *chord.NodeAddress) error {
	cl, err := c.client(addr)
	if err != nil {
		return err
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	_, err = cl.Health(ctx, &wire.HealthRequest{})
	return asTransportErr(addr.Address(), err)
}

func (c *GRPCClient) Handoff(ctx context.Context, addr *chord.NodeAddress, pairs []store.Pair) error {
	cl, err := c.client(addr)
	if err != nil {
		return err
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	stream, err := cl.Handoff(ctx)
	if err != nil {
		return asTransportErr(addr.Address(), err)
	}
	for _, p := range pairs {
		if err := stream.Send(&wire.KvPair{Key: p.Key, Value: p.Value, ExpirationDate: p.Expiration}); err != nil {
			return asTransportErr(addr.Address(), err)
		}
	}
	_, err = stream.CloseAndRecv()
	return asTransportErr(addr.Address(), err)
}

// ReplicatePush is the fire-and-forget sibling of Handoff used by replica
// reconciliation: it rides the same Handoff RPC, since both
// operations are "install these pairs", but failures are only logged, never
// surfaced to the caller; the next stabilize round will retry.
func (c *GRPCClient) ReplicatePush(ctx context.Context, addr *chord.NodeAddress, pairs []store.Pair) {
	go func() {
		pushCtx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		if err := c.Handoff(pushCtx, addr, pairs); err != nil {
			c.logger.Debug().Err(err).Str("replica", addr.Address()).Msg("replica push failed")
		}
	}()
}

func (c *GRPCClient) Get(ctx context.Context, addr *chord.NodeAddress, key string) ([]byte, store.Status, error) {
	cl, err := c.client(addr)
	if err != nil {
		return nil, store.StatusNotFound, err
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	resp, err := cl.Get(ctx, &wire.GetRequest{Key: key})
	if err != nil {
		return nil, store.StatusNotFound, asTransportErr(addr.Address(), err)
	}
	return resp.Value, fromWireStatus(resp.Status), nil
}

func (c *GRPCClient) Put(ctx context.Context, addr *chord.NodeAddress, key string, value []byte, ttl time.Duration, replication int) error {
	cl, err := c.client(addr)
	if err != nil {
		return err
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	_, err = cl.Put(ctx, &wire.PutRequest{
		Key:         key,
		Value:       value,
		TtlSeconds:  int64(ttl / time.Second),
		Replication: int32(replication),
	})
	return asTransportErr(addr.Address(), err)
}

func fromWireStatus(s wire.Status) store.Status {
	switch s {
	case wire.StatusOk:
		return store.StatusOK
	case wire.StatusExpired:
		return store.StatusExpired
	default:
		return store.StatusNotFound
	}
}

// isStreamEnd reports whether err is a server-stream's normal end marker.
func isStreamEnd(err error) bool {
	return err == io.EOF
}
