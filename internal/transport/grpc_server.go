package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jorvik-labs/ringd/internal/chord"
	"github.com/jorvik-labs/ringd/internal/logging"
	"github.com/jorvik-labs/ringd/internal/pow"
	"github.com/jorvik-labs/ringd/internal/ring"
	"github.com/jorvik-labs/ringd/internal/rpc"
	"github.com/jorvik-labs/ringd/internal/rpc/wire"
	"github.com/jorvik-labs/ringd/internal/store"
)

// GRPCServer answers the ChordService RPCs for one local Node.
type GRPCServer struct {
	rpc.UnimplementedChordServiceServer

	node    *chord.Node
	logger  *logging.Logger
	devMode bool

	listener net.Listener
	server   *grpc.Server
}

// NewGRPCServer builds a server bound to addr for node. devMode gates the
// debug RPCs. authToken, when non-empty, requires every unary RPC to
// carry a matching x-auth-token metadata entry, a shared-secret layer on
// top of (not a substitute for) the PoW admission gate, since that gate
// only governs who may become predecessor, not who may call FindSuccessor,
// Get, or Put. Leave it empty to accept unauthenticated peers, as a single
// operator-controlled ring typically does.
func NewGRPCServer(node *chord.Node, addr string, logger *logging.Logger, devMode bool, authToken string) (*GRPCServer, error) {
	if node == nil {
		return nil, fmt.Errorf("transport: node cannot be nil")
	}
	if logger == nil {
		logger = logging.Get()
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("transport: listen on %s: %w", addr, err)
	}

	s := &GRPCServer{
		node:     node,
		logger:   logger.WithFields(logging.Fields{"component": "grpc_server"}),
		devMode:  devMode,
		listener: lis,
	}
	s.server = grpc.NewServer(
		grpc.ForceServerCodec(wire.Codec{}),
		grpc.UnaryInterceptor(AuthInterceptor(authToken)),
	)
	rpc.RegisterChordServiceServer(s.server, s)
	return s, nil
}

// Addr returns the server's bound listen address.
func (s *GRPCServer) Addr() string {
	return s.listener.Addr().String()
}

// Start begins serving in a background goroutine.
func (s *GRPCServer) Start() error {
	go func() {
		if err := s.server.Serve(s.listener); err != nil {
			s.logger.Error().Err(err).Msg("grpc server stopped")
		}
	}()
	s.logger.Info().Str("address", s.listener.Addr().String()).Msg("grpc server listening")
	return nil
}

// Stop gracefully stops the server.
func (s *GRPCServer) Stop() error {
	s.server.GracefulStop()
	return nil
}

func (s *GRPCServer) FindSuccessor(ctx context.Context, in *wire.FindSuccessorRequest) (*wire.FindSuccessorResponse, error) {
	successor, err := s.node.FindSuccessor(ctx, ring.IDFromBytes(in.Id))
	if err != nil {
		return nil, toGRPCError(err)
	}
	return &wire.FindSuccessorResponse{Successor: toWireNode(successor)}, nil
}

func (s *GRPCServer) FindClosestPrecedingFinger(ctx context.Context, in *wire.FindClosestPrecedingFingerRequest) (*wire.FindClosestPrecedingFingerResponse, error) {
	node := s.node.ClosestPrecedingFinger(ring.IDFromBytes(in.Id))
	return &wire.FindClosestPrecedingFingerResponse{Node: toWireNode(node)}, nil
}

func (s *GRPCServer) GetPredecessor(ctx context.Context, in *wire.GetPredecessorRequest) (*wire.GetPredecessorResponse, error) {
	pred := s.node.GetPredecessor()
	return &wire.GetPredecessorResponse{Predecessor: toWireNode(pred)}, nil
}

func (s *GRPCServer) GetSuccessorList(ctx context.Context, in *wire.GetSuccessorListRequest) (*wire.GetSuccessorListResponse, error) {
	successors := s.node.GetSuccessorList()
	out := make([]*wire.Node, len(successors))
	for i, n := range successors {
		out[i] = toWireNode(n)
	}
	return &wire.GetSuccessorListResponse{Successors: out}, nil
}

func (s *GRPCServer) Notify(in *wire.NotifyRequest, stream rpc.ChordService_NotifyServer) error {
	caller := fromWireNode(in.Node)
	if caller == nil || caller.IsNil() {
		return status.Error(codes.InvalidArgument, "notify: missing caller address")
	}
	token := fromWireToken(in.PowToken)

	pairs, err := s.node.Notify(stream.Context(), caller, token)
	if err != nil {
		if errors.Is(err, chord.ErrPermissionDenied) {
			return status.Error(codes.PermissionDenied, err.Error())
		}
		return toGRPCError(err)
	}
	for _, p := range pairs {
		if err := stream.Send(&wire.KvPair{Key: p.Key, Value: p.Value, ExpirationDate: p.Expiration}); err != nil {
			return err
		}
	}
	return nil
}

func (s *GRPCServer) FixFingers(ctx context.Context, in *wire.FixFingersRequest) (*wire.FixFingersResponse, error) {
	s.node.FixFingers(ctx)
	return &wire.FixFingersResponse{}, nil
}

func (s *GRPCServer) Stabilize(ctx context.Context, in *wire.StabilizeRequest) (*wire.StabilizeResponse, error) {
	if err := s.node.Stabilize(ctx); err != nil {
		return nil, toGRPCError(err)
	}
	return &wire.StabilizeResponse{}, nil
}

func (s *GRPCServer) Health(ctx context.Context, in *wire.HealthRequest) (*wire.HealthResponse, error) {
	if err := s.node.Health(); err != nil {
		return nil, toGRPCError(err)
	}
	return &wire.HealthResponse{}, nil
}

func (s *GRPCServer) Handoff(stream rpc.ChordService_HandoffServer) error {
	var pairs []store.Pair
	for {
		in, err := stream.Recv()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		pairs = append(pairs, store.Pair{Key: in.Key, Value: in.Value, Expiration: in.ExpirationDate})
	}
	s.node.HandleHandoff(pairs)
	return stream.SendAndClose(&wire.HandoffResponse{})
}

func (s *GRPCServer) Get(ctx context.Context, in *wire.GetRequest) (*wire.GetResponse, error) {
	value, st, err := s.node.Get(ctx, in.Key)
	if err != nil {
		return nil, toGRPCError(err)
	}
	return &wire.GetResponse{Value: value, Status: toWireStatus(st)}, nil
}

func (s *GRPCServer) Put(ctx context.Context, in *wire.PutRequest) (*wire.PutResponse, error) {
	if in.Replication == 0 {
		// Already-decremented fan-out write: store without
		// locating a primary or forwarding further.
		s.node.HandleReplicatedPut(in.Key, in.Value, time.Duration(in.TtlSeconds)*time.Second)
		return &wire.PutResponse{}, nil
	}
	if err := s.node.Put(ctx, in.Key, in.Value, time.Duration(in.TtlSeconds)*time.Second, int(in.Replication)); err != nil {
		return nil, toGRPCError(err)
	}
	return &wire.PutResponse{}, nil
}

func (s *GRPCServer) GetNodeSummary(ctx context.Context, in *wire.GetNodeSummaryRequest) (*wire.GetNodeSummaryResponse, error) {
	summary := s.node.GetNodeSummary()
	successors := make([]*wire.Node, len(summary.Successors))
	for i, n := range summary.Successors {
		successors[i] = toWireNode(n)
	}
	return &wire.GetNodeSummaryResponse{
		Self:        toWireNode(summary.Self),
		Predecessor: toWireNode(summary.Predecessor),
		Successors:  successors,
	}, nil
}

func (s *GRPCServer) GetKvStoreSize(ctx context.Context, in *wire.GetKvStoreSizeRequest) (*wire.GetKvStoreSizeResponse, error) {
	if !s.devMode {
		return nil, status.Error(codes.Unimplemented, "debug RPCs require dev_mode")
	}
	return &wire.GetKvStoreSizeResponse{Size: int64(s.node.GetKvStoreSize())}, nil
}

func (s *GRPCServer) GetKvStoreData(ctx context.Context, in *wire.GetKvStoreDataRequest) (*wire.GetKvStoreDataResponse, error) {
	if !s.devMode {
		return nil, status.Error(codes.Unimplemented, "debug RPCs require dev_mode")
	}
	pairs := s.node.GetKvStoreData()
	out := make([]*wire.KvPair, len(pairs))
	for i, p := range pairs {
		out[i] = &wire.KvPair{Key: p.Key, Value: p.Value, ExpirationDate: p.Expiration}
	}
	return &wire.GetKvStoreDataResponse{Pairs: out}, nil
}

func toWireToken(t *pow.Token) *wire.PowToken {
	if t == nil {
		return nil
	}
	return &wire.PowToken{Address: t.Address, Timestamp: t.Timestamp, Nonce: t.Nonce, Difficulty: int32(t.Difficulty)}
}

func fromWireToken(t *wire.PowToken) *pow.Token {
	if t == nil {
		return nil
	}
	return &pow.Token{Address: t.Address, Timestamp: t.Timestamp, Nonce: t.Nonce, Difficulty: int(t.Difficulty)}
}

func toWireStatus(s store.Status) wire.Status {
	switch s {
	case store.StatusOK:
		return wire.StatusOk
	case store.StatusExpired:
		return wire.StatusExpired
	default:
		return wire.StatusNotFound
	}
}

func toGRPCError(err error) error {
	switch {
	case errors.Is(err, chord.ErrTransport):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, chord.ErrRouting), errors.Is(err, chord.ErrUnroutable):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, chord.ErrConflict):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, chord.ErrPermissionDenied):
		return status.Error(codes.PermissionDenied, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
