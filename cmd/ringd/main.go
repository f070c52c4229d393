// Command ringd runs a single Chord ring node: it binds the gRPC transport,
// creates or joins a ring, and serves until an interrupt or SIGTERM signal
// arrives.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jorvik-labs/ringd/internal/chord"
	"github.com/jorvik-labs/ringd/internal/config"
	"github.com/jorvik-labs/ringd/internal/logging"
	"github.com/jorvik-labs/ringd/internal/transport"
)

func main() {
	host := flag.String("host", "127.0.0.1", "host address to bind the gRPC server to")
	port := flag.Int("port", 8470, "port for the Chord gRPC server")
	bootstrap := flag.String("bootstrap", "", "address (host:port) of an existing ring member to join through")
	powDifficulty := flag.Int("pow-difficulty", 12, "minimum leading zero bits required of a joiner's proof-of-work token")
	devMode := flag.Bool("dev-mode", false, "relax proof-of-work and stabilization jitter, enable debug RPCs")
	replicationFactor := flag.Int("replication-factor", 3, "default write fan-out for Put")
	successorListSize := flag.Int("successor-list-size", 4, "number of successors tracked for failover and replication")
	stabilizeInterval := flag.Duration("stabilize-interval", 500*time.Millisecond, "interval between stabilize rounds")
	fixFingersInterval := flag.Duration("fix-fingers-interval", 500*time.Millisecond, "interval between fix_fingers rounds")
	checkPredecessorInterval := flag.Duration("check-predecessor-interval", time.Second, "interval between check_predecessor rounds")
	rpcTimeout := flag.Duration("rpc-timeout", 2*time.Second, "timeout for a single outbound RPC")
	lookupTimeout := flag.Duration("lookup-timeout", 2*time.Second, "timeout for an entire find_successor resolution")
	lookupRetries := flag.Int("lookup-retries", 3, "retry budget for find_successor after a transport failure")
	logLevel := flag.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	logFormat := flag.String("log-format", "console", "log format (json, console)")
	authToken := flag.String("auth-token", "", "shared secret required of every peer RPC; empty disables the check")
	flag.Parse()

	cfg := &config.Config{
		Host:                     *host,
		Port:                     *port,
		BootstrapAddress:         *bootstrap,
		PowDifficulty:            *powDifficulty,
		DevMode:                  *devMode,
		ReplicationFactor:        *replicationFactor,
		SuccessorListSize:        *successorListSize,
		StabilizeInterval:        *stabilizeInterval,
		FixFingersInterval:       *fixFingersInterval,
		CheckPredecessorInterval: *checkPredecessorInterval,
		RPCTimeout:               *rpcTimeout,
		LookupTimeout:            *lookupTimeout,
		LookupRetries:            *lookupRetries,
		LogLevel:                 *logLevel,
		LogFormat:                *logFormat,
		AuthToken:                *authToken,
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	loggerConfig := logging.DefaultConfig()
	loggerConfig.Level = *logLevel
	loggerConfig.Format = *logFormat
	logger, err := logging.New(loggerConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Bool("dev_mode", cfg.DevMode).
		Msg("starting ringd node")

	node, err := chord.New(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create chord node")
		os.Exit(1)
	}

	grpcServer, err := transport.NewGRPCServer(node, cfg.Address(), logger, cfg.DevMode, cfg.AuthToken)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create grpc server")
		os.Exit(1)
	}
	if err := grpcServer.Start(); err != nil {
		logger.Error().Err(err).Msg("failed to start grpc server")
		os.Exit(1)
	}

	grpcClient := transport.NewGRPCClient(logger, cfg.RPCTimeout, cfg.AuthToken)
	node.SetRemote(grpcClient)

	if cfg.BootstrapAddress == "" {
		logger.Info().Msg("no bootstrap address given, creating new ring")
		node.Create()
	} else {
		logger.Info().Str("bootstrap", cfg.BootstrapAddress).Msg("joining existing ring")
		bootstrapHost, bootstrapPort, err := splitHostPort(cfg.BootstrapAddress)
		if err != nil {
			logger.Error().Err(err).Msg("invalid bootstrap address")
			shutdown(node, grpcServer, grpcClient, logger)
			os.Exit(1)
		}
		ctx, cancel := context.WithTimeout(context.Background(), cfg.LookupTimeout)
		defer cancel()
		if err := node.Join(ctx, chord.AddressOf(bootstrapHost, bootstrapPort)); err != nil {
			logger.Error().Err(err).Msg("failed to join ring")
			shutdown(node, grpcServer, grpcClient, logger)
			os.Exit(1)
		}
	}

	logger.Info().Str("node_id", node.ID().Text(16)[:16]).Msg("ringd node is ready")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	shutdown(node, grpcServer, grpcClient, logger)
	logger.Info().Msg("ringd node shutdown complete")
}

func shutdown(node *chord.Node, server *transport.GRPCServer, client *transport.GRPCClient, logger *logging.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := node.Leave(ctx); err != nil {
		logger.Error().Err(err).Msg("error leaving ring gracefully")
	}
	node.Shutdown()
	if err := server.Stop(); err != nil {
		logger.Error().Err(err).Msg("error stopping grpc server")
	}
	if err := client.Close(); err != nil {
		logger.Error().Err(err).Msg("error closing grpc client")
	}
}

func splitHostPort(address string) (string, int, error) {
	var host string
	var port int
	n, err := fmt.Sscanf(address, "%[^:]:%d", &host, &port)
	if err != nil || n != 2 {
		return "", 0, fmt.Errorf("expected host:port, got %q", address)
	}
	return host, port, nil
}
