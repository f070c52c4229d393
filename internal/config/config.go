// Package config holds the per-node configuration surface. There is no
// config-file loader: values arrive via flags (see cmd/ringd) or by
// constructing a Config directly in tests.
package config

import (
	"fmt"
	"time"
)

// Config holds every option a node recognizes.
type Config struct {
	// Host and Port together are p2p_address: the RPC bind address, and
	// the value hashed to derive this node's own Id.
	Host string
	Port int

	// BootstrapAddress is an existing ring member's "host:port" to join
	// through. Empty means create a new ring.
	BootstrapAddress string

	// PowDifficulty is the minimum number of leading zero bits this node
	// requires of a joiner's proof-of-work token.
	PowDifficulty int

	// DevMode relaxes proof-of-work (effective difficulty 0) and reduces
	// stabilization jitter, and enables the GetKvStoreSize and
	// GetKvStoreData debug RPCs.
	DevMode bool

	// ReplicationFactor is the default write fan-out N for Put.
	ReplicationFactor int

	// SuccessorListSize is R, the number of successors tracked for
	// failover and replication.
	SuccessorListSize int

	StabilizeInterval        time.Duration
	FixFingersInterval       time.Duration
	CheckPredecessorInterval time.Duration

	// RPCTimeout bounds every outbound unary call.
	RPCTimeout time.Duration

	// LookupTimeout bounds an entire FindSuccessor resolution end to end,
	// not per hop.
	LookupTimeout time.Duration

	// LookupRetries is the retry budget for a single find_successor call
	// after a transport failure.
	LookupRetries int

	LogLevel  string
	LogFormat string

	// AuthToken, when non-empty, is required as x-auth-token metadata on
	// every inbound unary RPC and attached to every outbound one, a
	// shared-secret layer on top of (not a substitute for) the PoW
	// admission gate. Empty disables it.
	AuthToken string
}

// Default returns the configuration used when no flags override it.
func Default() *Config {
	return &Config{
		Host:                     "127.0.0.1",
		Port:                     8470,
		PowDifficulty:            12,
		DevMode:                  false,
		ReplicationFactor:        3,
		SuccessorListSize:        4,
		StabilizeInterval:        500 * time.Millisecond,
		FixFingersInterval:       500 * time.Millisecond,
		CheckPredecessorInterval: time.Second,
		RPCTimeout:               2 * time.Second,
		LookupTimeout:            2 * time.Second,
		LookupRetries:            3,
		LogLevel:                 "info",
		LogFormat:                "console",
	}
}

// Validate rejects configurations the rest of the node can't safely run
// with.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("config: host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Port)
	}
	if c.SuccessorListSize < 1 {
		return fmt.Errorf("config: successor_list_size must be >= 1, got %d", c.SuccessorListSize)
	}
	if c.ReplicationFactor < 1 {
		return fmt.Errorf("config: replication_factor must be >= 1, got %d", c.ReplicationFactor)
	}
	if c.ReplicationFactor > c.SuccessorListSize+1 {
		return fmt.Errorf("config: replication_factor (%d) cannot exceed successor_list_size+1 (%d)", c.ReplicationFactor, c.SuccessorListSize+1)
	}
	if c.PowDifficulty < 0 {
		return fmt.Errorf("config: pow_difficulty cannot be negative")
	}
	if c.LookupRetries < 1 {
		return fmt.Errorf("config: lookup_retries must be >= 1, got %d", c.LookupRetries)
	}
	return nil
}

// Address returns the "host:port" dial string for this node.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// EffectivePowDifficulty returns the difficulty this node actually
// enforces, honoring dev_mode's relaxation.
func (c *Config) EffectivePowDifficulty() int {
	if c.DevMode {
		return 0
	}
	return c.PowDifficulty
}
