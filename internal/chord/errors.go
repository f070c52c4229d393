package chord

import "errors"

// Error taxonomy shared across the engine. Transport is recovered at the
// routing layer when
// possible; the rest surface to the caller.
var (
	// ErrTransport means a peer was unreachable, timed out, or reset the
	// connection. Callers should invalidate any cached route through that
	// peer and retry along an alternate path.
	ErrTransport = errors.New("chord: transport failure")
	// ErrRouting means Get resolved the key's primary but could not reach
	// it over the transport; the caller may retry later.
	ErrRouting = errors.New("chord: routing failed")
	// ErrPermissionDenied means a PoW token failed validation.
	ErrPermissionDenied = errors.New("chord: permission denied")
	// ErrConflict means a joining address hashes to an Id already present
	// on the ring; fatal to the joiner.
	ErrConflict = errors.New("chord: address collides with existing node")
	// ErrInvariant means an internal inconsistency was detected (e.g. an
	// empty successor list persisting despite a live predecessor).
	ErrInvariant = errors.New("chord: invariant violation")
	// ErrUnroutable is returned by FindSuccessor when no route could be
	// established within the retry budget for transport failures.
	ErrUnroutable = errors.New("chord: unroutable")
)
