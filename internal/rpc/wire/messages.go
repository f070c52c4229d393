// Package wire defines the messages exchanged between ring nodes and the
// codec used to put them on the gRPC wire. No .proto file backs these types:
// they are plain Go structs carrying the field shapes peers agree on,
// marshaled with msgpack instead of protobuf (see codec.go).
package wire

// Node mirrors chord.NodeAddress on the wire: an identifier plus a dialable
// host:port.
type Node struct {
	Id   []byte
	Host string
	Port int32
}

// KvPair is one key-value entry as exchanged over the Notify handoff stream
// and the Handoff stream (voluntary departure and replica push).
type KvPair struct {
	Key            string
	Value          []byte
	ExpirationDate int64
}

// Status mirrors store.Status on the wire.
type Status int32

const (
	StatusNone Status = iota
	StatusOk
	StatusNotFound
	StatusExpired
)

type FindSuccessorRequest struct {
	Id []byte
}

type FindSuccessorResponse struct {
	Successor *Node
}

type FindClosestPrecedingFingerRequest struct {
	Id []byte
}

type FindClosestPrecedingFingerResponse struct {
	Node *Node
}

type GetPredecessorRequest struct{}

type GetPredecessorResponse struct {
	// Predecessor is nil when the node has no predecessor yet.
	Predecessor *Node
}

type GetSuccessorListRequest struct{}

type GetSuccessorListResponse struct {
	Successors []*Node
}

// NotifyRequest is sent by a node announcing itself as a candidate
// predecessor. PowToken is required on every call: the join and each
// stabilize-driven renotification mint a fresh token.
type NotifyRequest struct {
	Node     *Node
	PowToken *PowToken
}

// PowToken mirrors pow.Token on the wire.
type PowToken struct {
	Address    string
	Timestamp  int64
	Nonce      uint64
	Difficulty int32
}

// NotifyResponse is not carried by the Notify RPC, which streams the pairs
// the caller now owns as individual KvPair messages.
type NotifyResponse struct {
	Pairs []*KvPair
}

type FixFingersRequest struct{}

type FixFingersResponse struct{}

type StabilizeRequest struct{}

type StabilizeResponse struct{}

type HealthRequest struct{}

type HealthResponse struct{}

// HandoffRequest is not carried by the Handoff RPC, whose client stream
// sends individual KvPair messages.
type HandoffRequest struct {
	Pair *KvPair
}

type HandoffResponse struct{}

type GetRequest struct {
	Key string
}

type GetResponse struct {
	Value  []byte
	Status Status
}

type PutRequest struct {
	Key         string
	Value       []byte
	TtlSeconds  int64
	Replication int32
}

type PutResponse struct{}

type GetNodeSummaryRequest struct{}

type GetNodeSummaryResponse struct {
	Self        *Node
	Predecessor *Node
	Successors  []*Node
}

type GetKvStoreSizeRequest struct{}

type GetKvStoreSizeResponse struct {
	Size int64
}

// GetKvStoreDataRequest is only honored by nodes running with dev_mode
// enabled; it dumps the entire local store for debugging.
type GetKvStoreDataRequest struct{}

type GetKvStoreDataResponse struct {
	Pairs []*KvPair
}
