package wire

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/grpc/encoding"
)

// codecName matches grpc-go's built-in codec name so the content-subtype
// negotiated on the wire stays the default one. Both ends of every
// connection force this codec explicitly (grpc.ForceServerCodec /
// grpc.ForceCodec), so the name is cosmetic rather than load-bearing.
const codecName = "proto"

func init() {
	encoding.RegisterCodec(Codec{})
}

// Codec marshals the plain structs of this package with msgpack. There is
// no .proto file or generated descriptor behind these messages; this is
// the only marshaler they ever see.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	b, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("wire: marshal: %w", err)
	}
	return b, nil
}

func (Codec) Unmarshal(data []byte, v any) error {
	if err := msgpack.Unmarshal(data, v); err != nil {
		return fmt.Errorf("wire: unmarshal: %w", err)
	}
	return nil
}

func (Codec) Name() string {
	return codecName
}
