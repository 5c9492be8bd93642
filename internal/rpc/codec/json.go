// Package codec registers a JSON codec with gRPC so services can exchange
// plain Go structs without a protoc build step.
//
// Clients opt in per call with grpc.CallContentSubtype(codec.Name); servers
// pick the codec automatically from the request content-type
// (application/grpc+json).
package codec

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// Name is the content-subtype the codec is registered under.
const Name = "json"

func init() {
	encoding.RegisterCodec(JSON{})
}

// JSON implements encoding.Codec using encoding/json.
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("codec: marshal %T: %w", v, err)
	}
	return b, nil
}

func (JSON) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("codec: unmarshal %T: %w", v, err)
	}
	return nil
}

func (JSON) Name() string { return Name }
