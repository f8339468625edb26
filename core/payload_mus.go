package core

import (
	"encoding/json"

	"github.com/mus-format/mus-go/ord"
)

// PayloadMUS serializes opaque payloads as a JSON string inside the MUS
// stream. Payloads are producer-defined, so JSON is the only stable
// representation; a nil payload round-trips as nil.
//
// Registered with the generator in cmd/musgen.
var PayloadMUS = payloadMUS{}

type payloadMUS struct{}

func (payloadMUS) Marshal(p Payload, bs []byte) (n int) {
	return ord.String.Marshal(payloadJSON(p), bs)
}

func (payloadMUS) Unmarshal(bs []byte) (p Payload, n int, err error) {
	s, n, err := ord.String.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if s == "" || s == "null" {
		return nil, n, nil
	}
	if err = json.Unmarshal([]byte(s), &p); err != nil {
		return nil, n, err
	}
	return p, n, nil
}

func (payloadMUS) Size(p Payload) (size int) {
	return ord.String.Size(payloadJSON(p))
}

func (payloadMUS) Skip(bs []byte) (n int, err error) {
	return ord.String.Skip(bs)
}

func payloadJSON(p Payload) string {
	if p == nil {
		return "null"
	}
	data, err := json.Marshal(p)
	if err != nil {
		// Payload values come from parsed JSON input, so this only
		// triggers on a programming error upstream.
		return "null"
	}
	return string(data)
}
