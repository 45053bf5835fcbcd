// Package stormcodec resolves the codec used to store records in a Storm database.
package stormcodec

import (
	"bytes"
	"reflect"
	"strings"

	scodec "github.com/asdine/storm/v3/codec"
	"github.com/asdine/storm/v3/codec/json"
	"github.com/asdine/storm/v3/codec/msgpack"
	"github.com/pkg/errors"
	"github.com/ugorji/go/codec"
)

var (
	// CBOR encodes to and decodes from Concise Binary Object Representation.
	// https://tools.ietf.org/html/rfc7049
	CBOR scodec.MarshalUnmarshaler = &ugorji{name: "cbor", handle: cborHandle()}
	// Binc encodes to and decodes from Binc.
	// https://github.com/ugorji/binc
	Binc scodec.MarshalUnmarshaler = &ugorji{name: "binc", handle: bincHandle()}

	// Nested maps are decoded as map[string]any so records stay JSON serializable.
	mapType = reflect.TypeOf(map[string]any(nil))
)

func cborHandle() codec.Handle {
	h := &codec.CborHandle{}
	h.MapType = mapType
	return h
}

func bincHandle() codec.Handle {
	h := &codec.BincHandle{}
	h.MapType = mapType
	return h
}

// ByName returns the codec registered under the given name.
// An empty name returns the default codec (msgpack).
func ByName(name string) (scodec.MarshalUnmarshaler, error) {
	switch strings.ToLower(name) {
	case "", msgpack.Codec.Name():
		return msgpack.Codec, nil
	case json.Codec.Name():
		return json.Codec, nil
	case CBOR.Name():
		return CBOR, nil
	case Binc.Name():
		return Binc, nil
	default:
		return nil, errors.Errorf("unknown storm codec: %s", name)
	}
}

type ugorji struct {
	name   string
	handle codec.Handle
}

func (c *ugorji) Marshal(v any) ([]byte, error) {
	var b bytes.Buffer
	if err := codec.NewEncoder(&b, c.handle).Encode(v); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (c *ugorji) Unmarshal(b []byte, v any) error {
	return codec.NewDecoder(bytes.NewReader(b), c.handle).Decode(v)
}

func (c *ugorji) Name() string {
	return c.name
}
