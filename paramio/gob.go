package paramio

import (
	"encoding/gob"
	"fmt"
	"io"
	"time"

	"github.com/goliatone/go-params"
	"github.com/goliatone/go-params/pkg/units"
)

func init() {
	gob.Register(map[string]any{})
	gob.Register([]any{})
	gob.Register([]string{})
	gob.Register(map[string]string{})
	gob.Register(time.Time{})
	gob.Register(units.Quantity{})
	gob.Register(params.Kind(""))
}

// gobDocument is the wire form: gob cannot transmit nil interface values,
// so parameters holding nil travel by name.
type gobDocument struct {
	Values map[string]any
	Nulls  []string
}

// gobCodec keeps native value types across a round trip.
type gobCodec struct {
	documentKey string
}

func (gobCodec) Encode(w io.Writer, pairs params.Pairs) error {
	doc := gobDocument{Values: map[string]any{}}
	for _, pair := range pairs {
		if pair.Value == nil {
			doc.Nulls = append(doc.Nulls, pair.Name)
			continue
		}
		doc.Values[pair.Name] = pair.Value
	}
	return gob.NewEncoder(w).Encode(doc)
}

// Decode does no wrapper interpretation: values kept their native types,
// so a mapping holding a "value" key is just a mapping.
func (c gobCodec) Decode(r io.Reader) (Payload, error) {
	var doc gobDocument
	if err := gob.NewDecoder(r).Decode(&doc); err != nil {
		return Payload{}, err
	}

	values := make(map[string]any, len(doc.Values)+len(doc.Nulls))
	for name, value := range doc.Values {
		values[name] = value
	}
	for _, name := range doc.Nulls {
		values[name] = nil
	}

	if c.documentKey != "" {
		raw, ok := values[c.documentKey]
		if !ok {
			return Payload{}, fmt.Errorf("paramio: key %q not found in document", c.documentKey)
		}
		sub, ok := raw.(map[string]any)
		if !ok {
			return Payload{}, fmt.Errorf("paramio: key %q does not hold a parameter document", c.documentKey)
		}
		values = sub
	}
	return Payload{Pairs: params.PairsFromMap(values), Units: map[string]string{}}, nil
}
