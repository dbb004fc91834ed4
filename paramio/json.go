package paramio

import (
	"encoding/json"
	"io"

	"github.com/goliatone/go-params"
	"github.com/goliatone/go-params/internal/payload"
)

// jsonCodec writes an indented JSON document keyed by parameter name.
type jsonCodec struct {
	documentKey string
}

func (jsonCodec) Encode(w io.Writer, pairs params.Pairs) error {
	doc := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		doc[pair.Name] = payload.Sanitize(pair.Value)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func (c jsonCodec) Decode(r io.Reader) (Payload, error) {
	var doc map[string]any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Payload{}, err
	}
	return documentPayload(doc, c.documentKey)
}
