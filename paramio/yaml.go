package paramio

import (
	"io"

	"github.com/goliatone/go-params"
	"github.com/goliatone/go-params/internal/payload"
	"gopkg.in/yaml.v3"
)

// yamlCodec writes a YAML document keyed by parameter name.
type yamlCodec struct {
	documentKey string
}

func (yamlCodec) Encode(w io.Writer, pairs params.Pairs) error {
	doc := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		doc[pair.Name] = payload.Sanitize(pair.Value)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func (c yamlCodec) Decode(r io.Reader) (Payload, error) {
	var doc map[string]any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return Payload{}, err
	}
	return documentPayload(doc, c.documentKey)
}
