package paramio

import (
	"fmt"
	"io"

	"github.com/goliatone/go-params"
	"github.com/goliatone/go-params/internal/payload"
)

// Payload is a decoded parameter document: the pairs it holds, sorted by
// name, plus any units its wrapper entries declared.
type Payload struct {
	Pairs params.Pairs
	Units map[string]string
}

// Codec encodes and decodes parameter documents in one format.
type Codec interface {
	Encode(w io.Writer, pairs params.Pairs) error
	Decode(r io.Reader) (Payload, error)
}

type codecConfig struct {
	documentKey string
	rowForm     bool
	row         int
}

// CodecOption configures a codec.
type CodecOption func(*codecConfig)

// WithDocumentKey selects a sub-document before interpreting entries;
// document formats only.
func WithDocumentKey(key string) CodecOption {
	return func(cfg *codecConfig) {
		cfg.documentKey = key
	}
}

// WithRowForm switches CSV to the row-oriented layout.
func WithRowForm() CodecOption {
	return func(cfg *codecConfig) {
		cfg.rowForm = true
	}
}

// WithRow selects which data row a row-oriented CSV decode reads, counting
// from 1 below the header. Implies WithRowForm.
func WithRow(row int) CodecOption {
	return func(cfg *codecConfig) {
		cfg.rowForm = true
		cfg.row = row
	}
}

// CodecFor returns the codec for a format.
func CodecFor(format Format, opts ...CodecOption) (Codec, error) {
	cfg := codecConfig{row: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	switch format {
	case FormatCSV:
		if cfg.rowForm {
			return csvRowCodec{row: cfg.row}, nil
		}
		return csvCodec{}, nil
	case FormatCSVRow:
		return csvRowCodec{row: cfg.row}, nil
	case FormatJSON:
		return jsonCodec{documentKey: cfg.documentKey}, nil
	case FormatYAML:
		return yamlCodec{documentKey: cfg.documentKey}, nil
	case FormatGob:
		return gobCodec{documentKey: cfg.documentKey}, nil
	}
	return nil, &UnsupportedFormatError{Source: string(format)}
}

// documentPayload selects the optional sub-document, then unwraps entries
// into sorted pairs and declared units.
func documentPayload(doc map[string]any, key string) (Payload, error) {
	if key != "" {
		raw, ok := doc[key]
		if !ok {
			return Payload{}, fmt.Errorf("paramio: key %q not found in document", key)
		}
		sub, ok := raw.(map[string]any)
		if !ok {
			return Payload{}, fmt.Errorf("paramio: key %q does not hold a parameter document", key)
		}
		doc = sub
	}
	values, units := payload.Unwrap(doc)
	return Payload{Pairs: params.PairsFromMap(values), Units: units}, nil
}
