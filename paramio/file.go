package paramio

import (
	"os"

	"github.com/goliatone/go-params"
	"github.com/goliatone/go-params/pkg/units"
)

// WriteFile writes pairs to path in the format its extension names.
func WriteFile(path string, pairs params.Pairs, opts ...CodecOption) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	codec, err := CodecFor(format, opts...)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := codec.Encode(f, pairs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads a parameter payload from path in the format its extension
// names.
func ReadFile(path string, opts ...CodecOption) (Payload, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return Payload{}, err
	}
	codec, err := CodecFor(format, opts...)
	if err != nil {
		return Payload{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Payload{}, err
	}
	defer f.Close()
	return codec.Decode(f)
}

// Save writes a store's parameters, or the named subset, to path.
func Save(store *params.Store, path string, names ...string) error {
	return WriteFile(path, store.Export(names...))
}

type loadConfig struct {
	units *units.Coercer
	codec []CodecOption
}

// LoadOption configures Load.
type LoadOption func(*loadConfig)

// LoadWithUnits registers units declared by the payload on coercer before
// any value lands in the store.
func LoadWithUnits(coercer *units.Coercer) LoadOption {
	return func(cfg *loadConfig) {
		cfg.units = coercer
	}
}

// LoadWithDocumentKey selects a sub-document before loading.
func LoadWithDocumentKey(key string) LoadOption {
	return func(cfg *loadConfig) {
		cfg.codec = append(cfg.codec, WithDocumentKey(key))
	}
}

// LoadWithRow reads the row-oriented CSV layout, taking the given data row.
func LoadWithRow(row int) LoadOption {
	return func(cfg *loadConfig) {
		cfg.codec = append(cfg.codec, WithRow(row))
	}
}

// Load reads path and routes every pair through the store's Add, so loaded
// values face the same coercion and bookkeeping as any other mutation.
func Load(store *params.Store, path string, opts ...LoadOption) error {
	var cfg loadConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	payload, err := ReadFile(path, cfg.codec...)
	if err != nil {
		return err
	}
	if cfg.units != nil {
		for name, unit := range payload.Units {
			cfg.units.SetUnit(name, unit)
		}
	}
	store.Add(payload.Pairs...)
	return nil
}
