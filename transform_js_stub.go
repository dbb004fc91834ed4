//go:build !js_transform

package params

// NewJSTransformer is unavailable without the js_transform build tag.
func NewJSTransformer(opts ...JSTransformerOption) Transformer {
	_ = applyJSTransformerOptions(opts)
	return nil
}

// JSTransformerAvailable reports whether the goja engine was built in.
func JSTransformerAvailable() bool {
	return false
}
