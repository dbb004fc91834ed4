//go:build js_transform

package params

import (
	"fmt"

	"github.com/dop251/goja"
)

type jsTransformer struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewJSTransformer constructs a Transformer backed by goja.
func NewJSTransformer(opts ...JSTransformerOption) Transformer {
	cfg := applyJSTransformerOptions(opts)
	return &jsTransformer{
		cache:    cfg.cache,
		registry: cfg.registry,
	}
}

func (t *jsTransformer) Transform(ctx TransformContext, expression string) (any, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	ctx = ctx.withDefaultNow().withDefaultMaps()
	if t.cache == nil {
		return t.run(ctx, expression, nil)
	}
	program, err := t.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return t.run(ctx, expression, program)
}

func (t *jsTransformer) Compile(expression string, _ ...CompileOption) (CompiledTransform, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	program, err := t.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return &jsCompiledTransform{
		transformer: t,
		expression:  expression,
		program:     program,
	}, nil
}

func (t *jsTransformer) loadOrCompile(expression string) (*goja.Program, error) {
	if t.cache != nil {
		if cached, ok := t.cache.Get(expression); ok {
			if program, ok := cached.(*goja.Program); ok {
				return program, nil
			}
		}
	}
	program, err := goja.Compile("", t.wrapExpression(expression), false)
	if err != nil {
		return nil, err
	}
	if t.cache != nil {
		t.cache.Set(expression, program)
	}
	return program, nil
}

func (t *jsTransformer) run(ctx TransformContext, expression string, program *goja.Program) (any, error) {
	vm := goja.New()
	t.injectContext(vm, ctx)
	if program != nil {
		value, err := vm.RunProgram(program)
		if err != nil {
			return nil, err
		}
		return value.Export(), nil
	}
	value, err := vm.RunString(t.wrapExpression(expression))
	if err != nil {
		return nil, err
	}
	return value.Export(), nil
}

func (t *jsTransformer) injectContext(vm *goja.Runtime, ctx TransformContext) {
	vm.Set("name", ctx.Name)
	vm.Set("value", ctx.Value)
	vm.Set("now", ctx.timestamp())
	vm.Set("args", ctx.Args)
	vm.Set("params", ctx.Params)
	if t.registry != nil {
		vm.Set("call", func(name string, arguments ...any) (any, error) {
			return t.registry.Call(name, arguments...)
		})
		for _, name := range t.registry.Names() {
			fn := name
			vm.Set(fn, func(arguments ...any) (any, error) {
				return t.registry.Call(fn, arguments...)
			})
		}
	}
}

func (t *jsTransformer) wrapExpression(expression string) string {
	return fmt.Sprintf("(function(){ return (%s); })()", expression)
}

type jsCompiledTransform struct {
	transformer *jsTransformer
	expression  string
	program     *goja.Program
}

func (r *jsCompiledTransform) Transform(ctx TransformContext) (any, error) {
	if r.transformer == nil {
		return nil, fmt.Errorf("js compiled transform missing transformer")
	}
	ctx = ctx.withDefaultNow().withDefaultMaps()
	return r.transformer.run(ctx, r.expression, r.program)
}

// JSTransformerAvailable reports whether the goja engine was built in.
func JSTransformerAvailable() bool {
	return true
}
