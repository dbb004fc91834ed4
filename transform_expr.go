package params

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// ExprTransformerOption configures an expr transformer instance.
type ExprTransformerOption func(*exprTransformer)

// ExprWithProgramCache wires a ProgramCache into the expr transformer.
func ExprWithProgramCache(cache ProgramCache) ExprTransformerOption {
	return func(t *exprTransformer) {
		t.cache = cache
	}
}

// ExprWithFunctionRegistry wires a FunctionRegistry into the expr
// transformer.
func ExprWithFunctionRegistry(registry *FunctionRegistry) ExprTransformerOption {
	return func(t *exprTransformer) {
		if registry == nil {
			return
		}
		t.registry = registry.Clone()
	}
}

// exprTransformer executes transform expressions using
// github.com/expr-lang/expr.
type exprTransformer struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewExprTransformer constructs a Transformer backed by expr-lang/expr.
func NewExprTransformer(opts ...ExprTransformerOption) Transformer {
	t := &exprTransformer{}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Transform compiles and runs expression against the context bindings.
func (t *exprTransformer) Transform(ctx TransformContext, expression string) (any, error) {
	if expression == "" {
		return nil, wrapTransformerError("expr", fmt.Errorf("expression must not be empty"))
	}
	ctx = ctx.withDefaultNow().withDefaultMaps()
	env := t.environment(ctx)
	if t.cache == nil {
		result, err := exprlang.Eval(expression, env)
		if err != nil {
			return nil, wrapTransformError("expr", expression, ctx.Name, err)
		}
		return result, nil
	}
	program, err := t.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	result, err := exprlang.Run(program, env)
	if err != nil {
		return nil, wrapTransformError("expr", expression, ctx.Name, err)
	}
	return result, nil
}

// Compile returns a compiled transform that evaluates expression per
// invocation.
func (t *exprTransformer) Compile(expression string, _ ...CompileOption) (CompiledTransform, error) {
	if expression == "" {
		return nil, wrapTransformerError("expr", fmt.Errorf("expression must not be empty"))
	}
	program, err := t.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return &exprCompiledTransform{
		transformer: t,
		program:     program,
		expression:  expression,
	}, nil
}

func (t *exprTransformer) loadOrCompile(expression string) (*exprvm.Program, error) {
	if t.cache != nil {
		if cached, ok := t.cache.Get(expression); ok {
			if program, ok := cached.(*exprvm.Program); ok {
				return program, nil
			}
		}
	}
	options := []exprlang.Option{
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	}
	for _, name := range t.registryNames() {
		fn := t.registryFunction(name)
		options = append(options, exprlang.Function(name, fn))
	}
	program, err := exprlang.Compile(expression, options...)
	if err != nil {
		return nil, wrapTransformError("expr", expression, "", err)
	}
	if t.cache != nil {
		t.cache.Set(expression, program)
	}
	return program, nil
}

type exprCompiledTransform struct {
	transformer *exprTransformer
	program     *exprvm.Program
	expression  string
}

func (r *exprCompiledTransform) Transform(ctx TransformContext) (any, error) {
	if r.transformer == nil {
		return nil, wrapTransformerError("expr", fmt.Errorf("compiled transform missing transformer"))
	}
	ctx = ctx.withDefaultNow().withDefaultMaps()
	if r.program == nil {
		return r.transformer.Transform(ctx, r.expression)
	}
	env := r.transformer.environment(ctx)
	result, err := exprlang.Run(r.program, env)
	if err != nil {
		return nil, wrapTransformError("expr", r.expression, ctx.Name, err)
	}
	return result, nil
}

func (t *exprTransformer) environment(ctx TransformContext) map[string]any {
	env := map[string]any{
		"name":   ctx.Name,
		"value":  ctx.Value,
		"now":    ctx.timestamp(),
		"args":   ctx.Args,
		"params": ctx.Params,
	}
	if t.registry != nil {
		env["call"] = func(name string, arguments ...any) (any, error) {
			return t.registry.Call(name, arguments...)
		}
		for _, name := range t.registry.Names() {
			fn := name
			env[fn] = func(arguments ...any) (any, error) {
				return t.registry.Call(fn, arguments...)
			}
		}
	}
	return env
}

func (t *exprTransformer) registryNames() []string {
	if t == nil || t.registry == nil {
		return nil
	}
	return t.registry.Names()
}

func (t *exprTransformer) registryFunction(name string) func(...any) (any, error) {
	if t == nil || t.registry == nil {
		return nil
	}
	return func(arguments ...any) (any, error) {
		return t.registry.Call(name, arguments...)
	}
}
