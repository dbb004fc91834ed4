package params

import (
	"fmt"

	celgo "github.com/google/cel-go/cel"
	functions "github.com/google/cel-go/common/functions"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// CELTransformerOption configures the CEL transformer.
type CELTransformerOption func(*celTransformer)

// CELWithProgramCache wires a ProgramCache into the CEL transformer.
func CELWithProgramCache(cache ProgramCache) CELTransformerOption {
	return func(t *celTransformer) {
		t.cache = cache
	}
}

// CELWithFunctionRegistry wires a FunctionRegistry into the CEL transformer.
func CELWithFunctionRegistry(registry *FunctionRegistry) CELTransformerOption {
	return func(t *celTransformer) {
		if registry == nil {
			return
		}
		t.registry = registry.Clone()
	}
}

type celProgram struct {
	env     *celgo.Env
	program celgo.Program
}

type celTransformer struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewCELTransformer constructs a Transformer backed by cel-go.
func NewCELTransformer(opts ...CELTransformerOption) Transformer {
	t := &celTransformer{}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

func (t *celTransformer) Transform(ctx TransformContext, expression string) (any, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	ctx = ctx.withDefaultNow().withDefaultMaps()
	program, err := t.loadOrCompile(expression, compileConfig{})
	if err != nil {
		return nil, err
	}
	out, _, err := program.program.Eval(t.activation(ctx))
	if err != nil {
		return nil, err
	}
	return out.Value(), nil
}

func (t *celTransformer) Compile(expression string, opts ...CompileOption) (CompiledTransform, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	return &celCompiledTransform{
		transformer: t,
		expression:  expression,
		cfg:         applyCompileOptions(opts),
	}, nil
}

func (t *celTransformer) loadOrCompile(expression string, cfg compileConfig) (*celProgram, error) {
	if t.cache != nil {
		if cached, ok := t.cache.Get(expression); ok {
			if program, ok := cached.(*celProgram); ok {
				return program, nil
			}
		}
	}

	env, err := t.buildEnv()
	if err != nil {
		return nil, err
	}
	ast, issues := env.Parse(expression)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	if !cfg.parseOnly {
		checked, checkIssues := env.Check(ast)
		if checkIssues != nil && checkIssues.Err() != nil {
			return nil, checkIssues.Err()
		}
		ast = checked
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, err
	}

	bundle := &celProgram{
		env:     env,
		program: prg,
	}
	if t.cache != nil {
		t.cache.Set(expression, bundle)
	}
	return bundle, nil
}

// buildEnv declares the fixed binding set. Keeping the declarations static
// means a cached program stays valid no matter what the params snapshot
// holds.
func (t *celTransformer) buildEnv() (*celgo.Env, error) {
	opts := []celgo.EnvOption{
		celgo.Variable("name", celgo.StringType),
		celgo.Variable("value", celgo.DynType),
		celgo.Variable("now", celgo.TimestampType),
		celgo.Variable("args", celgo.DynType),
		celgo.Variable("params", celgo.DynType),
	}
	if t.registry != nil {
		// cel-go has no var-arg overload declarations, so declare one
		// overload per arity, all sharing the same variadic binding.
		const maxCallArgs = 8
		callOpts := make([]celgo.FunctionOpt, 0, maxCallArgs+1)
		argTypes := []*celgo.Type{celgo.StringType}
		for i := 0; i <= maxCallArgs; i++ {
			callOpts = append(callOpts, celgo.Overload(
				fmt.Sprintf("call_dyn_%d", i),
				append([]*celgo.Type(nil), argTypes...),
				celgo.DynType,
				celgo.FunctionBinding(t.callBinding()),
			))
			argTypes = append(argTypes, celgo.DynType)
		}
		opts = append(opts, celgo.Function("call", callOpts...))
	}
	return celgo.NewEnv(opts...)
}

func (t *celTransformer) activation(ctx TransformContext) map[string]any {
	activation := map[string]any{
		"name":   ctx.Name,
		"value":  ctx.Value,
		"now":    ctx.timestamp(),
		"args":   ctx.Args,
		"params": ctx.Params,
	}
	if t.registry != nil {
		activation["call"] = func(name string, arguments ...any) (any, error) {
			return t.registry.Call(name, arguments...)
		}
	}
	return activation
}

type celCompiledTransform struct {
	transformer *celTransformer
	expression  string
	cfg         compileConfig
}

func (r *celCompiledTransform) Transform(ctx TransformContext) (any, error) {
	if r.transformer == nil {
		return nil, fmt.Errorf("cel compiled transform missing transformer")
	}
	ctx = ctx.withDefaultNow().withDefaultMaps()
	program, err := r.transformer.loadOrCompile(r.expression, r.cfg)
	if err != nil {
		return nil, err
	}
	out, _, err := program.program.Eval(r.transformer.activation(ctx))
	if err != nil {
		return nil, err
	}
	return out.Value(), nil
}

func (t *celTransformer) callBinding() functions.FunctionOp {
	return func(values ...ref.Val) ref.Val {
		if t.registry == nil {
			return types.NewErr("params: function registry not configured")
		}
		if len(values) == 0 {
			return types.NewErr("params: call requires function name")
		}
		name, ok := values[0].Value().(string)
		if !ok {
			return types.NewErr("params: call name must be string")
		}
		args := make([]any, 0, len(values)-1)
		for _, val := range values[1:] {
			args = append(args, val.Value())
		}
		result, err := t.registry.Call(name, args...)
		if err != nil {
			return types.NewErr("%s", err.Error())
		}
		if result == nil {
			return types.NullValue
		}
		return types.DefaultTypeAdapter.NativeToValue(result)
	}
}
