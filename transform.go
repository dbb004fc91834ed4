package params

import (
	"fmt"
	"time"
)

// TransformContext carries the inputs a value-transform expression sees.
type TransformContext struct {
	// Name is the parameter being coerced.
	Name string
	// Value is the raw incoming value.
	Value any
	// Now pins the evaluation timestamp; nil means time.Now at evaluation.
	Now *time.Time
	// Args carries caller-supplied bindings.
	Args map[string]any
	// Params exposes current parameter values when the rule coercer was
	// given a snapshot source.
	Params map[string]any
}

func (ctx TransformContext) withDefaultNow() TransformContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx TransformContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx TransformContext) withDefaultMaps() TransformContext {
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Params == nil {
		ctx.Params = map[string]any{}
	}
	return ctx
}

// Transformer executes value-transform expressions against a context.
type Transformer interface {
	Transform(ctx TransformContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledTransform, error)
}

// CompiledTransform represents a reusable expression program.
type CompiledTransform interface {
	Transform(ctx TransformContext) (any, error)
}

// CompileOption configures transformer compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct {
	parseOnly bool
}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}

// CompileParseOnly skips static type checking where the engine supports it
// (the CEL engine), trading early diagnostics for compile speed.
func CompileParseOnly() CompileOption {
	return compileOptionFunc(func(cfg *compileConfig) {
		cfg.parseOnly = true
	})
}

func applyCompileOptions(opts []CompileOption) compileConfig {
	cfg := compileConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt.applyCompileOption(&cfg)
		}
	}
	return cfg
}

// RuleCoercer is a Coercer driven by per-name transform expressions. Names
// without a rule pass through untouched. Expressions see `name`, `value`,
// `now`, `args`, and `params` bindings plus any registered functions, and
// run on a pluggable engine (expr by default).
type RuleCoercer struct {
	engine   Transformer
	rules    map[string]string
	fallback string
	logger   TransformLogger
	snapshot func() map[string]any
	cache    ProgramCache
	registry *FunctionRegistry
}

// RuleCoercerOption configures a RuleCoercer.
type RuleCoercerOption func(*RuleCoercer)

// RuleWithEngine selects the expression engine. Without it the coercer lazily
// builds an expr engine wired to the configured cache and registry.
func RuleWithEngine(engine Transformer) RuleCoercerOption {
	return func(rc *RuleCoercer) {
		rc.engine = engine
	}
}

// RuleWithRule binds an expression to a parameter name.
func RuleWithRule(name, expr string) RuleCoercerOption {
	return func(rc *RuleCoercer) {
		rc.rules[name] = expr
	}
}

// RuleWithFallback binds an expression applied to every name that has no
// dedicated rule.
func RuleWithFallback(expr string) RuleCoercerOption {
	return func(rc *RuleCoercer) {
		rc.fallback = expr
	}
}

// RuleWithLogger records every transform attempt.
func RuleWithLogger(logger TransformLogger) RuleCoercerOption {
	return func(rc *RuleCoercer) {
		rc.logger = logger
	}
}

// RuleWithSnapshot supplies the `params` binding, typically a closure over a
// store's Export.
func RuleWithSnapshot(source func() map[string]any) RuleCoercerOption {
	return func(rc *RuleCoercer) {
		rc.snapshot = source
	}
}

// RuleWithProgramCache wires a compiled-program cache into the default
// engine.
func RuleWithProgramCache(cache ProgramCache) RuleCoercerOption {
	return func(rc *RuleCoercer) {
		rc.cache = cache
	}
}

// RuleWithFunctions exposes the registry's functions to rule expressions.
func RuleWithFunctions(registry *FunctionRegistry) RuleCoercerOption {
	return func(rc *RuleCoercer) {
		if registry == nil {
			return
		}
		rc.registry = registry.Clone()
	}
}

// RuleWithFunction registers a single function for rule expressions.
func RuleWithFunction(name string, fn Function) RuleCoercerOption {
	return func(rc *RuleCoercer) {
		if rc.registry == nil {
			rc.registry = NewFunctionRegistry()
		}
		_ = rc.registry.Register(name, fn)
	}
}

// NewRuleCoercer constructs a rule-driven coercer.
func NewRuleCoercer(opts ...RuleCoercerOption) *RuleCoercer {
	rc := &RuleCoercer{rules: map[string]string{}}
	for _, opt := range opts {
		if opt != nil {
			opt(rc)
		}
	}
	return rc
}

// Coerce evaluates the rule registered for name, timing and logging the
// attempt. Failures come back as TransformError with the raw value intact so
// the store can fall back to it.
func (rc *RuleCoercer) Coerce(name string, raw any) (CoerceResult, error) {
	expr, ok := rc.ruleFor(name)
	if !ok {
		return CoerceResult{Value: raw}, nil
	}

	engine := rc.resolveEngine()
	ctx := TransformContext{Name: name, Value: raw}
	if rc.snapshot != nil {
		ctx.Params = rc.snapshot()
	}
	ctx = ctx.withDefaultNow().withDefaultMaps()

	engineName := transformerEngineName(engine)
	start := time.Now()
	value, err := engine.Transform(ctx, expr)
	duration := time.Since(start)
	err = wrapTransformError(engineName, expr, name, err)
	rc.transformLogger().LogTransform(TransformLogEvent{
		Engine:   engineName,
		Expr:     expr,
		Name:     name,
		Duration: duration,
		Err:      err,
	})
	if err != nil {
		return CoerceResult{Value: raw}, err
	}
	return CoerceResult{Value: value, Desc: "rule: " + expr}, nil
}

func (rc *RuleCoercer) ruleFor(name string) (string, bool) {
	if expr, ok := rc.rules[name]; ok {
		return expr, true
	}
	if rc.fallback != "" {
		return rc.fallback, true
	}
	return "", false
}

func (rc *RuleCoercer) resolveEngine() Transformer {
	if rc.engine != nil {
		return rc.engine
	}
	var exprOpts []ExprTransformerOption
	if rc.cache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(rc.cache))
	}
	if rc.registry != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(rc.registry))
	}
	rc.engine = NewExprTransformer(exprOpts...)
	return rc.engine
}

func (rc *RuleCoercer) transformLogger() TransformLogger {
	if rc.logger != nil {
		return rc.logger
	}
	return noopTransformLogger{}
}

func transformerEngineName(t Transformer) string {
	if t == nil {
		return "unknown"
	}
	switch fmt.Sprintf("%T", t) {
	case "*params.exprTransformer":
		return "expr"
	case "*params.celTransformer":
		return "cel"
	case "*params.jsTransformer":
		return "js"
	default:
		return "custom"
	}
}
