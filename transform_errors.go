package params

import (
	"errors"
	"fmt"
	"strings"
)

// TransformError captures engine metadata alongside the originating error
// when a transform expression fails.
type TransformError struct {
	Engine string
	Expr   string
	Name   string
	Err    error
}

func (e *TransformError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("params: %s transform %s name=%q: %v", e.Engine, describeExpr(e.Expr), e.Name, e.Err)
}

func (e *TransformError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeExpr(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

func wrapTransformerError(engine string, err error) error {
	if err == nil {
		return nil
	}

	var transformErr *TransformError
	if errors.As(err, &transformErr) {
		return err
	}

	if strings.HasPrefix(err.Error(), "params:") {
		return err
	}
	return fmt.Errorf("params: %s transformer: %w", engine, err)
}

func wrapTransformError(engine, expr, name string, err error) error {
	if err == nil {
		return nil
	}

	var transformErr *TransformError
	if errors.As(err, &transformErr) {
		if transformErr.Engine == "" {
			transformErr.Engine = engine
		}
		if transformErr.Expr == "" {
			transformErr.Expr = expr
		}
		if transformErr.Name == "" {
			transformErr.Name = name
		}
		return transformErr
	}

	return &TransformError{
		Engine: engine,
		Expr:   expr,
		Name:   name,
		Err:    err,
	}
}
