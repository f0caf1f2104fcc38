package cavia

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

var (
	contextType = reflect.TypeFor[context.Context]()
	errorType   = reflect.TypeFor[error]()
)

// Type is a constructible type: a named constructor whose parameters are
// the dependencies of the value it builds. A *Type is both a Token and a
// Provider (a type provider registers the constructed value under the type
// itself).
//
// The constructor is a function of the form
//
//	func([ctx context.Context,] deps...) T
//	func([ctx context.Context,] deps...) (T, error)
//
// The leading context, when present, is the resolution context and is not a
// dependency.
type Type struct {
	name string
	fn   *funcInfo
}

// NewType creates a constructible type.
//
// Example:
//
//	CarType, err := cavia.NewType("Car", func(engine string) *Car {
//	    return &Car{Engine: engine}
//	})
func NewType(name string, ctor any) (*Type, error) {
	if name == "" {
		return nil, errors.New("type name cannot be empty")
	}

	info, err := analyzeFunc(ctor)
	if err != nil {
		return nil, fmt.Errorf("type %s: %w", name, err)
	}

	return &Type{name: name, fn: info}, nil
}

// MustType is like NewType but panics on error. Use for package-level declarations.
func MustType(name string, ctor any) *Type {
	t, err := NewType(name, ctor)
	if err != nil {
		panic(err)
	}

	return t
}

// Name returns the type name.
func (t *Type) Name() string {
	if t == nil {
		return "<nil>"
	}

	return t.name
}

// TokenName implements Token.
func (t *Type) TokenName() string {
	return t.Name()
}

// ProviderToken implements Provider: a type is registered under itself.
func (t *Type) ProviderToken() Token {
	return t
}

// NumParams returns the number of dependencies the constructor takes.
func (t *Type) NumParams() int {
	return len(t.fn.params)
}

// ParamType returns the Go type of the i-th dependency.
func (t *Type) ParamType(i int) reflect.Type {
	return t.fn.params[i]
}

// Out returns the Go type the constructor produces.
func (t *Type) Out() reflect.Type {
	return t.fn.out
}

// construct invokes the constructor with resolved dependencies.
func (t *Type) construct(ctx context.Context, args []any) (any, error) {
	value, err := t.fn.call(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("construct %s: %w", t.name, err)
	}

	return value, nil
}

// funcInfo holds the analysed signature of a constructor or typed factory.
type funcInfo struct {
	fn       reflect.Value
	params   []reflect.Type
	out      reflect.Type
	withCtx  bool
	hasError bool
}

// analyzeFunc inspects fn and extracts its dependency and result shape.
func analyzeFunc(fn any) (*funcInfo, error) {
	if fn == nil {
		return nil, errors.New("constructor cannot be nil")
	}

	fnValue := reflect.ValueOf(fn)
	fnType := fnValue.Type()

	if fnType.Kind() != reflect.Func {
		return nil, fmt.Errorf("constructor must be a function, got %T", fn)
	}

	if fnValue.IsNil() {
		return nil, errors.New("constructor cannot be nil")
	}

	if fnType.IsVariadic() {
		return nil, errors.New("constructor cannot be variadic")
	}

	info := &funcInfo{fn: fnValue}

	for i := 0; i < fnType.NumIn(); i++ {
		in := fnType.In(i)
		if i == 0 && in == contextType {
			info.withCtx = true

			continue
		}

		info.params = append(info.params, in)
	}

	switch fnType.NumOut() {
	case 1:
	case 2:
		if fnType.Out(1) != errorType {
			return nil, errors.New("error must be the last return value")
		}

		info.hasError = true
	default:
		return nil, fmt.Errorf("constructor must return (T) or (T, error), got %d return values", fnType.NumOut())
	}

	if fnType.Out(0) == errorType {
		return nil, errors.New("constructor must return a non-error value")
	}

	info.out = fnType.Out(0)

	return info, nil
}

// call invokes the function. Nil arguments (missing optional dependencies)
// become the zero value of the parameter type.
func (f *funcInfo) call(ctx context.Context, deps []any) (any, error) {
	if len(deps) != len(f.params) {
		return nil, fmt.Errorf("expects %d parameters, got %d dependencies", len(f.params), len(deps))
	}

	args := make([]reflect.Value, 0, len(deps)+1)
	if f.withCtx {
		args = append(args, reflect.ValueOf(&ctx).Elem())
	}

	for i, dep := range deps {
		paramType := f.params[i]

		if dep == nil {
			args = append(args, reflect.Zero(paramType))

			continue
		}

		v := reflect.ValueOf(dep)
		if !v.Type().AssignableTo(paramType) {
			return nil, fmt.Errorf("parameter %d: %s is not assignable to %s", i, v.Type(), paramType)
		}

		args = append(args, v)
	}

	results := f.fn.Call(args)

	if f.hasError && !results[1].IsNil() {
		return nil, results[1].Interface().(error)
	}

	return results[0].Interface(), nil
}
