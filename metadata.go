package cavia

import (
	"maps"
	"reflect"
	"slices"
	"sync"
)

// Package is a named bundle of providers imported by an application.
type Package struct {
	Name      string
	Providers []Provider
}

// ApplicationMetadata marks a type as a composition root.
type ApplicationMetadata struct {
	Packages  []Package
	Providers []Provider
}

// MetadataAccessor answers what the engine needs to know about a
// constructible type: whether it may be injected, the tokens of its
// constructor parameters, per-parameter overrides and optionality, and
// whether it is a composition root.
type MetadataAccessor interface {
	// IsInjectable reports whether t may have its dependencies introspected.
	IsInjectable(t *Type) bool

	// ParamTokens returns the token of each constructor parameter, in order.
	// A nil entry means the token could not be determined.
	ParamTokens(t *Type) []Token

	// InjectOverrides maps parameter index to the token injected in place of
	// the inferred one. Values may be deferred (*Forward).
	InjectOverrides(t *Type) map[int]Token

	// OptionalParams reports which parameter indices are optional.
	OptionalParams(t *Type) map[int]bool

	// HasApplicationMetadata reports whether t is a composition root.
	HasApplicationMetadata(t *Type) bool

	// ApplicationMetadata returns the packages and providers of a composition root.
	ApplicationMetadata(t *Type) ApplicationMetadata
}

// typeMetadata holds what has been declared about one type.
type typeMetadata struct {
	injectable bool
	params     []Token
	overrides  map[int]Token
	optional   map[int]bool
	app        *ApplicationMetadata
}

// Registry is a MetadataAccessor backed by a lookup table that is filled
// by explicit declarations.
//
// Example:
//
//	reg := cavia.NewRegistry()
//	reg.Injectable(CarType).
//	    Inject(CarType, 0, cavia.String("engine")).
//	    Optional(CarType, 1)
type Registry struct {
	types    map[*Type]*typeMetadata
	byGoType map[reflect.Type]*Type
	mu       sync.RWMutex
}

var _ MetadataAccessor = (*Registry)(nil)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types:    make(map[*Type]*typeMetadata),
		byGoType: make(map[reflect.Type]*Type),
	}
}

// entry returns the metadata of t, creating it when absent. Callers hold r.mu.
func (r *Registry) entry(t *Type) *typeMetadata {
	meta, ok := r.types[t]
	if !ok {
		meta = &typeMetadata{
			overrides: make(map[int]Token),
			optional:  make(map[int]bool),
		}
		r.types[t] = meta
	}

	return meta
}

// Injectable marks t as injectable. Explicit params give the tokens of the
// leading constructor parameters; the remaining ones are inferred from the
// constructor signature when the tokens are requested: a parameter whose Go
// type is produced by an injectable *Type maps to that type, any other to
// its GoType.
func (r *Registry) Injectable(t *Type, params ...Token) *Registry {
	if t == nil {
		return r
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.markInjectableLocked(t).params = slices.Clone(params)

	return r
}

// markInjectableLocked flags t as injectable and indexes the Go type it
// produces. Callers hold r.mu.
func (r *Registry) markInjectableLocked(t *Type) *typeMetadata {
	meta := r.entry(t)
	meta.injectable = true

	if t.fn != nil {
		if _, exists := r.byGoType[t.Out()]; !exists {
			r.byGoType[t.Out()] = t
		}
	}

	return meta
}

// Inject makes parameter index of t receive token instead of its inferred
// token. token may be a deferred *Forward.
func (r *Registry) Inject(t *Type, index int, token Token) *Registry {
	if t == nil {
		return r
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entry(t).overrides[index] = token

	return r
}

// Optional marks parameter index of t as optional.
func (r *Registry) Optional(t *Type, index int) *Registry {
	if t == nil {
		return r
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entry(t).optional[index] = true

	return r
}

// Application declares t as a composition root. An application is also
// injectable so that it can receive dependencies itself.
func (r *Registry) Application(t *Type, app ApplicationMetadata) *Registry {
	if t == nil {
		return r
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.markInjectableLocked(t).app = &app

	return r
}

// IsInjectable implements MetadataAccessor.
func (r *Registry) IsInjectable(t *Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meta, ok := r.types[t]

	return ok && meta.injectable
}

// ParamTokens implements MetadataAccessor.
func (r *Registry) ParamTokens(t *Type) []Token {
	if t == nil || t.fn == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var explicit []Token
	if meta, ok := r.types[t]; ok {
		explicit = meta.params
	}

	tokens := make([]Token, t.NumParams())
	for i := range tokens {
		if i < len(explicit) {
			tokens[i] = explicit[i]

			continue
		}

		tokens[i] = r.inferLocked(t.ParamType(i))
	}

	return tokens
}

// inferLocked maps a Go parameter type to its token. Callers hold r.mu.
func (r *Registry) inferLocked(typ reflect.Type) Token {
	if producer, ok := r.byGoType[typ]; ok {
		return producer
	}

	return GoType{typ: typ}
}

// InjectOverrides implements MetadataAccessor.
func (r *Registry) InjectOverrides(t *Type) map[int]Token {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if meta, ok := r.types[t]; ok {
		return maps.Clone(meta.overrides)
	}

	return nil
}

// OptionalParams implements MetadataAccessor.
func (r *Registry) OptionalParams(t *Type) map[int]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if meta, ok := r.types[t]; ok {
		return maps.Clone(meta.optional)
	}

	return nil
}

// HasApplicationMetadata implements MetadataAccessor.
func (r *Registry) HasApplicationMetadata(t *Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meta, ok := r.types[t]

	return ok && meta.app != nil
}

// ApplicationMetadata implements MetadataAccessor.
func (r *Registry) ApplicationMetadata(t *Type) ApplicationMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if meta, ok := r.types[t]; ok && meta.app != nil {
		return *meta.app
	}

	return ApplicationMetadata{}
}
