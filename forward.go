package cavia

import (
	"sync"
	"sync/atomic"
)

// Forward is a deferred token. It stands wherever a plain token would go and
// is resolved at most once, when the dependency list of its owner is
// computed. This breaks references to types that are not yet assigned at the
// point they are declared.
//
// Example:
//
//	var Parent, Child *cavia.Type
//
//	reg.Inject(Child, 0, cavia.ForwardRef(func() cavia.Token { return Parent }))
type Forward struct {
	fn       func() Token
	once     sync.Once
	token    Token
	resolved atomic.Bool
}

// ForwardRef creates a deferred token.
func ForwardRef(fn func() Token) *Forward {
	return &Forward{fn: fn}
}

// Resolve returns the deferred token, calling the resolver on first use only.
func (f *Forward) Resolve() Token {
	f.once.Do(func() {
		if f.fn != nil {
			f.token = f.fn()
		}

		f.resolved.Store(true)
	})

	return f.token
}

// IsResolved reports whether Resolve has been called.
func (f *Forward) IsResolved() bool {
	return f.resolved.Load()
}

// TokenName implements Token.
func (f *Forward) TokenName() string {
	if f.IsResolved() {
		return "forwardRef(" + TokenName(f.token) + ")"
	}

	return "forwardRef(?)"
}

// resolveForward unwraps t when it is a deferred token.
func resolveForward(t Token) Token {
	if f, ok := t.(*Forward); ok && f != nil {
		return f.Resolve()
	}

	return t
}
