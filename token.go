package cavia

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// Token identifies a provider. Tokens are compared by identity (pointer,
// symbol id or string value) and are used directly as map keys, so every
// implementation must be comparable.
//
// Three kinds of token exist:
//   - a constructible type: *Type, or GoType for plain Go types,
//   - a unique Symbol,
//   - a String.
type Token interface {
	TokenName() string
}

// String is a plain string token.
type String string

// TokenName implements Token.
func (s String) TokenName() string {
	return string(s)
}

// Symbol is a unique opaque token. Two symbols created with the same
// description are distinct.
type Symbol struct {
	id   uuid.UUID
	desc string
}

// NewSymbol creates a new unique symbol.
//
// Example:
//
//	var LoggerLevelToken = cavia.NewSymbol("LOGGER_LEVEL")
func NewSymbol(description string) Symbol {
	return Symbol{id: uuid.New(), desc: description}
}

// Description returns the description the symbol was created with.
func (s Symbol) Description() string {
	return s.desc
}

// TokenName implements Token.
func (s Symbol) TokenName() string {
	return "Symbol(" + s.desc + ")"
}

// GoType is the identity of a plain Go type. It is the token inferred for
// constructor parameters whose type is not produced by an injectable *Type,
// such as string or *Container.
type GoType struct {
	typ reflect.Type
}

// TypeOf returns the token identifying the Go type T.
func TypeOf[T any]() GoType {
	return GoType{typ: reflect.TypeFor[T]()}
}

// Type returns the underlying reflect.Type.
func (g GoType) Type() reflect.Type {
	return g.typ
}

// TokenName implements Token.
func (g GoType) TokenName() string {
	if g.typ == nil {
		return "<nil>"
	}

	return g.typ.String()
}

// TokenName returns a printable name for any token, including nil.
func TokenName(t Token) string {
	if isMissingToken(t) {
		return "<nil>"
	}

	return t.TokenName()
}

// isMissingToken reports whether t carries no identity: a nil interface or a
// nil *Type (a type variable that was not yet assigned when it was referenced).
func isMissingToken(t Token) bool {
	switch v := t.(type) {
	case nil:
		return true
	case *Type:
		return v == nil
	case *Forward:
		return v == nil
	case GoType:
		return v.typ == nil
	default:
		return false
	}
}

// tokenKey returns a string unique to the identity of t.
func tokenKey(t Token) string {
	switch v := t.(type) {
	case String:
		return "s:" + string(v)
	case Symbol:
		return "y:" + v.id.String()
	case *Type:
		return fmt.Sprintf("t:%p", v)
	case GoType:
		return fmt.Sprintf("g:%p", v.typ)
	default:
		return fmt.Sprintf("%T:%v", t, t)
	}
}
