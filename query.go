package cavia

import "github.com/samber/lo"

// ByToken selects providers registered under one of tokens.
//
// Example:
//
//	values, err := c.Filter(ctx, cavia.ByToken(cavia.String("a"), cavia.String("b")))
func ByToken(tokens ...Token) Predicate {
	return func(p Provider) bool {
		return lo.Contains(tokens, ProviderToken(p))
	}
}

// IsTypeProvider selects type providers.
func IsTypeProvider(p Provider) bool {
	return kindOf(p) == kindType
}

// IsClassProvider selects class providers.
func IsClassProvider(p Provider) bool {
	return kindOf(p) == kindClass
}

// IsFactoryProvider selects factory providers.
func IsFactoryProvider(p Provider) bool {
	return kindOf(p) == kindFactory
}

// IsValueProvider selects value providers.
func IsValueProvider(p Provider) bool {
	return kindOf(p) == kindValue
}

// IsConstructed selects type and class providers, whose values are
// instances built by a constructor.
func IsConstructed(p Provider) bool {
	kind := kindOf(p)

	return kind == kindType || kind == kindClass
}

// And selects providers matching every predicate.
func And(preds ...Predicate) Predicate {
	return func(p Provider) bool {
		return lo.EveryBy(preds, func(pred Predicate) bool {
			return pred(p)
		})
	}
}

// Or selects providers matching at least one predicate.
func Or(preds ...Predicate) Predicate {
	return func(p Provider) bool {
		return lo.SomeBy(preds, func(pred Predicate) bool {
			return pred(p)
		})
	}
}

// Not inverts a predicate.
func Not(pred Predicate) Predicate {
	return func(p Provider) bool {
		return !pred(p)
	}
}
