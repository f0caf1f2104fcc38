package cavia

import "github.com/samber/lo"

// Dependency declares a dependency of a factory provider.
type Dependency struct {
	Token    Token
	Optional bool
}

// Dep declares a required dependency.
//
// Usage:
//
//	cavia.FactoryProvider{
//	    Provide:      cavia.String("repo"),
//	    Dependencies: []cavia.Dependency{cavia.Dep(DatabaseType)},
//	    UseFactory:   newRepo,
//	}
func Dep(token Token) Dependency {
	return Dependency{Token: token}
}

// OptionalDep declares an optional dependency. When no provider exists for
// the token the factory receives nil at that position.
func OptionalDep(token Token) Dependency {
	return Dependency{Token: token, Optional: true}
}

// Deps declares required dependencies from bare tokens.
func Deps(tokens ...Token) []Dependency {
	return lo.Map(tokens, func(t Token, _ int) Dependency {
		return Dep(t)
	})
}

// DependencyTokens extracts just the tokens of deps.
func DependencyTokens(deps []Dependency) []Token {
	return lo.Map(deps, func(d Dependency, _ int) Token {
		return d.Token
	})
}
