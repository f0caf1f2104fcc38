package cavia

import (
	"slices"

	"github.com/samber/lo"
	"go.uber.org/multierr"
)

// Validate checks the provider list without running any recipe. It reports
// every invalid provider, non-injectable type, undetermined parameter and
// missing required dependency it finds, then checks the effective
// providers for dependency cycles. Compile fails on the first of these
// problems; Validate lists them all.
func (b *Builder) Validate() error {
	providers := slices.Clone(b.providers)
	slices.Reverse(providers)

	meta := b.runtime.metadata
	registered := lo.FilterMap(providers, func(p Provider, _ int) (Token, bool) {
		token := ProviderToken(p)

		return token, !isMissingToken(token)
	})
	registered = append(registered, ContainerToken)

	graph := NewDependencyGraph()
	seen := make(map[Token]bool, len(providers))

	var errs error

	for _, p := range providers {
		token := ProviderToken(p)

		// Shadowed registrations never run.
		if !isMissingToken(token) {
			if seen[token] {
				continue
			}

			seen[token] = true
		}

		deps, err := dependenciesOf(meta, p)
		if err != nil {
			errs = multierr.Append(errs, err)

			continue
		}

		for i, dep := range deps {
			if !dep.Optional && !lo.Contains(registered, dep.Token) {
				errs = multierr.Append(errs, ErrMissingDependency(ProviderName(p), i, dep.Token))
			}
		}

		graph.AddNode(token, DependencyTokens(deps))
	}

	if _, err := graph.TopologicalSort(); err != nil {
		errs = multierr.Append(errs, err)
	}

	return errs
}
