package cavia

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xraph/go-utils/errs"
)

// =============================================================================
// ERROR CODES
// =============================================================================

const (
	// CodeInvalidProvider indicates a provider of unrecognised shape
	CodeInvalidProvider = "INVALID_PROVIDER"

	// CodeNotInjectable indicates a type used as a dependency target without being marked injectable
	CodeNotInjectable = "NOT_INJECTABLE"

	// CodeCircularDependency indicates a parameter token could not be determined or a cycle was found
	CodeCircularDependency = "CIRCULAR_DEPENDENCY"

	// CodeMissingDependency indicates a required dependency has no provider
	CodeMissingDependency = "MISSING_DEPENDENCY"

	// CodeApplicationMetadata indicates the root type was not declared as an application
	CodeApplicationMetadata = "APPLICATION_METADATA"

	// CodeLifecycleHook indicates a boot, listen or shutdown hook failed
	CodeLifecycleHook = "LIFECYCLE_HOOK"

	// CodeTypeMismatch indicates a resolved value is not of the requested Go type
	CodeTypeMismatch = "TYPE_MISMATCH"

	// CodeInvalidConfig indicates the runtime configuration failed validation
	CodeInvalidConfig = "INVALID_CONFIG"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

// ErrInvalidProviderSentinel is a sentinel error for unrecognised provider shapes.
var ErrInvalidProviderSentinel = errs.NewError(CodeInvalidProvider, "invalid provider", nil)

// ErrNotInjectableSentinel is a sentinel error for types not marked injectable.
var ErrNotInjectableSentinel = errs.NewError(CodeNotInjectable, "type not injectable", nil)

// ErrCircularDependencySentinel is a sentinel error for circular dependencies.
var ErrCircularDependencySentinel = errs.NewError(CodeCircularDependency, "circular dependency", nil)

// ErrMissingDependencySentinel is a sentinel error for unresolvable required dependencies.
var ErrMissingDependencySentinel = errs.NewError(CodeMissingDependency, "missing dependency", nil)

// ErrApplicationMetadataSentinel is a sentinel error for roots lacking application metadata.
var ErrApplicationMetadataSentinel = errs.NewError(CodeApplicationMetadata, "missing application metadata", nil)

// ErrLifecycleHookSentinel is a sentinel error for failed lifecycle hooks.
var ErrLifecycleHookSentinel = errs.NewError(CodeLifecycleHook, "lifecycle hook failed", nil)

// ErrTypeMismatchSentinel is a sentinel error for type mismatch during lookup.
var ErrTypeMismatchSentinel = errs.NewError(CodeTypeMismatch, "type mismatch", nil)

// ErrInvalidConfigSentinel is a sentinel error for invalid configuration.
var ErrInvalidConfigSentinel = errs.NewError(CodeInvalidConfig, "invalid config", nil)

// IsConfigurationError reports whether err is an invalid provider or a
// non-injectable type, the two mistakes made when declaring providers.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidProviderSentinel) || errors.Is(err, ErrNotInjectableSentinel)
}

// =============================================================================
// ERROR CONSTRUCTORS
// =============================================================================

// ErrInvalidProvider creates an error for a provider the engine cannot interpret.
func ErrInvalidProvider(p Provider, reason string) *errs.Error {
	return errs.NewError(
		CodeInvalidProvider,
		fmt.Sprintf("invalid provider '%v': %s", describeProvider(p), reason),
		nil,
	).WithContext("provider", describeProvider(p)).(*errs.Error)
}

// ErrNotInjectable creates an error for a type that lacks injectable metadata.
func ErrNotInjectable(typeName string) *errs.Error {
	return errs.NewError(
		CodeNotInjectable,
		fmt.Sprintf("type '%s' should be marked as injectable", typeName),
		nil,
	).WithContext("type", typeName).(*errs.Error)
}

// ErrUndeterminedParam creates an error for a constructor parameter whose token is
// unknown, which is how an unresolved circular type reference surfaces.
func ErrUndeterminedParam(typeName string, index int) *errs.Error {
	return errs.NewError(
		CodeCircularDependency,
		fmt.Sprintf("cannot resolve circular dependency: parameter [%d] of '%s' has no token", index, typeName),
		nil,
	).WithContext("type", typeName).
		WithContext("index", index).(*errs.Error)
}

// ErrCircularDependency creates an error for a dependency cycle.
func ErrCircularDependency(cycle []string) *errs.Error {
	return errs.NewError(
		CodeCircularDependency,
		fmt.Sprintf("circular dependency detected: %s", strings.Join(cycle, " -> ")),
		nil,
	).WithContext("cycle", cycle).(*errs.Error)
}

// ErrMissingDependency creates an error for a required dependency with no provider.
func ErrMissingDependency(providerName string, index int, token Token) *errs.Error {
	return errs.NewError(
		CodeMissingDependency,
		fmt.Sprintf("cannot resolve dependency '%s' at index [%d] in '%s'", TokenName(token), index, providerName),
		nil,
	).WithContext("provider", providerName).
		WithContext("index", index).
		WithContext("token", TokenName(token)).(*errs.Error)
}

// ErrApplicationMetadata creates an error for a root type that is not an application.
func ErrApplicationMetadata(typeName string) *errs.Error {
	return errs.NewError(
		CodeApplicationMetadata,
		fmt.Sprintf("'%s' should be declared as an application", typeName),
		nil,
	).WithContext("type", typeName).(*errs.Error)
}

// NewLifecycleError creates an error for a failed lifecycle hook.
func NewLifecycleError(hook Hook, providerName string, cause error) *errs.Error {
	return errs.NewError(
		CodeLifecycleHook,
		fmt.Sprintf("provider '%s' failed during %s", providerName, hook),
		cause,
	).WithContext("hook", string(hook)).
		WithContext("provider", providerName).(*errs.Error)
}

// ErrTypeMismatch creates an error for a value that is not of the requested type.
func ErrTypeMismatch(tokenName string, actual any) *errs.Error {
	return errs.NewError(
		CodeTypeMismatch,
		fmt.Sprintf("token '%s' type mismatch: got %T", tokenName, actual),
		nil,
	).WithContext("token", tokenName).
		WithContext("actual_type", fmt.Sprintf("%T", actual)).(*errs.Error)
}

// ErrInvalidConfig creates an error for a configuration field that failed validation.
func ErrInvalidConfig(field, reason string) *errs.Error {
	return errs.NewError(
		CodeInvalidConfig,
		fmt.Sprintf("invalid config %s: %s", field, reason),
		nil,
	).WithContext("field", field).(*errs.Error)
}

// describeProvider renders a provider for error messages without assuming its shape.
func describeProvider(p Provider) string {
	if p == nil {
		return "<nil>"
	}

	switch v := p.(type) {
	case *Type:
		return TokenName(v)
	case ClassProvider, *ClassProvider, FactoryProvider, *FactoryProvider, ValueProvider, *ValueProvider:
		return fmt.Sprintf("%T(%s)", v, ProviderName(v))
	default:
		return fmt.Sprintf("%T", v)
	}
}
