package cavia

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestBuilder_Validate_OK(t *testing.T) {
	reg := NewRegistry()
	carType := newCarType(reg)
	appType := newAppType(reg, ApplicationMetadata{
		Providers: []Provider{
			ValueProvider{Provide: String("engine"), UseValue: "v8"},
			carType,
			FactoryProvider{
				Provide:      String("garage"),
				Dependencies: []Dependency{Dep(carType), Dep(ContainerToken), OptionalDep(String("valet"))},
				UseFactory: func(ctx context.Context, deps []any) (any, error) {
					return deps[0], nil
				},
			},
		},
	})

	b, err := newTestRuntime(t, reg).Init(appType)
	require.NoError(t, err)

	assert.NoError(t, b.Validate())
}

func TestBuilder_Validate_CollectsEveryProblem(t *testing.T) {
	reg := NewRegistry()
	carType := newCarType(reg)
	plain := MustType("Plain", func() *testService { return &testService{} })
	appType := newAppType(reg, ApplicationMetadata{
		Providers: []Provider{
			carType,
			plain,
			unknownProvider{},
			FactoryProvider{
				Provide:      String("report"),
				Dependencies: Deps(String("db")),
				UseFactory: func(ctx context.Context, deps []any) (any, error) {
					return nil, nil
				},
			},
		},
	})

	b, err := newTestRuntime(t, reg).Init(appType)
	require.NoError(t, err)

	err = b.Validate()
	require.Error(t, err)

	errs := multierr.Errors(err)
	assert.Len(t, errs, 4)
	assert.ErrorIs(t, err, ErrMissingDependencySentinel)
	assert.ErrorIs(t, err, ErrNotInjectableSentinel)
	assert.ErrorIs(t, err, ErrInvalidProviderSentinel)
	assert.Contains(t, err.Error(), "'engine'")
	assert.Contains(t, err.Error(), "'db'")
}

func TestBuilder_Validate_Cycle(t *testing.T) {
	reg := NewRegistry()
	passthrough := func(ctx context.Context, deps []any) (any, error) {
		return deps[0], nil
	}
	appType := newAppType(reg, ApplicationMetadata{
		Providers: []Provider{
			FactoryProvider{Provide: String("a"), Dependencies: Deps(String("b")), UseFactory: passthrough},
			FactoryProvider{Provide: String("b"), Dependencies: Deps(String("a")), UseFactory: passthrough},
		},
	})

	b, err := newTestRuntime(t, reg).Init(appType)
	require.NoError(t, err)

	err = b.Validate()
	assert.ErrorIs(t, err, ErrCircularDependencySentinel)
}

func TestBuilder_Validate_ShadowedProvidersIgnored(t *testing.T) {
	reg := NewRegistry()
	raw := MustType("Raw", func() *testService { return &testService{} })
	appType := newAppType(reg, ApplicationMetadata{
		Packages: []Package{{Name: "broken", Providers: []Provider{
			FactoryProvider{
				Provide:      String("db"),
				Dependencies: Deps(String("dsn")),
				UseFactory: func(ctx context.Context, deps []any) (any, error) {
					return nil, nil
				},
			},
			ClassProvider{Provide: String("svc"), UseClass: raw},
		}}},
		Providers: []Provider{
			ValueProvider{Provide: String("db"), UseValue: "fake"},
			ValueProvider{Provide: String("svc"), UseValue: &testService{}},
		},
	})

	b, err := newTestRuntime(t, reg).Init(appType)
	require.NoError(t, err)

	// Compile never runs the shadowed recipes, so Validate must agree.
	_, err = b.Compile(context.Background())
	require.NoError(t, err)

	assert.NoError(t, b.Validate())
}

func TestBuilder_Validate_ReportsEveryTokenlessProvider(t *testing.T) {
	reg := NewRegistry()
	appType := newAppType(reg, ApplicationMetadata{
		Providers: []Provider{
			ValueProvider{UseValue: 1},
			ValueProvider{UseValue: 2},
		},
	})

	b, err := newTestRuntime(t, reg).Init(appType)
	require.NoError(t, err)

	err = b.Validate()
	assert.ErrorIs(t, err, ErrInvalidProviderSentinel)
	assert.Len(t, multierr.Errors(err), 2)
}
