package cavia

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderKinds(t *testing.T) {
	carType := MustType("Car", func() *Car { return &Car{} })
	factory := func(ctx context.Context, deps []any) (any, error) { return nil, nil }

	tests := []struct {
		name     string
		provider Provider
		kind     providerKind
	}{
		{"type", carType, kindType},
		{"class", ClassProvider{Provide: String("car"), UseClass: carType}, kindClass},
		{"class pointer", &ClassProvider{Provide: String("car"), UseClass: carType}, kindClass},
		{"factory", FactoryProvider{Provide: String("car"), UseFactory: factory}, kindFactory},
		{"factory pointer", &FactoryProvider{Provide: String("car"), UseFactory: factory}, kindFactory},
		{"value", ValueProvider{Provide: String("car")}, kindValue},
		{"value pointer", &ValueProvider{Provide: String("car")}, kindValue},
		{"unknown", unknownProvider{}, kindInvalid},
		{"nil type", (*Type)(nil), kindInvalid},
		{"nil", nil, kindInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, kindOf(tt.provider))
			assert.Equal(t, tt.kind == kindType, IsTypeProvider(tt.provider))
			assert.Equal(t, tt.kind == kindClass, IsClassProvider(tt.provider))
			assert.Equal(t, tt.kind == kindFactory, IsFactoryProvider(tt.provider))
			assert.Equal(t, tt.kind == kindValue, IsValueProvider(tt.provider))
			assert.Equal(t, tt.kind == kindType || tt.kind == kindClass, IsConstructed(tt.provider))
		})
	}
}

func TestProviderKind_String(t *testing.T) {
	assert.Equal(t, "type", kindType.String())
	assert.Equal(t, "class", kindClass.String())
	assert.Equal(t, "factory", kindFactory.String())
	assert.Equal(t, "value", kindValue.String())
	assert.Equal(t, "invalid", kindInvalid.String())
}

func TestProviderToken(t *testing.T) {
	carType := MustType("Car", func() *Car { return &Car{} })

	assert.Same(t, carType, ProviderToken(carType))
	assert.Equal(t, String("car"), ProviderToken(ClassProvider{Provide: String("car"), UseClass: carType}))
	assert.Nil(t, ProviderToken(nil))
	assert.Nil(t, ProviderToken((*Type)(nil)))
	assert.Nil(t, ProviderToken((*ValueProvider)(nil)))
	assert.Equal(t, "<nil>", ProviderName((*FactoryProvider)(nil)))
	assert.Equal(t, "Car", ProviderName(carType))
}

func TestByToken(t *testing.T) {
	pred := ByToken(String("a"), String("b"))

	assert.True(t, pred(ValueProvider{Provide: String("a")}))
	assert.True(t, pred(ValueProvider{Provide: String("b")}))
	assert.False(t, pred(ValueProvider{Provide: String("c")}))
	assert.False(t, ByToken()(ValueProvider{Provide: String("a")}))
}

func TestPredicateCombinators(t *testing.T) {
	value := ValueProvider{Provide: String("a")}
	factory := FactoryProvider{Provide: String("a")}

	assert.True(t, And(IsValueProvider, ByToken(String("a")))(value))
	assert.False(t, And(IsValueProvider, ByToken(String("a")))(factory))
	assert.True(t, And()(value))

	assert.True(t, Or(IsValueProvider, IsFactoryProvider)(factory))
	assert.False(t, Or(IsTypeProvider, IsClassProvider)(factory))
	assert.False(t, Or()(value))

	assert.False(t, Not(IsValueProvider)(value))
	assert.True(t, Not(IsValueProvider)(factory))
}

func TestDeps(t *testing.T) {
	deps := Deps(String("a"), String("b"))

	assert.Equal(t, []Dependency{{Token: String("a")}, {Token: String("b")}}, deps)
	assert.Equal(t, Dependency{Token: String("c"), Optional: true}, OptionalDep(String("c")))
	assert.Equal(t, []Token{String("a"), String("b")}, DependencyTokens(deps))
	assert.Empty(t, Deps())
}
