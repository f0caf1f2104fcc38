package cavia

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_Injectable(t *testing.T) {
	reg := NewRegistry()
	carType := MustType("Car", func(engine string) *Car { return &Car{Engine: engine} })

	assert.False(t, reg.IsInjectable(carType))

	reg.Injectable(carType)
	assert.True(t, reg.IsInjectable(carType))
	assert.False(t, reg.HasApplicationMetadata(carType))

	// Nil types are ignored.
	assert.Same(t, reg, reg.Injectable(nil))
	assert.False(t, reg.IsInjectable(nil))
}

func TestRegistry_ParamTokens(t *testing.T) {
	reg := NewRegistry()

	engineType := MustType("Engine", func() *testService { return &testService{} })
	carType := MustType("Car", func(engine *testService, name string, wheels int) *Car { return &Car{} })

	reg.Injectable(carType, nil, String("name")).Injectable(engineType)

	tokens := reg.ParamTokens(carType)
	assert.Len(t, tokens, 3)
	assert.Nil(t, tokens[0], "explicit nil stays undetermined")
	assert.Equal(t, String("name"), tokens[1])
	assert.Equal(t, TypeOf[int](), tokens[2])

	reg.Injectable(carType)
	tokens = reg.ParamTokens(carType)
	assert.Same(t, engineType, tokens[0], "inferred from the producing type")
	assert.Equal(t, TypeOf[string](), tokens[1])

	assert.Nil(t, reg.ParamTokens(nil))
}

func TestRegistry_InjectAndOptional(t *testing.T) {
	reg := NewRegistry()
	carType := MustType("Car", func(engine string, owner string) *Car { return &Car{} })

	ref := ForwardRef(func() Token { return String("owner") })

	reg.Injectable(carType).
		Inject(carType, 0, String("engine")).
		Inject(carType, 1, ref).
		Optional(carType, 1)

	overrides := reg.InjectOverrides(carType)
	assert.Equal(t, String("engine"), overrides[0])
	assert.Same(t, ref, overrides[1])
	assert.False(t, ref.IsResolved(), "forward refs resolve only when dependencies are computed")

	assert.Equal(t, map[int]bool{1: true}, reg.OptionalParams(carType))

	// Returned maps are copies.
	overrides[0] = String("other")
	assert.Equal(t, String("engine"), reg.InjectOverrides(carType)[0])

	deps, err := typeDependencies(reg, carType)
	assert.NoError(t, err)
	assert.Equal(t, []Dependency{
		{Token: String("engine")},
		{Token: String("owner"), Optional: true},
	}, deps)
	assert.True(t, ref.IsResolved())
}

func TestRegistry_Application(t *testing.T) {
	reg := NewRegistry()
	appType := MustType("App", func(addr string) *testApp { return &testApp{} })

	reg.Injectable(appType, String("addr"))

	meta := ApplicationMetadata{
		Packages:  []Package{{Name: "http", Providers: []Provider{ValueProvider{Provide: String("port"), UseValue: 80}}}},
		Providers: []Provider{ValueProvider{Provide: String("addr"), UseValue: ":80"}},
	}
	reg.Application(appType, meta)

	assert.True(t, reg.HasApplicationMetadata(appType))
	assert.True(t, reg.IsInjectable(appType))
	assert.Equal(t, meta, reg.ApplicationMetadata(appType))
	assert.Equal(t, []Token{String("addr")}, reg.ParamTokens(appType), "declaring an application keeps explicit params")

	other := MustType("Other", func() *testApp { return &testApp{} })
	assert.Equal(t, ApplicationMetadata{}, reg.ApplicationMetadata(other))
}

func TestRegistry_UnknownType(t *testing.T) {
	reg := NewRegistry()
	carType := MustType("Car", func() *Car { return &Car{} })

	assert.Nil(t, reg.InjectOverrides(carType))
	assert.Nil(t, reg.OptionalParams(carType))
	assert.Empty(t, reg.ParamTokens(carType))
}
