package cavia

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHelpersContainer(t *testing.T) *Container {
	t.Helper()

	c, err := NewContainer(context.Background(), []Provider{
		ValueProvider{Provide: String("svc"), UseValue: &testService{value: "svc"}},
		ValueProvider{Provide: String("other"), UseValue: &testService{value: "other"}},
		ValueProvider{Provide: String("count"), UseValue: 3},
		ValueProvider{Provide: String("nothing"), UseValue: nil},
	})
	require.NoError(t, err)

	return c
}

func TestFind_Typed(t *testing.T) {
	ctx := context.Background()
	c := newHelpersContainer(t)

	svc, ok, err := Find[*testService](ctx, c, String("svc"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "svc", svc.value)
}

func TestFind_NotRegistered(t *testing.T) {
	ctx := context.Background()
	c := newHelpersContainer(t)

	svc, ok, err := Find[*testService](ctx, c, String("absent"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, svc)
}

func TestFind_TypeMismatch(t *testing.T) {
	ctx := context.Background()
	c := newHelpersContainer(t)

	_, ok, err := Find[string](ctx, c, String("count"))
	assert.True(t, ok)
	assert.ErrorIs(t, err, ErrTypeMismatchSentinel)
	assert.Contains(t, err.Error(), "got int")
}

func TestFind_NilValue(t *testing.T) {
	ctx := context.Background()
	c := newHelpersContainer(t)

	svc, ok, err := Find[*testService](ctx, c, String("nothing"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, svc)
}

func TestFind_Interface(t *testing.T) {
	ctx := context.Background()

	c, err := NewContainer(ctx, []Provider{
		ValueProvider{Provide: String("booter"), UseValue: &bootOnly{}},
	})
	require.NoError(t, err)

	booter, ok, err := Find[OnApplicationBoot](ctx, c, String("booter"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotNil(t, booter)
}

func TestFindOption(t *testing.T) {
	ctx := context.Background()
	c := newHelpersContainer(t)

	opt, err := FindOption[int](ctx, c, String("count"))
	require.NoError(t, err)
	assert.True(t, opt.IsPresent())
	assert.Equal(t, 3, opt.MustGet())

	opt, err = FindOption[int](ctx, c, String("absent"))
	require.NoError(t, err)
	assert.True(t, opt.IsAbsent())
	assert.Equal(t, 7, opt.OrElse(7))

	opt, err = FindOption[int](ctx, c, String("svc"))
	assert.ErrorIs(t, err, ErrTypeMismatchSentinel)
	assert.True(t, opt.IsAbsent())
}

func TestMustFind(t *testing.T) {
	ctx := context.Background()
	c := newHelpersContainer(t)

	assert.Equal(t, 3, MustFind[int](ctx, c, String("count")))

	assert.Panics(t, func() {
		MustFind[int](ctx, c, String("absent"))
	})
	assert.Panics(t, func() {
		MustFind[string](ctx, c, String("count"))
	})
}

func TestFilterAs(t *testing.T) {
	ctx := context.Background()
	c := newHelpersContainer(t)

	services, err := FilterAs[*testService](ctx, c, IsValueProvider)
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "svc", services[0].value)
	assert.Equal(t, "other", services[1].value)
}
