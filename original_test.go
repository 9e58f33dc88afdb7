//go:build amd64 || 386

package detour

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:noinline
func foo(a, b float64) float64 {
	return a + b
}

func TestCallThrough(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var (
		f          *Func[func(float64, float64) float64]
		calledWith [][2]float64
		fromOrig   []float64
	)
	f, err := NewFunc(foo, func(a, b float64) float64 {
		calledWith = append(calledWith, [2]float64{a, b})

		// Result discarded
		assert.NoError(f.Call(func(orig func(float64, float64) float64) {
			orig(9.5, 1.5)
		}))

		// Result captured
		got, err := Get(f, func(orig func(float64, float64) float64) float64 {
			return orig(9.5, 1.5)
		})
		assert.NoError(err)
		fromOrig = append(fromOrig, got)

		return 420.0
	})
	require.NoError(err)
	t.Cleanup(func() {
		assert.NoError(f.Disable())
	})

	assert.Equal(7.0, foo(5.0, 2.0))

	require.NoError(f.Enable())
	assert.Equal(420.0, foo(5.0, 2.0))
	assert.True(f.Hooked(), "call-through must leave the detour enabled")
	assert.Equal([][2]float64{{5.0, 2.0}}, calledWith)
	assert.Equal([]float64{11.0}, fromOrig)

	require.NoError(f.Disable())
	assert.Equal(14.0, foo(11.0, 3.0))
	assert.Len(calledWith, 1)
}

//go:noinline
func bar(a, b float64) float64 {
	return a - b
}

func barHook(a, b float64) float64 {
	return 0
}

func TestGetOriginal(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	d := newTestDetour(t, bar, barHook)
	require.NoError(d.Enable())
	assert.Equal(0.0, bar(3, 1))

	got, err := GetOriginal(d, func(orig func(float64, float64) float64) float64 {
		return orig(3, 1)
	})
	assert.NoError(err)
	assert.Equal(2.0, got)
	assert.True(d.Hooked())
	assert.Equal(0.0, bar(3, 1))

	var discarded bool
	err = CallOriginal(d, func(orig func(float64, float64) float64) {
		orig(1, 1)
		discarded = true
	})
	assert.NoError(err)
	assert.True(discarded)
	assert.True(d.Hooked())
}

func TestGetOriginal_Unhooked(t *testing.T) {
	assert := assert.New(t)

	d := newTestDetour(t, bar, barHook)

	got, err := GetOriginal(d, func(orig func(float64, float64) float64) float64 {
		return orig(5, 1)
	})
	assert.NoError(err)
	assert.Equal(4.0, got)
	assert.False(d.Hooked(), "call-through must not enable a disabled detour")
}

func TestGetOriginal_DisableFails(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	d := newTestDetour(t, bar, barHook)
	require.NoError(d.Enable())

	failProtect(t, true)

	called := false
	_, err := GetOriginal(d, func(orig func(float64, float64) float64) float64 {
		called = true
		return orig(5, 1)
	})
	assert.ErrorIs(err, ErrProtectionChange)
	assert.False(called)
	assert.True(d.Hooked())
}

func TestGetOriginal_EnableFails(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	d := newTestDetour(t, bar, barHook)
	require.NoError(d.Enable())

	got, err := GetOriginal(d, func(orig func(float64, float64) float64) float64 {
		// Only the re-enable after this call is refused.
		failProtect(t, true)
		return orig(5, 1)
	})
	assert.Equal(4.0, got)
	assert.ErrorIs(err, ErrProtectionChange)
	assert.NotErrorIs(err, ErrInconsistentState)
	assert.False(d.Hooked())
	assert.Equal(4.0, bar(5, 1))
	assert.Nil(targets.owner(d.Target()))
}

func TestAs(t *testing.T) {
	fn := As[func(float64, float64) float64](funcAddr(bar))
	assert.Equal(t, 1.5, fn(2, 0.5))

	assert.Panics(t, func() {
		As[int](funcAddr(bar))
	})
}
