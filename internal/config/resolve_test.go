package config

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](value T) *T {
	return &value
}

func TestResolveDefaults(t *testing.T) {
	assert.Equal(t, Settings{Threshold: 60}, Resolve())
	assert.Equal(t, Settings{Threshold: 60}, Resolve(Layer{}, Layer{}))
}

func TestResolveFirstLayerWins(t *testing.T) {
	flag := Layer{Threshold: ptr(80.0)}
	env := Layer{Threshold: ptr(70.0), Strict: ptr(true)}
	file := Layer{Threshold: ptr(50.0), Strict: ptr(false)}

	settings := Resolve(flag, env, file)

	assert.Equal(t, 80.0, settings.Threshold)
	assert.True(t, settings.Strict)
}

func TestResolveFallsThroughUnsetLayers(t *testing.T) {
	settings := Resolve(Layer{}, Layer{}, Layer{Threshold: ptr(55.5), Strict: ptr(true)})

	assert.Equal(t, Settings{Threshold: 55.5, Strict: true}, settings)
}

func TestParseThreshold(t *testing.T) {
	valid := map[string]float64{
		"70":     70,
		" 72.5 ": 72.5,
		"0":      0,
		"100":    100,
	}
	for raw, expected := range valid {
		actual, err := ParseThreshold(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, expected, actual, raw)
	}

	for _, raw := range []string{"", "seventy", "-1", "100.01", "NaN", "Inf"} {
		_, err := ParseThreshold(raw)
		var invalid *InvalidThresholdError
		assert.ErrorAs(t, err, &invalid, raw)
	}
}

func TestValidateThreshold(t *testing.T) {
	assert.NoError(t, ValidateThreshold(60))
	assert.Error(t, ValidateThreshold(math.NaN()))
	assert.Error(t, ValidateThreshold(math.Inf(1)))
	assert.EqualError(t, ValidateThreshold(-5), `Threshold must be a number between 0 and 100, got "-5"`)
}

func TestParseStrict(t *testing.T) {
	strict, err := ParseStrict("true")
	require.NoError(t, err)
	assert.True(t, strict)

	strict, err = ParseStrict(" 0 ")
	require.NoError(t, err)
	assert.False(t, strict)

	_, err = ParseStrict("sometimes")
	assert.EqualError(t, err, `strict must be true or false, got "sometimes"`)
}
