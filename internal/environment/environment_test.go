package environment

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThreshold(t *testing.T) {
	t.Run("environment variable set", func(t *testing.T) {
		t.Setenv("COVGATE_THRESHOLD", "72.5")

		actual, present := Threshold()
		assert.True(t, present)
		assert.Equal(t, "72.5", actual)
	})

	t.Run("environment variable not set", func(t *testing.T) {
		t.Setenv("COVGATE_THRESHOLD", "")
		os.Unsetenv("COVGATE_THRESHOLD")

		actual, present := Threshold()
		assert.False(t, present)
		assert.Empty(t, actual)
	})
}

func TestStrict(t *testing.T) {
	t.Run("environment variable set", func(t *testing.T) {
		t.Setenv("COVGATE_STRICT", "true")

		actual, present := Strict()
		assert.True(t, present)
		assert.Equal(t, "true", actual)
	})

	t.Run("environment variable not set", func(t *testing.T) {
		t.Setenv("COVGATE_STRICT", "")
		os.Unsetenv("COVGATE_STRICT")

		_, present := Strict()
		assert.False(t, present)
	})
}

func TestAppVersion(t *testing.T) {
	expected := "REPL_VERSION"
	actual := AppVersion()
	assert.Equal(t, expected, actual)
}
