package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewVerdictStartsPassing(t *testing.T) {
	verdict := NewVerdict(70)

	assert.True(t, verdict.Passed)
	assert.Zero(t, verdict.Observed)
	assert.Equal(t, PassedMessage, verdict.Message())
}

func TestObserveNeverRecoversFromFailure(t *testing.T) {
	verdict := NewVerdict(70).Observe(10).Observe(100).Observe(70)

	assert.False(t, verdict.Passed)
	assert.Equal(t, 3, verdict.Observed)
	assert.Equal(t, 10.0, verdict.Lowest)
	assert.Equal(t, FailedMessage, verdict.Message())
}

func TestObserveDoesNotMutateReceiver(t *testing.T) {
	start := NewVerdict(70)
	_ = start.Observe(10)

	assert.True(t, start.Passed)
	assert.Zero(t, start.Observed)
}

func TestFold(t *testing.T) {
	assert.True(t, Fold(60).Passed)
	assert.True(t, Fold(60, 60, 61, 99.9).Passed)
	assert.False(t, Fold(60, 99.9, 59.99).Passed)
	assert.Equal(t, Fold(70, 85, 65), Fold(70, 65, 85))
}
