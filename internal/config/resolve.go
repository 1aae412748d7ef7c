package config

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/meza/coverage-gate/internal/constants"
)

// Layer is one source of settings. Nil fields defer to the next layer.
type Layer struct {
	Threshold *float64
	Strict    *bool
}

type Settings struct {
	Threshold float64
	Strict    bool
}

// Resolve takes each setting from the first layer that sets it, highest
// priority first, falling back to the compiled defaults.
func Resolve(layers ...Layer) Settings {
	settings := Settings{Threshold: constants.DefaultThreshold}
	var thresholdSet, strictSet bool

	for _, layer := range layers {
		if !thresholdSet && layer.Threshold != nil {
			settings.Threshold = *layer.Threshold
			thresholdSet = true
		}
		if !strictSet && layer.Strict != nil {
			settings.Strict = *layer.Strict
			strictSet = true
		}
	}

	return settings
}

func ValidateThreshold(threshold float64) error {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) || threshold < 0 || threshold > 100 {
		return &InvalidThresholdError{Value: strconv.FormatFloat(threshold, 'f', -1, 64)}
	}
	return nil
}

func ParseThreshold(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	threshold, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, &InvalidThresholdError{Value: raw}
	}
	if err := ValidateThreshold(threshold); err != nil {
		return 0, err
	}
	return threshold, nil
}

func ParseStrict(raw string) (bool, error) {
	strict, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, errors.Errorf("strict must be true or false, got %q", raw)
	}
	return strict, nil
}
