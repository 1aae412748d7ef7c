package config

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/meza/coverage-gate/internal/environment"
)

type EnvironmentError struct {
	Variable string
	Err      error
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Variable, e.Err)
}

func (e *EnvironmentError) Unwrap() error {
	return e.Err
}

// EnvironmentLayer reads COVGATE_THRESHOLD and COVGATE_STRICT. Empty values count as unset.
func EnvironmentLayer() (Layer, error) {
	var layer Layer

	if raw, present := environment.Threshold(); present && strings.TrimSpace(raw) != "" {
		threshold, err := ParseThreshold(raw)
		if err != nil {
			return Layer{}, &EnvironmentError{Variable: "COVGATE_THRESHOLD", Err: err}
		}
		layer.Threshold = &threshold
	}

	if raw, present := environment.Strict(); present && strings.TrimSpace(raw) != "" {
		strict, err := ParseStrict(raw)
		if err != nil {
			return Layer{}, &EnvironmentError{Variable: "COVGATE_STRICT", Err: err}
		}
		layer.Strict = &strict
	}

	return layer, nil
}

type Sources struct {
	Flags      Layer
	ConfigPath string
	// ConfigExplicit turns a missing config file into an error.
	ConfigExplicit bool
}

// Load merges flags, environment and config file, in that order of priority.
func Load(fs afero.Fs, sources Sources) (Settings, error) {
	envLayer, err := EnvironmentLayer()
	if err != nil {
		return Settings{}, err
	}

	fileConfig, err := ReadConfig(fs, sources.ConfigPath)
	if err != nil {
		var notFound *ConfigFileNotFoundError
		if !errors.As(err, &notFound) || sources.ConfigExplicit {
			return Settings{}, err
		}
	}

	return Resolve(sources.Flags, envLayer, fileConfig.Layer()), nil
}
