// Package config reads and writes the optional .covgate.toml file and merges
// it with flag and environment values.
package config

import (
	"bytes"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

type Config struct {
	Gate GateConfig `toml:"gate"`
}

type GateConfig struct {
	Threshold *float64 `toml:"threshold,omitempty"`
	Strict    *bool    `toml:"strict,omitempty"`
}

// Layer exposes the file values for Resolve.
func (config Config) Layer() Layer {
	return Layer{Threshold: config.Gate.Threshold, Strict: config.Gate.Strict}
}

func ReadConfig(fs afero.Fs, path string) (Config, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to stat configuration file %s", path)
	}
	if !exists {
		return Config{}, &ConfigFileNotFoundError{Path: path}
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read configuration file %s", path)
	}

	var config Config
	meta, err := toml.Decode(string(data), &config)
	if err != nil {
		return Config{}, &ConfigFileInvalidError{Path: path, Err: err}
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)
		return Config{}, &ConfigFileInvalidError{
			Path: path,
			Err:  errors.Errorf("unknown keys: %s", strings.Join(keys, ", ")),
		}
	}

	if config.Gate.Threshold != nil {
		if err := ValidateThreshold(*config.Gate.Threshold); err != nil {
			return Config{}, &ConfigFileInvalidError{Path: path, Err: err}
		}
	}

	return config, nil
}

// WriteConfig stores config at path. An existing file is only replaced when force is set.
func WriteConfig(fs afero.Fs, path string, config Config, force bool) error {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return errors.Wrapf(err, "failed to stat configuration file %s", path)
	}
	if exists && !force {
		return &ConfigFileExistsError{Path: path}
	}

	var buffer bytes.Buffer
	if err := toml.NewEncoder(&buffer).Encode(config); err != nil {
		return errors.Wrap(err, "failed to encode configuration")
	}

	return writeFileAtomic(fs, path, buffer.Bytes())
}
