package config

import "fmt"

type ConfigFileInvalidError struct {
	Path string
	Err  error
}

type ConfigFileNotFoundError struct {
	Path string
}

type ConfigFileExistsError struct {
	Path string
}

type InvalidThresholdError struct {
	Value string
}

func (e *ConfigFileInvalidError) Error() string {
	return fmt.Sprintf("Configuration file %s is invalid: %s", e.Path, e.Err)
}

func (e *ConfigFileInvalidError) Unwrap() error {
	return e.Err
}

func (e *ConfigFileNotFoundError) Error() string {
	return fmt.Sprintf("Configuration file not found: %s", e.Path)
}

func (e *ConfigFileExistsError) Error() string {
	return fmt.Sprintf("Configuration file already exists: %s", e.Path)
}

func (e *InvalidThresholdError) Error() string {
	return fmt.Sprintf("Threshold must be a number between 0 and 100, got %q", e.Value)
}
