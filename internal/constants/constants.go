// Package constants defines shared constant values.
package constants

// AppName is the project identifier used in logs and metadata.
const AppName = "coverage-gate"

// CommandName is the primary CLI command name.
const CommandName = "covgate"

// DefaultThreshold is the minimum coverage percentage used when neither a
// flag, the environment nor a config file supplies one.
const DefaultThreshold = 60.0

// DefaultConfigFile is looked up in the working directory when --config is not given.
const DefaultConfigFile = ".covgate.toml"
