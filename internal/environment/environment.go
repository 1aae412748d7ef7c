// Package environment reads runtime environment configuration.
package environment

import (
	"os"
)

const (
	thresholdVariable = "COVGATE_THRESHOLD"
	strictVariable    = "COVGATE_STRICT"
)

// appVersion is replaced at release time with -ldflags "-X".
var appVersion = "REPL_VERSION"

// Threshold returns the raw COVGATE_THRESHOLD value and whether it was set.
func Threshold() (string, bool) {
	return os.LookupEnv(thresholdVariable)
}

// Strict returns the raw COVGATE_STRICT value and whether it was set.
func Strict() (string, bool) {
	return os.LookupEnv(strictVariable)
}

func AppVersion() string {
	return appVersion
}
