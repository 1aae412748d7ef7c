package perf

import (
	"encoding/json"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const defaultExportFilename = "covgate-perf.json"

// ExportToFile writes every recorded span as JSON to <outDir>/covgate-perf.json
// and returns the written path.
//
// The dump is a diagnostic artifact; callers treat a returned error as non-fatal.
func ExportToFile(fs afero.Fs, outDir string) (string, error) {
	if outDir == "" {
		outDir = "."
	}

	if err := fs.MkdirAll(outDir, 0o755); err != nil {
		return "", errors.Wrap(err, "create perf output directory")
	}

	data, err := json.MarshalIndent(GetSpans(), "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "encode perf spans")
	}

	path := filepath.Join(outDir, defaultExportFilename)
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return "", errors.Wrap(err, "write perf spans")
	}
	return path, nil
}
