package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const defaultFileMode os.FileMode = 0o644

// writeFileAtomic writes to a sibling temp file and renames it over targetPath
// so readers never see a half written config.
func writeFileAtomic(fs afero.Fs, targetPath string, data []byte) error {
	tempPath := targetPath + ".covgate.tmp"

	if err := removePathIfExists(fs, tempPath); err != nil {
		return errors.Wrapf(err, "failed to remove temp file %s", tempPath)
	}
	if err := afero.WriteFile(fs, tempPath, data, defaultFileMode); err != nil {
		return errors.Wrapf(err, "failed to write temp file %s", tempPath)
	}

	if err := fs.Rename(tempPath, targetPath); err != nil {
		if cleanupErr := removePathIfExists(fs, tempPath); cleanupErr != nil {
			return errors.Wrapf(err, "failed to rename %s (cleanup also failed: %s)", tempPath, cleanupErr)
		}
		return errors.Wrapf(err, "failed to rename %s", tempPath)
	}
	return nil
}

func removePathIfExists(fs afero.Fs, path string) error {
	removeErr := fs.Remove(path)
	if removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
		return removeErr
	}
	return nil
}
