package ledger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Clean removes every output the ledger records and prunes the
// directories that emptied out, up to but not including emitDir. A
// file whose content no longer matches its recorded digest was edited
// after the run and is left alone. Outputs already gone are fine;
// other failures are collected so one stubborn file does not stop the
// rest. Without a usable ledger nothing is touched.
func Clean(emitDir string) (removed int, err error) {
	led, ok, err := Load(emitDir)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}

	var errs []error
	for _, out := range led.Outputs {
		current, readErr := os.ReadFile(out.Path)
		if readErr != nil {
			if errors.Is(readErr, os.ErrNotExist) {
				continue
			}
			errs = append(errs, readErr)
			continue
		}
		if DigestBytes(current) != out.Digest {
			continue
		}
		if rmErr := os.Remove(out.Path); rmErr != nil {
			if errors.Is(rmErr, os.ErrNotExist) {
				continue
			}
			errs = append(errs, rmErr)
			continue
		}
		removed++
		pruneEmptyDirs(filepath.Dir(out.Path), emitDir)
	}

	// The record is spent either way.
	if rmErr := os.Remove(Path(emitDir)); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
		errs = append(errs, rmErr)
	}
	pruneEmptyDirs(filepath.Dir(Path(emitDir)), emitDir)

	return removed, errors.Join(errs...)
}

// pruneEmptyDirs removes dir and its parents while they stay empty,
// stopping before stop.
func pruneEmptyDirs(dir, stop string) {
	stop = filepath.Clean(stop)
	dir = filepath.Clean(dir)
	for dir != stop && strings.HasPrefix(dir, stop+string(filepath.Separator)) {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) != 0 {
			return
		}
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}
