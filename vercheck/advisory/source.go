package advisory

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mholt/archiver/v3"
	"github.com/spf13/afero"

	"github.com/anchore/vercheck/internal/log"
)

const jsonExtension = ".json"

// Read loads advisories from a zip archive of JSON records (such as the OSV "all.zip" export), a directory of
// JSON records, or a single JSON record file. Records are returned in a stable order: archive entry order,
// or file name order for directories. Archives are always read from the OS filesystem.
func Read(fs afero.Fs, path string) ([]Record, error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return ReadArchive(path)
	}

	info, err := fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read advisory source %q: %w", path, err)
	}
	if info.IsDir() {
		return ReadDir(fs, path)
	}
	return ReadFile(fs, path)
}

func ReadFile(fs afero.Fs, path string) ([]Record, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open advisory file: %w", err)
	}
	defer log.CloseAndLogError(f, path)

	records, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// ReadDir decodes every JSON file directly within the given directory. Files that fail to decode are reported
// together as a single error.
func ReadDir(fs afero.Fs, dir string) ([]Record, error) {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("unable to list advisory directory: %w", err)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name() < infos[j].Name()
	})

	var records []Record
	var errs error
	for _, info := range infos {
		if info.IsDir() || !strings.EqualFold(filepath.Ext(info.Name()), jsonExtension) {
			continue
		}
		found, err := ReadFile(fs, filepath.Join(dir, info.Name()))
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		records = append(records, found...)
	}

	log.Debugf("read %d advisories from %q", len(records), dir)
	return records, errs
}

// ReadArchive decodes every JSON entry of a zip (or any other archiver supported) archive.
func ReadArchive(path string) ([]Record, error) {
	var records []Record
	var errs error

	err := archiver.Walk(path, func(f archiver.File) error {
		if f.IsDir() || !strings.EqualFold(filepath.Ext(f.Name()), jsonExtension) {
			return nil
		}
		found, err := Decode(f)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", f.Name(), err))
			return nil
		}
		records = append(records, found...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to read advisory archive %q: %w", path, err)
	}

	log.Debugf("read %d advisories from %q", len(records), path)
	return records, errs
}
