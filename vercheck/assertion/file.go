package assertion

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/anchore/vercheck/internal/log"
)

// maxLineSize bounds a single line of an assertion file.
const maxLineSize = 1024 * 1024

// WriteFile replaces the file at path with the text of the set, creating parent directories as needed.
func WriteFile(fs afero.Fs, path string, set *Set) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("unable to create directory for assertions: %w", err)
		}
	}

	fh, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("unable to open assertion file %q: %w", path, err)
	}
	defer func() {
		if closeErr := fh.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("unable to close assertion file %q: %w", path, closeErr)
		}
	}()

	w := bufio.NewWriter(fh)
	if _, err := set.WriteTo(w); err != nil {
		return fmt.Errorf("unable to write assertions to %q: %w", path, err)
	}
	return w.Flush()
}

// ReadLines returns every line of the reader with line terminators removed.
func ReadLines(reader io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func ReadFile(fs afero.Fs, path string) ([]string, error) {
	fh, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open assertion file %q: %w", path, err)
	}
	defer log.CloseAndLogError(fh, path)

	lines, err := ReadLines(fh)
	if err != nil {
		return nil, fmt.Errorf("unable to read assertion file %q: %w", path, err)
	}
	return lines, nil
}
