package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"field-updater/internal/debug"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteResult reports what WriteFiles did with one file.
type WriteResult struct {
	Path    string
	Changed bool
}

// WriteFiles writes all generated files to their directories, creating
// directories as needed. Files whose content is already on disk are left
// untouched so their modification time does not change.
func WriteFiles(fs afero.Fs, files []GeneratedFile) ([]WriteResult, error) {
	results := make([]WriteResult, 0, len(files))

	for _, file := range files {
		path := file.Path()

		existing, err := afero.ReadFile(fs, path)
		if err == nil && bytes.Equal(existing, file.Content) {
			debug.Debug("file unchanged", "path", path)
			results = append(results, WriteResult{Path: path})

			continue
		}

		if err != nil && !os.IsNotExist(err) {
			return results, fmt.Errorf("reading file %s: %w", path, err)
		}

		if err := fs.MkdirAll(file.Dir, dirPerm); err != nil {
			return results, fmt.Errorf("creating output directory: %w", err)
		}

		if err := afero.WriteFile(fs, path, file.Content, filePerm); err != nil {
			return results, fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		results = append(results, WriteResult{Path: path, Changed: true})
	}

	return results, nil
}

// sidecarSuffix names the copy of output that failed to format. It still
// ends in .go so editors highlight it.
const sidecarSuffix = ".unformatted.go"

// writeSidecar leaves the raw template output next to where file would
// have gone. Failures are only logged.
func writeSidecar(fs afero.Fs, file *GeneratedFile, raw []byte) {
	name := filepath.Join(file.Dir, strings.TrimSuffix(file.Filename, ".go")+sidecarSuffix)

	if err := fs.MkdirAll(file.Dir, dirPerm); err != nil {
		debug.Warn("cannot create sidecar directory", "dir", file.Dir, "error", err)
		return
	}

	if err := afero.WriteFile(fs, name, raw, filePerm); err != nil {
		debug.Warn("cannot write sidecar", "path", name, "error", err)
		return
	}

	debug.Info("unformatted output kept", "path", name)
}
