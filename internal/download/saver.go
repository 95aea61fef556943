package download

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ytget/video-library/internal/platform"
)

// TempFilePattern names the scratch file a payload is staged in
const TempFilePattern = ".video-library-*.part"

// Saver hands an assembled payload to the user under a suggested name
type Saver interface {
	Save(ctx context.Context, fileName string, payload []byte) (string, error)
}

// FileSaver stages payloads in a temporary file inside dir and moves them to
// a unique final path. The temporary file never outlives Save.
type FileSaver struct {
	dir string
}

// NewFileSaver creates a saver writing into dir
func NewFileSaver(dir string) *FileSaver {
	return &FileSaver{dir: dir}
}

// Dir returns the target directory
func (fs *FileSaver) Dir() string {
	return fs.dir
}

// Save writes payload and returns the final path
func (fs *FileSaver) Save(ctx context.Context, fileName string, payload []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := platform.CreateDirectoryIfNotExists(fs.dir); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	tmp, err := os.CreateTemp(fs.dir, TempFilePattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			log.Printf("Failed to remove temporary file %s: %v", tmpPath, err)
		}
	}()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temporary file: %w", err)
	}

	target, err := platform.UniqueFilePath(filepath.Join(fs.dir, platform.SanitizeFileName(fileName)))
	if err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return "", fmt.Errorf("failed to move file into place: %w", err)
	}
	return target, nil
}
