package artifact

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer saves generated pages into a directory.
type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Write stores payload as the whole content of the topic's file, creating the
// directory when needed, and returns the file path.
func (w *Writer) Write(topic, payload string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating demos dir %s: %w", w.dir, err)
	}
	path := filepath.Join(w.dir, Sanitize(topic)+Ext)
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		return "", fmt.Errorf("writing demo %s: %w", path, err)
	}
	return path, nil
}
