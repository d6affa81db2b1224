package artifact

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Entry describes one stored page for the listing.
type Entry struct {
	// Name is the file name without extension; it is also the route segment.
	Name        string
	DisplayName string
	// Title is the page's own <title>, empty when absent or unreadable.
	Title string
}

// Library reads pages from a directory. It never writes.
type Library struct {
	dir string
}

func NewLibrary(dir string) *Library {
	return &Library{dir: dir}
}

func (l *Library) Dir() string { return l.dir }

// List returns the stored pages in reverse lexical order of file name. A
// missing directory yields an empty list.
func (l *Library) List() ([]Entry, error) {
	entries, err := os.ReadDir(l.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing demos: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Ext) {
			continue
		}
		names = append(names, e.Name())
	}
	slices.Sort(names)
	slices.Reverse(names)

	out := make([]Entry, 0, len(names))
	for _, file := range names {
		name := strings.TrimSuffix(file, Ext)
		out = append(out, Entry{
			Name:        name,
			DisplayName: DisplayName(name),
			Title:       l.title(file),
		})
	}
	return out, nil
}

// Get returns the bytes of the named page; name may omit the extension.
func (l *Library) Get(name string) ([]byte, error) {
	file, ok := l.fileName(name)
	if !ok {
		return nil, ErrNotFound
	}
	path := filepath.Join(l.dir, file)
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) || (err == nil && info.IsDir()) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading demo %s: %w", file, err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading demo %s: %w", file, err)
	}
	return b, nil
}

// FileName maps a route segment to the stored file name.
func FileName(name string) string {
	if strings.HasSuffix(name, Ext) {
		return name
	}
	return name + Ext
}

func (l *Library) fileName(name string) (string, bool) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", false
	}
	return FileName(name), true
}

func (l *Library) title(file string) string {
	b, err := os.ReadFile(filepath.Join(l.dir, file))
	if err != nil {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("head > title").First().Text())
}
