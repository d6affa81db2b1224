package ledger

import (
	"fmt"
	"io"
)

// Open returns the store for backend ("json" or "sqlite") and a closer that
// releases it.
func Open(backend, path string) (Store, io.Closer, error) {
	switch backend {
	case "", "json":
		return NewFileStore(path), nopCloser{}, nil
	case "sqlite":
		s, err := OpenSQLiteStore(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("ledger backend %q not supported", backend)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
