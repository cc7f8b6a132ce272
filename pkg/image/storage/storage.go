package storage

import (
	"context"
	"errors"
	"path"
	"strings"
)

var (
	ErrNoCredentials      = errors.New("credentials not found")
	ErrPartialCredentials = errors.New("incomplete credentials")
	// ErrObjectExists is returned by Put when key is already taken.
	ErrObjectExists = errors.New("object already exists")
)

// ObjectStore keeps uploaded image bytes and hands back a public URL.
// Put never overwrites: an existing key yields ErrObjectExists.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
}

// CleanKey reduces a client file name to a safe single-segment object key.
func CleanKey(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(strings.TrimSpace(name))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, name)
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
