package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"image-gallery-api/config"
)

// Local stores uploads on the local filesystem under a configured root,
// organized into subdirectories captured from the generated filename by
// a configured pattern. With the default timestamp layout and pattern
// this yields yyyy/mm/dd subtrees.
type Local struct {
	logger   *zap.Logger
	gen      *Generator
	root     string
	subdirRe *regexp.Regexp
}

func NewLocal(cfg config.Upload, gen *Generator, logger *zap.Logger) (*Local, error) {
	root, err := filepath.Abs(cfg.Directory)
	if err != nil {
		return nil, fmt.Errorf("resolve upload directory: %w", err)
	}
	// MkdirAll is idempotent; concurrent creation is safe.
	if err = os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	subdirRe, err := regexp.Compile(cfg.SubdirectoryRegexp)
	if err != nil {
		return nil, fmt.Errorf("invalid upload subdirectory pattern: %w", err)
	}

	logger.Info("local storage ready", zap.String("root", root))

	return &Local{
		logger:   logger,
		gen:      gen,
		root:     root,
		subdirRe: subdirRe,
	}, nil
}

func (l *Local) Store(ctx context.Context, content io.Reader, contentType, originalFilename string) (Reference, error) {
	name := l.gen.Generate(originalFilename)
	sub := l.subdirectory(name)

	dir := filepath.Join(l.root, filepath.FromSlash(sub))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Reference{}, fmt.Errorf("create upload subdirectory: %w", err)
	}

	// O_EXCL: a filename collision surfaces as an error instead of
	// clobbering existing content.
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return Reference{}, fmt.Errorf("create upload file: %w", err)
	}
	if _, err = io.Copy(f, content); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return Reference{}, fmt.Errorf("write upload file: %w", err)
	}
	if err = f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return Reference{}, fmt.Errorf("close upload file: %w", err)
	}

	return Reference{
		FileName: l.gen.DisplayName(originalFilename),
		Key:      Key(path.Join(sub, name)),
	}, nil
}

func (l *Local) Retrieve(ctx context.Context, key Key) (io.ReadCloser, error) {
	p, err := l.resolve(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open stored file: %w", err)
	}
	return f, nil
}

func (l *Local) Delete(ctx context.Context, key Key) (bool, error) {
	p, err := l.resolve(key)
	if err != nil {
		return false, err
	}
	if err = os.Remove(p); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("remove stored file: %w", err)
	}
	return true, nil
}

// resolve maps an opaque key back to a path under the root, rejecting
// keys that would escape it.
func (l *Local) resolve(key Key) (string, error) {
	rel := filepath.Clean(filepath.FromSlash(string(key)))
	if rel == "." || !filepath.IsLocal(rel) {
		return "", ErrInvalidReference
	}
	return filepath.Join(l.root, rel), nil
}

func (l *Local) subdirectory(name string) string {
	m := l.subdirRe.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	return strings.Join(m[1:], "/")
}
