package kv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dmitrijs2005/warrantykeeper/internal/filex"
	"github.com/fsnotify/fsnotify"
)

const fileSuffix = ".json"

// FileRepository implements Repository as one file per key inside dir.
type FileRepository struct {
	dir string

	mu sync.Mutex
	// written holds what this process last wrote per key, so Watch can tell
	// our own writes from foreign ones.
	written map[string][]byte
}

// NewFileRepository creates dir if needed and returns a repository over it.
func NewFileRepository(dir string) (*FileRepository, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &FileRepository{dir: abs, written: make(map[string][]byte)}, nil
}

// Dir returns the absolute storage directory.
func (r *FileRepository) Dir() string {
	return r.dir
}

func (r *FileRepository) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := r.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read kv[%s]: %w", key, err)
	}
	return data, nil
}

func (r *FileRepository) Set(ctx context.Context, key string, value []byte) error {
	path, err := r.path(key)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prev, hadPrev := r.written[key]
	r.written[key] = bytes.Clone(value)

	if err := filex.WriteFileAtomic(path, value, 0o600); err != nil {
		if hadPrev {
			r.written[key] = prev
		} else {
			delete(r.written, key)
		}
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (r *FileRepository) Delete(ctx context.Context, key string) error {
	path, err := r.path(key)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.written, key)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}

func (r *FileRepository) Rename(ctx context.Context, from, to string) error {
	src, err := r.path(from)
	if err != nil {
		return err
	}
	dst, err := r.path(to)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	value, err := os.ReadFile(src)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read kv[%s]: %w", from, err)
	}

	delete(r.written, from)
	r.written[to] = value
	if err := os.Rename(src, dst); err != nil {
		delete(r.written, to)
		return fmt.Errorf("failed to rename kv[%s] to kv[%s]: %w", from, to, err)
	}
	return nil
}

func (r *FileRepository) List(ctx context.Context) (map[string][]byte, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list kv: %w", err)
	}

	result := make(map[string][]byte)
	for _, e := range entries {
		key, ok := keyOf(e.Name())
		if !ok || e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read kv[%s]: %w", key, err)
		}
		result[key] = data
	}
	return result, nil
}

func (r *FileRepository) Clear(ctx context.Context) error {
	all, err := r.List(ctx)
	if err != nil {
		return err
	}
	for key := range all {
		if err := r.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// Watch reports keys changed by someone other than this repository. It
// returns once the watcher is registered; the returned channel is closed
// after ctx is cancelled and the watcher has shut down.
func (r *FileRepository) Watch(ctx context.Context, onChange func(key string)) (<-chan struct{}, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(r.dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", r.dir, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer w.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if key, foreign := r.foreign(ev); foreign {
					onChange(key)
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return done, nil
}

func (r *FileRepository) foreign(ev fsnotify.Event) (string, bool) {
	key, ok := keyOf(filepath.Base(ev.Name))
	if !ok || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) {
		return "", false
	}

	// Writers hold mu for the whole write, so reading under it sees a
	// state consistent with r.written.
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(ev.Name)
	missing := errors.Is(err, fs.ErrNotExist)
	if err != nil && !missing {
		return "", false
	}

	ours, known := r.written[key]
	switch {
	case missing:
		return key, known
	case known && bytes.Equal(ours, data):
		return "", false
	default:
		return key, true
	}
}

func (r *FileRepository) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.HasPrefix(key, ".") ||
		strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(r.dir, key+fileSuffix), nil
}

func keyOf(name string) (string, bool) {
	if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, fileSuffix) {
		return "", false
	}
	return strings.TrimSuffix(name, fileSuffix), true
}
