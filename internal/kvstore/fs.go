package kvstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RecordSuffix is the file extension for stored values. The index
// watcher relies on it to tell record files apart from temp files.
const RecordSuffix = ".json"

// FS implements Provider with one file per key under a root directory.
type FS struct {
	root string // absolute path to the store directory
}

// NewFS creates an FS provider rooted at the given directory. The
// directory must already exist.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("kvstore: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("kvstore: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("kvstore: root is not a directory: %s", abs)
	}
	return &FS{root: abs}, nil
}

// Root returns the absolute store directory, for watchers.
func (f *FS) Root() string {
	return f.root
}

// validKey rejects keys that would escape the store directory or collide
// with temp files.
func validKey(key string) error {
	if key == "" {
		return fmt.Errorf("kvstore: empty key")
	}
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return fmt.Errorf("kvstore: invalid key: %s", key)
	}
	if strings.HasPrefix(key, ".") {
		return fmt.Errorf("kvstore: invalid key: %s", key)
	}
	return nil
}

func (f *FS) path(key string) (string, error) {
	if err := validKey(key); err != nil {
		return "", err
	}
	return filepath.Join(f.root, key+RecordSuffix), nil
}

// KeyFromFile maps a store file name back to its key, returning false
// for temp files and foreign files.
func KeyFromFile(name string) (string, bool) {
	if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, RecordSuffix) {
		return "", false
	}
	return strings.TrimSuffix(name, RecordSuffix), true
}

// Keys lists every key in the store.
func (f *FS) Keys() ([]string, error) {
	entries, err := os.ReadDir(f.root)
	if err != nil {
		return nil, fmt.Errorf("kvstore: list keys: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if key, ok := KeyFromFile(e.Name()); ok {
			out = append(out, key)
		}
	}
	return out, nil
}

// Get reads the value stored under key.
func (f *FS) Get(key string) (string, error) {
	p, err := f.path(key)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return "", fmt.Errorf("kvstore: get %s: %w", key, err)
	}
	return string(data), nil
}

// MultiGet bulk-reads keys, omitting any that vanished since listing.
func (f *FS) MultiGet(keys []string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		p, err := f.path(key)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("kvstore: multi-get %s: %w", key, err)
		}
		out[key] = string(data)
	}
	return out, nil
}

// Set atomically writes value: tmp file → fsync → rename.
func (f *FS) Set(key, value string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.root, ".hapbilgi-tmp-*")
	if err != nil {
		return fmt.Errorf("kvstore: create temp: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.WriteString(value); err != nil {
		return fmt.Errorf("kvstore: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("kvstore: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("kvstore: close temp: %w", err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		return fmt.Errorf("kvstore: rename: %w", err)
	}
	success = true
	return nil
}

// Remove deletes a key.
func (f *FS) Remove(key string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		return fmt.Errorf("kvstore: remove %s: %w", key, err)
	}
	return nil
}

// MultiRemove deletes keys in one pass, skipping ones already gone.
func (f *FS) MultiRemove(keys []string) error {
	for _, key := range keys {
		p, err := f.path(key)
		if err != nil {
			return err
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("kvstore: multi-remove %s: %w", key, err)
		}
	}
	return nil
}
