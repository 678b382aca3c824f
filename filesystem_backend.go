package kvdocs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// File backend configuration
const (
	DefaultFilePermissions = 0644
	DefaultDirPermissions  = 0755
)

// FilesystemBackend implements Backend using the local filesystem.
// Each key is stored as one file under the base directory. Path separators
// in keys are escaped so a key never walks out of the base directory.
type FilesystemBackend struct {
	basePath string
	locks    *StripedLocks // Fine-grained locking per key
}

// NewFilesystemBackend creates a new filesystem backend with 32 lock stripes
func NewFilesystemBackend(basePath string) *FilesystemBackend {
	return &FilesystemBackend{
		basePath: basePath,
		locks:    NewStripedLocks(32),
	}
}

// NewFilesystemBackendWithStripes creates a filesystem backend with custom stripe count
func NewFilesystemBackendWithStripes(basePath string, stripes int) *FilesystemBackend {
	return &FilesystemBackend{
		basePath: basePath,
		locks:    NewStripedLocks(stripes),
	}
}

func (b *FilesystemBackend) getPath(key string) string {
	return filepath.Join(b.basePath, escapeKey(key))
}

// escapeKey makes a key safe to use as a single file name
func escapeKey(key string) string {
	return strings.ReplaceAll(key, string(os.PathSeparator), "%2F")
}

func unescapeKey(name string) string {
	return strings.ReplaceAll(name, "%2F", string(os.PathSeparator))
}

func (b *FilesystemBackend) Get(ctx context.Context, key string) ([]byte, error) {
	unlock := b.locks.RLock(key)
	defer unlock()

	data, err := os.ReadFile(b.getPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		if os.IsPermission(err) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return data, nil
}

func (b *FilesystemBackend) Put(ctx context.Context, key string, data []byte) error {
	unlock := b.locks.Lock(key)
	defer unlock()

	if err := os.MkdirAll(b.basePath, DefaultDirPermissions); err != nil {
		return err
	}
	return os.WriteFile(b.getPath(key), data, DefaultFilePermissions)
}

func (b *FilesystemBackend) Delete(ctx context.Context, key string) (int64, error) {
	unlock := b.locks.Lock(key)
	defer unlock()

	err := os.Remove(b.getPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		if os.IsPermission(err) {
			return 0, ErrUnauthorized
		}
		return 0, err
	}
	return 1, nil
}

func (b *FilesystemBackend) Keys(ctx context.Context, prefix string) ([]string, error) {
	entries, err := os.ReadDir(b.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // No writes yet means no keys
		}
		return nil, err
	}

	var keys []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		key := unescapeKey(entry.Name())
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (b *FilesystemBackend) Ping(ctx context.Context) error {
	info, err := os.Stat(b.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			// Directory is created lazily on first Put
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return WithContext(ErrInvalidConfig, map[string]interface{}{
			"basePath": b.basePath,
			"reason":   "not a directory",
		})
	}
	return nil
}

func (b *FilesystemBackend) Close() error {
	return nil
}
