// Package cas implements the content addressed download cache for package archives.
package cas

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/pkgr/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.PackageCache using a file-per-package strategy.
// Archives are named by the hash of the normalized identity key.
type Store struct {
	root string
}

// NewStore creates a new PackageCache backed by the directory at root.
func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

// Get retrieves the cached archive for id. A miss returns nil, nil.
func (s *Store) Get(id domain.PackageIdentity) ([]byte, error) {
	filename := s.filename(id)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "package", id.String())
	}
	if len(data) == 0 {
		return nil, nil
	}
	return data, nil
}

// Put stores the archive for id, replacing any previous entry.
func (s *Store) Put(id domain.PackageIdentity, archive []byte) error {
	if err := os.MkdirAll(s.root, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", s.root)
	}

	tmp, err := os.CreateTemp(s.root, domain.StagingDirPrefix+"*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", s.root)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(archive); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "package", id.String())
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "package", id.String())
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "package", id.String())
	}
	if err := os.Rename(tmpName, s.filename(id)); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "package", id.String())
	}

	return nil
}

func (s *Store) filename(id domain.PackageIdentity) string {
	hash := xxhash.Sum64String(id.Key().String())
	return filepath.Join(s.root, strconv.FormatUint(hash, 16)+domain.PackageExt)
}
