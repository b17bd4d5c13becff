// Package fs implements the local install root: install-state queries and package materialization.
package fs

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/pkgr/internal/core/domain"
	"go.trai.ch/pkgr/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.InstallState  = (*InstallRoot)(nil)
	_ ports.PackageWriter = (*InstallRoot)(nil)
)

// maxManifestSize caps the extracted .nuspec size.
const maxManifestSize = 16 << 20

// InstallRoot lays packages out as {root}/{id}.{version}/.
type InstallRoot struct{}

// NewInstallRoot creates a new InstallRoot.
func NewInstallRoot() *InstallRoot {
	return &InstallRoot{}
}

// IsInstalled reports whether the package directory under root holds its archive or manifest.
// The directory name is matched ignoring case and version formatting.
func (r *InstallRoot) IsInstalled(root string, id domain.PackageIdentity) bool {
	if hasArtifacts(filepath.Join(root, domain.PackageDirName(id))) {
		return true
	}

	name, ok := findPackageDir(root, id)
	return ok && hasArtifacts(filepath.Join(root, name))
}

// Write materializes archive under root according to mode.
// It returns false when the package directory already holds an archive or manifest.
// A package directory without either is completed in place.
func (r *InstallRoot) Write(root string, id domain.PackageIdentity, archive []byte, mode domain.SaveMode) (bool, error) {
	manifest, err := readManifest(archive)
	if err != nil {
		return false, zerr.With(err, "package", id.String())
	}

	if mode == domain.SaveModeNone {
		return true, nil
	}

	final := filepath.Join(root, domain.PackageDirName(id))
	if hasArtifacts(final) {
		return false, nil
	}

	if err := os.MkdirAll(root, domain.DirPerm); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrPackageWriteFailed.Error()), "path", root)
	}

	staging, err := os.MkdirTemp(root, domain.StagingDirPrefix+"*")
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrPackageWriteFailed.Error()), "path", root)
	}
	defer func() { _ = os.RemoveAll(staging) }()

	if mode.Has(domain.SaveModeNupkg) {
		if err := writeFile(filepath.Join(staging, domain.PackageFileName(id)), archive); err != nil {
			return false, zerr.With(err, "package", id.String())
		}
	}
	if mode.Has(domain.SaveModeNuspec) {
		if err := writeFile(filepath.Join(staging, domain.PackageManifestFileName(id)), manifest); err != nil {
			return false, zerr.With(err, "package", id.String())
		}
	}
	if err := os.Chmod(staging, domain.DirPerm); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrPackageWriteFailed.Error()), "path", staging)
	}

	if !exists(final) {
		err := os.Rename(staging, final)
		if err == nil {
			return true, nil
		}
		if !exists(final) {
			return false, zerr.With(zerr.Wrap(err, domain.ErrPackageWriteFailed.Error()), "path", final)
		}
	}

	// The directory is left over from an interrupted install or was emptied by hand.
	if hasArtifacts(final) {
		return false, nil
	}
	if err := moveFiles(staging, final); err != nil {
		return false, zerr.With(err, "package", id.String())
	}
	return true, nil
}

// moveFiles moves every file of src into the existing directory dst.
func moveFiles(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPackageWriteFailed.Error()), "path", src)
	}
	for _, e := range entries {
		target := filepath.Join(dst, e.Name())
		if err := os.Rename(filepath.Join(src, e.Name()), target); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrPackageWriteFailed.Error()), "path", target)
		}
	}
	return nil
}

// readManifest validates archive as a zip and returns its root-level .nuspec entry.
func readManifest(archive []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrInvalidPackageArchive.Error())
	}

	for _, f := range zr.File {
		name := strings.TrimPrefix(f.Name, "/")
		if path.Dir(name) != "." || !strings.EqualFold(path.Ext(name), domain.PackageManifestExt) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrInvalidPackageArchive.Error())
		}
		data, err := io.ReadAll(io.LimitReader(rc, maxManifestSize))
		_ = rc.Close()
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrInvalidPackageArchive.Error())
		}
		return data, nil
	}

	return nil, zerr.With(domain.ErrInvalidPackageArchive, "reason", "no manifest entry")
}

func writeFile(name string, data []byte) error {
	//nolint:gosec // Path is constructed from the staging directory and package identity
	if err := os.WriteFile(name, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPackageWriteFailed.Error()), "path", name)
	}
	return nil
}

func hasArtifacts(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == domain.PackageExt || ext == domain.PackageManifestExt {
			return true
		}
	}
	return false
}

func findPackageDir(root string, id domain.PackageIdentity) (string, bool) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", false
	}

	prefix := strings.ToLower(id.ID()) + "."
	want := id.Key()
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || !strings.HasPrefix(strings.ToLower(name), prefix) {
			continue
		}
		if domain.NewPackageIdentity(id.ID(), name[len(prefix):]).Key() == want {
			return name, true
		}
	}
	return "", false
}

func exists(name string) bool {
	_, err := os.Stat(name)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}
