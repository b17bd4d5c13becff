// Package feed implements the PackageFetcher port for HTTP feeds and local folders.
package feed

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/pkgr/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	httpClientTimeout = 2 * time.Minute
	userAgent         = "pkgr"
	fileScheme        = "file://"
)

// Fetcher implements ports.PackageFetcher.
// HTTP sources use the flat container layout: {base}/{id}/{version}/{id}.{version}.nupkg in lower case.
// Local sources are directories holding {id}.{version}.nupkg files or the same hierarchical layout.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher creates a new Fetcher.
func NewFetcher() *Fetcher {
	return newFetcherWithClient(&http.Client{
		Timeout: httpClientTimeout,
	})
}

// newFetcherWithClient creates a Fetcher with a custom http client (used for testing).
func newFetcherWithClient(client *http.Client) *Fetcher {
	return &Fetcher{
		httpClient: client,
	}
}

// Fetch opens the archive of id from source.
func (f *Fetcher) Fetch(ctx context.Context, source domain.SourceDescriptor, id domain.PackageIdentity) (io.ReadCloser, error) {
	if source.IsRemote() {
		return f.fetchHTTP(ctx, source, id)
	}
	return fetchLocal(source, id)
}

func (f *Fetcher) fetchHTTP(ctx context.Context, source domain.SourceDescriptor, id domain.PackageIdentity) (io.ReadCloser, error) {
	target := packageURL(source.Location, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceUnreachable.Error()), "source", source.String())
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceUnreachable.Error()), "source", source.String())
	}

	switch resp.StatusCode {
	case http.StatusOK:
		if resp.ContentLength > domain.MaxArchiveSize {
			_ = resp.Body.Close()
			err := zerr.With(domain.ErrArchiveTooLarge, "size", resp.ContentLength)
			return nil, zerr.With(err, "url", target)
		}
		return resp.Body, nil
	case http.StatusNotFound:
		_ = resp.Body.Close()
		return nil, notFound(source, id)
	default:
		_ = resp.Body.Close()
		apiErr := zerr.With(domain.ErrFeedRequestFailed, "status_code", resp.StatusCode)
		return nil, zerr.With(apiErr, "url", target)
	}
}

func packageURL(base string, id domain.PackageIdentity) string {
	lowerID := strings.ToLower(id.ID())
	version := domain.NormalizeVersion(id.Version())

	return strings.TrimRight(base, "/") + "/" +
		url.PathEscape(lowerID) + "/" +
		url.PathEscape(version) + "/" +
		url.PathEscape(lowerID+"."+version+domain.PackageExt)
}

func fetchLocal(source domain.SourceDescriptor, id domain.PackageIdentity) (io.ReadCloser, error) {
	dir := strings.TrimPrefix(source.Location, fileScheme)

	info, err := os.Stat(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceUnreachable.Error()), "source", source.String())
	}
	if !info.IsDir() {
		return nil, zerr.With(domain.ErrSourceUnreachable, "source", source.String())
	}

	lowerID := strings.ToLower(id.ID())
	version := domain.NormalizeVersion(id.Version())
	candidates := []string{
		filepath.Join(dir, domain.PackageFileName(id)),
		filepath.Join(dir, lowerID, version, lowerID+"."+version+domain.PackageExt),
	}
	for _, candidate := range candidates {
		//nolint:gosec // Candidate paths are derived from the configured source directory.
		if f, err := os.Open(candidate); err == nil {
			return f, nil
		}
	}

	if name, ok := findFlatArchive(dir, id); ok {
		//nolint:gosec // The name comes from listing the source directory.
		f, err := os.Open(filepath.Join(dir, name))
		if err == nil {
			return f, nil
		}
	}

	return nil, notFound(source, id)
}

// findFlatArchive matches {id}.{version}.nupkg ignoring case and version formatting.
func findFlatArchive(dir string, id domain.PackageIdentity) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}

	prefix := strings.ToLower(id.ID()) + "."
	want := id.Key()
	for _, e := range entries {
		name := strings.ToLower(e.Name())
		if e.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, domain.PackageExt) {
			continue
		}
		version := strings.TrimSuffix(strings.TrimPrefix(name, prefix), domain.PackageExt)
		if domain.NewPackageIdentity(id.ID(), version).Key() == want {
			return e.Name(), true
		}
	}
	return "", false
}

func notFound(source domain.SourceDescriptor, id domain.PackageIdentity) error {
	err := zerr.With(domain.ErrPackageNotFound, "package", id.String())
	return zerr.With(err, "source", source.String())
}
