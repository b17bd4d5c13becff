// Package manifest reads packages.config manifests.
package manifest

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"go.trai.ch/pkgr/internal/core/domain"
	"go.trai.ch/zerr"
)

type packagesFile struct {
	XMLName  xml.Name       `xml:"packages"`
	Packages []packageEntry `xml:"package"`
}

type packageEntry struct {
	ID                    string `xml:"id,attr"`
	Version               string `xml:"version,attr"`
	TargetFramework       string `xml:"targetFramework,attr"`
	DevelopmentDependency string `xml:"developmentDependency,attr"`
}

// Reader implements ports.ManifestReader for packages.config files.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read parses the manifest at path. A missing file yields an empty set.
func (r *Reader) Read(path string) (*domain.ReferenceSet, error) {
	//nolint:gosec // Manifest paths come from the solution or the command line.
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewReferenceSet(), nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestParse.Error()), "path", path)
	}

	return parse(path, data)
}

func parse(path string, data []byte) (*domain.ReferenceSet, error) {
	file, err := decode(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	set := domain.NewReferenceSet()

	for i, entry := range file.Packages {
		id := strings.TrimSpace(entry.ID)
		version := strings.TrimSpace(entry.Version)
		if id == "" || version == "" {
			err := zerr.With(domain.ErrManifestParse, "path", path)
			return nil, zerr.With(err, "reason", "package entry "+strconv.Itoa(i+1)+" needs both id and version")
		}

		set.Add(domain.PackageReference{
			Identity:              domain.NewPackageIdentity(id, version),
			TargetFramework:       strings.TrimSpace(entry.TargetFramework),
			DevelopmentDependency: strings.EqualFold(strings.TrimSpace(entry.DevelopmentDependency), "true"),
		})
	}

	return set, nil
}

// decode reads exactly one packages document. Only whitespace, comments and
// processing instructions may follow the root element.
func decode(data []byte) (packagesFile, error) {
	var file packagesFile

	dec := xml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return file, zerr.With(domain.ErrManifestParse, "reason", "no root element")
		}
		return file, zerr.Wrap(err, domain.ErrManifestParse.Error())
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return file, nil
		}
		if err != nil {
			return file, zerr.Wrap(err, domain.ErrManifestParse.Error())
		}

		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return file, zerr.With(domain.ErrManifestParse, "reason", "content after the root element")
			}
		default:
			return file, zerr.With(domain.ErrManifestParse, "reason", "content after the root element")
		}
	}
}
