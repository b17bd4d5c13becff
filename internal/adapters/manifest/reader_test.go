package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pkgr/internal/adapters/manifest"
	"go.trai.ch/pkgr/internal/core/domain"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), domain.ManifestFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func TestReader_Read(t *testing.T) {
	path := writeManifest(t, `<?xml version="1.0" encoding="utf-8"?>
<packages>
  <package id="Newtonsoft.Json" version="13.0.1" targetFramework="net48" />
  <package id="xunit" version="2.4.2" developmentDependency="true" />
  <package id="newtonsoft.json" version="13.0.1" />
</packages>`)

	set, err := manifest.NewReader().Read(path)

	require.NoError(t, err)
	require.Equal(t, 2, set.Len())

	refs := set.Slice()
	assert.Equal(t, "Newtonsoft.Json", refs[0].Identity.ID())
	assert.Equal(t, "net48", refs[0].TargetFramework)
	assert.False(t, refs[0].DevelopmentDependency)
	assert.Equal(t, "xunit", refs[1].Identity.ID())
	assert.True(t, refs[1].DevelopmentDependency)
}

func TestReader_MissingFileIsEmpty(t *testing.T) {
	set, err := manifest.NewReader().Read(filepath.Join(t.TempDir(), domain.ManifestFileName))

	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
}

func TestReader_EmptyRootIsEmpty(t *testing.T) {
	set, err := manifest.NewReader().Read(writeManifest(t, "<packages />\n<!-- generated -->\n"))

	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
}

func TestReader_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"broken xml", `<packages><package id="A" version="1.0.0">`},
		{"wrong root", `<project><package id="A" version="1.0.0"/></project>`},
		{"missing version", `<packages><package id="A"/></packages>`},
		{"missing id", `<packages><package version="1.0.0"/></packages>`},
		{"empty file", ``},
		{"whitespace only", "   \n"},
		{"trailing element", `<packages><package id="A" version="1.0"/></packages><junk`},
		{"second root", `<packages/><packages/>`},
		{"trailing text", `<packages><package id="A" version="1.0"/></packages> tail`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, tt.content)

			_, err := manifest.NewReader().Read(path)

			require.Error(t, err)
			assert.Contains(t, err.Error(), domain.ErrManifestParse.Error())
		})
	}
}

func TestReader_DirectoryIsParseError(t *testing.T) {
	dir := t.TempDir()

	_, err := manifest.NewReader().Read(dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrManifestParse.Error())
}
