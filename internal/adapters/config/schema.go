package config

// Settingsfile represents the structure of the pkgr.yaml settings file.
//
//	config:
//	  repositoryPath: packages
//	packageRestore:
//	  enabled: "true"
//	packageSources:
//	  - name: nuget.org
//	    url: https://api.nuget.org/v3-flatcontainer/
type Settingsfile struct {
	PackageSources []SourceDTO                   `yaml:"packageSources,omitempty"`
	Sections       map[string]map[string]string `yaml:",inline"`
}

// SourceDTO represents a package source entry.
type SourceDTO struct {
	Name         string   `yaml:"name"`
	URL          string   `yaml:"url"`
	Enabled      *bool    `yaml:"enabled,omitempty"`
	Capabilities []string `yaml:"capabilities,omitempty"`
}
