package config

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/anchore/vercheck/internal"
)

// advisories describes where OSV advisory records are downloaded from and read from.
type advisories struct {
	Source    string `yaml:"source" json:"source" mapstructure:"source"`          // --source, a zip archive, directory or JSON file of records (defaults to the cached download)
	URL       string `yaml:"url" json:"url" mapstructure:"url"`                   // --url, where fetch downloads the advisory archive from
	CacheDir  string `yaml:"cache-dir" json:"cache-dir" mapstructure:"cache-dir"` // --cache-dir, where fetch stores the advisory archive
	Ecosystem string `yaml:"ecosystem" json:"ecosystem" mapstructure:"ecosystem"` // when set, affected entries naming another ecosystem are ignored
}

func (cfg advisories) loadDefaultValues(v *viper.Viper) {
	// e.g. ~/.cache/vercheck/advisories
	v.SetDefault("advisories.cache-dir", path.Join(xdg.CacheHome, internal.ApplicationName, "advisories"))
	v.SetDefault("advisories.url", internal.DefaultAdvisoryURL)
	v.SetDefault("advisories.source", "")
	v.SetDefault("advisories.ecosystem", "")
}

func (cfg *advisories) parseConfigValues() error {
	if strings.TrimSpace(cfg.URL) == "" {
		return fmt.Errorf("no advisory URL configured")
	}
	if _, err := cfg.archiveName(); err != nil {
		return err
	}
	return nil
}

// ArchivePath is where the downloaded advisory archive is stored.
func (cfg advisories) ArchivePath() string {
	name, err := cfg.archiveName()
	if err != nil {
		name = path.Base(internal.DefaultAdvisoryURL)
	}
	return filepath.Join(cfg.CacheDir, name)
}

// SourcePath is the configured source, falling back to the downloaded archive.
func (cfg advisories) SourcePath() string {
	if cfg.Source != "" {
		return cfg.Source
	}
	return cfg.ArchivePath()
}

func (cfg advisories) archiveName() (string, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return "", fmt.Errorf("bad advisory URL %q: %w", cfg.URL, err)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return "", fmt.Errorf("advisory URL %q does not name a file", cfg.URL)
	}
	return name, nil
}
