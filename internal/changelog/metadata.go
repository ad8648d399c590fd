package changelog

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// VersionFromMetadata reads the project's current version from a JSON
// metadata file (by default package.json) containing a top-level "version"
// field. Callers treat any error as non-fatal: warn and fall back to the
// configured default version.
func VersionFromMetadata(path string) (string, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return "", fmt.Errorf("reading metadata file %s: %w", path, err)
	}

	version := strings.TrimSpace(k.String("version"))
	if version == "" {
		return "", fmt.Errorf("metadata file %s has no \"version\" field", path)
	}

	return version, nil
}
