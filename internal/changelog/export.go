package changelog

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlDocument is the stable on-disk shape of an exported changelog.
// Field order is fixed by the struct definition, so exports of identical
// input are byte-identical apart from the generated_at stamp.
type yamlDocument struct {
	GeneratedAt string        `yaml:"generated_at"`
	Versions    []yamlVersion `yaml:"versions"`
}

type yamlVersion struct {
	Version    string       `yaml:"version"`
	Unreleased bool         `yaml:"unreleased,omitempty"`
	Date       string       `yaml:"date"`
	Commits    []yamlCommit `yaml:"commits"`
}

type yamlCommit struct {
	Hash     string `yaml:"hash"`
	Type     string `yaml:"type"`
	Scope    string `yaml:"scope,omitempty"`
	Subject  string `yaml:"subject"`
	Author   string `yaml:"author"`
	Date     string `yaml:"date"`
	Breaking bool   `yaml:"breaking,omitempty"`
}

// ExportYAML writes the classified model as YAML for downstream tooling.
// The prefix-stripped description is exported as the subject, matching what
// the markdown renderer emits.
func ExportYAML(d *Document, w io.Writer) error {
	doc := yamlDocument{
		Versions: make([]yamlVersion, 0, len(d.Buckets)),
	}
	if len(d.Buckets) > 0 {
		doc.GeneratedAt = d.Buckets[0].Date.Format("2006-01-02")
	}

	for _, b := range d.Buckets {
		doc.Versions = append(doc.Versions, toYAMLVersion(b))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encoding changelog YAML: %w", err)
	}
	return enc.Close()
}

// toYAMLVersion converts a bucket into its export representation.
func toYAMLVersion(b Bucket) yamlVersion {
	v := yamlVersion{
		Version:    b.Version,
		Unreleased: b.Unreleased,
		Date:       b.Date.Format("2006-01-02"),
		Commits:    make([]yamlCommit, 0, len(b.Commits)),
	}
	for _, c := range b.Commits {
		v.Commits = append(v.Commits, yamlCommit{
			Hash:     c.Hash,
			Type:     string(c.Type),
			Scope:    c.Scope,
			Subject:  c.Description,
			Author:   c.Author,
			Date:     c.When.Format("2006-01-02"),
			Breaking: c.Breaking,
		})
	}
	return v
}
