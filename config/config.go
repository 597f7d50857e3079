// Package config loads the per-language query and provider configuration
// the engine needs beyond its two positional CLI arguments: the literal
// tree-query patterns for sources and sinks are language-specific, so they
// are supplied by the caller rather than hardcoded.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/viant/scanexr/cst"
	"github.com/viant/scanexr/seed"
)

// Query is one named tree-query plus the capture index that names the
// candidate node within a match.
type Query struct {
	Name         string `yaml:"name"`
	Pattern      string `yaml:"pattern"`
	CaptureIndex uint32 `yaml:"captureIndex"`
}

func (q Query) asCST() cst.Query {
	return cst.Query{Pattern: q.Pattern, CaptureIndex: q.CaptureIndex}
}

// Language is the full configuration for one supported language provider:
// its seeding queries and nothing else — the provider itself is selected
// by name in Go code (config only supplies language-specific literals).
type Language struct {
	Name          string  `yaml:"name"`
	SourceQueries []Query `yaml:"sourceQueries"`
	SinkQuery     Query   `yaml:"sinkQuery"`
}

// Config is the top-level document: one entry per supported language
// name, keyed the way the CLI's positional <language-name> argument
// selects it.
type Config struct {
	Languages map[string]Language `yaml:"languages"`
}

// Load reads and parses a YAML config document from path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Language looks up a named language's configuration.
func (c *Config) Language(name string) (Language, error) {
	lang, ok := c.Languages[name]
	if !ok {
		return Language{}, fmt.Errorf("config: unknown language %q", name)
	}
	return lang, nil
}

// SourceQuerySpecs and SinkQuerySpec adapt this package's YAML-facing types
// to the seed.QuerySpec shape seed.Config expects, keeping that package
// free of a YAML dependency.
func (l Language) SourceQuerySpecs() []seed.QuerySpec {
	specs := make([]seed.QuerySpec, len(l.SourceQueries))
	for i, q := range l.SourceQueries {
		specs[i] = seed.QuerySpec{Name: q.Name, Query: q.asCST()}
	}
	return specs
}

// SinkQuerySpec adapts the configured sink query to seed.QuerySpec.
func (l Language) SinkQuerySpec() seed.QuerySpec {
	return seed.QuerySpec{Name: l.SinkQuery.Name, Query: l.SinkQuery.asCST()}
}
