// Package config loads dynamic-DNS update jobs from YAML documents.
//
// A document carries an optional defaults mapping, an updates list and a
// logging block. Defaults are shallow-merged under each updates entry
// (entry keys win) and the merged map is expanded and validated into one
// or more immutable JobConfig values.
package config

import (
	"fmt"
	"os"

	"golang-ddnsd/internal/pkg/logging"

	"gopkg.in/yaml.v3"
)

// ConfigSet is the ordered result of loading one configuration document.
type ConfigSet struct {
	Logging logging.LogConfig
	Jobs    []JobConfig
}

// ParseError reports a document that is not a valid configuration mapping.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("failed to parse config: %v", e.Err)
	}
	return fmt.Sprintf("failed to parse config %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type document struct {
	Logging  logging.LogConfig `yaml:"logging"`
	Defaults map[string]any    `yaml:"defaults"`
	Updates  []map[string]any  `yaml:"updates"`
}

// Load parses a configuration document. An empty document yields a
// ConfigSet with zero jobs. Structural problems (not a mapping, defaults
// not a mapping, updates not a list of mappings) surface as *ParseError;
// invalid job values surface as *ValidationError.
func Load(data []byte) (*ConfigSet, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Err: err}
	}

	set := &ConfigSet{Logging: doc.Logging}
	for i, entry := range doc.Updates {
		merged := make(map[string]any, len(doc.Defaults)+len(entry))
		for k, v := range doc.Defaults {
			merged[k] = v
		}
		for k, v := range entry {
			merged[k] = v
		}

		jobs, err := buildJobs(merged)
		if err != nil {
			return nil, fmt.Errorf("updates entry %d: %w", i, err)
		}
		set.Jobs = append(set.Jobs, jobs...)
	}
	return set, nil
}

// LoadFile reads and parses the configuration file at path.
func LoadFile(path string) (*ConfigSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	set, err := Load(data)
	if err != nil {
		if perr, ok := err.(*ParseError); ok {
			perr.Source = path
			return nil, perr
		}
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return set, nil
}
