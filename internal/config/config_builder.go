// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// configBuilder collects partial configs from the supported sources. Sources
// are merged in the order they were added, and an earlier source wins over a
// later one, so env beats flags beats the JSON file.
type configBuilder struct {
	sources []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{sources: make([]*StructuredConfig, 0, 4)}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	merged := new(StructuredConfig)
	for _, src := range b.sources {
		if err := mergo.Merge(merged, src); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}
	merged.applyDefaults()

	return merged, merged.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	fromEnv := &StructuredConfig{}
	if err := parseEnv(fromEnv); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.sources = append(b.sources, fromEnv)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	b.sources = append(b.sources, ParseFlags())
	return b
}

// withJSON loads the JSON file only when an earlier source named one.
func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, src := range b.sources {
		if src.JSONFilePath != "" {
			jsonPath = src.JSONFilePath
		}
	}
	if jsonPath == "" {
		return b
	}

	fromFile, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.sources = append(b.sources, fromFile)
	return b
}
