package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// Names of the configuration sources, in priority order.
const (
	sourceEnv      = "env"
	sourceFlags    = "flags"
	sourceJSON     = "json"
	sourceDefaults = "defaults"
)

// layer is one configuration source. Layers added first take priority.
type layer struct {
	source string
	cfg    *StructuredConfig
}

type configBuilder struct {
	layers []layer
	err    error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		layers: make([]layer, 0, 4),
	}
}

func (b *configBuilder) add(source string, cfg *StructuredConfig) *configBuilder {
	b.layers = append(b.layers, layer{source: source, cfg: cfg})
	return b
}

func (b *configBuilder) fail(source string, err error) *configBuilder {
	b.err = errors.Join(b.err, fmt.Errorf("%s: %w", source, err))
	return b
}

// build merges every layer over the defaults and validates the result.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	merged := new(StructuredConfig)
	for _, l := range append(b.layers, layer{source: sourceDefaults, cfg: defaultConfig()}) {
		if err := mergo.Merge(merged, l.cfg); err != nil {
			return nil, fmt.Errorf("error merging %s config: %w", l.source, err)
		}
	}

	if err := merged.validate(); err != nil {
		return nil, err
	}

	return merged, nil
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		return b.fail(sourceEnv, err)
	}

	return b.add(sourceEnv, envCfg)
}

func (b *configBuilder) withFlags() *configBuilder {
	return b.add(sourceFlags, ParseFlags())
}

// withJSON loads the file named by the highest-priority layer that sets
// JSONFilePath. It is a no-op when no layer names a file.
func (b *configBuilder) withJSON() *configBuilder {
	path := ""
	for _, l := range b.layers {
		if l.cfg.JSONFilePath != "" {
			path = l.cfg.JSONFilePath
			break
		}
	}
	if path == "" {
		return b
	}

	jsonCfg, err := parseJSON(path)
	if err != nil {
		return b.fail(sourceJSON, err)
	}

	return b.add(sourceJSON, jsonCfg)
}
