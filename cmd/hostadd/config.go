package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wasmlibs/hostadd"
)

const (
	policyFail     = "fail"
	policyWrap     = "wrap"
	policySaturate = "saturate"
)

// config is the resolved CLI configuration: defaults, overridden by the YAML
// file, overridden by flags.
type config struct {
	Policy string `yaml:"policy"`
	Module string `yaml:"module"`
}

func defaultConfig() config {
	return config{Policy: policyFail, Module: hostadd.ModuleName}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func resolve(opts *options) (config, error) {
	cfg := defaultConfig()

	if opts.configPath != "" {
		var err error
		if cfg, err = loadConfig(opts.configPath); err != nil {
			return cfg, err
		}
	}
	if opts.policy != "" {
		cfg.Policy = opts.policy
	}
	if opts.module != "" {
		cfg.Module = opts.module
	}
	return cfg, cfg.validate()
}

func (c config) validate() error {
	switch c.Policy {
	case policyFail, policyWrap, policySaturate:
	default:
		return fmt.Errorf("unknown overflow policy %q", c.Policy)
	}
	if c.Module == "" {
		return errors.New("module name must not be empty")
	}
	return nil
}

// exporter returns the function exporter matching the configured policy.
// validate ensures the policy is one of the three known values.
func (c config) exporter() hostadd.FunctionExporter {
	e := hostadd.NewFunctionExporter()
	switch c.Policy {
	case policyWrap:
		e = e.WithWrapOnOverflow()
	case policySaturate:
		e = e.WithSaturateOnOverflow()
	}
	return e
}
