package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "hostadd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, "policy: saturate\nmodule: math\n")

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, config{Policy: "saturate", Module: "math"}, cfg)
}

func TestLoadConfig_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "policy: wrap\n")

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, config{Policy: "wrap", Module: "env"}, cfg)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := writeConfig(t, "policy: [not, a, string\n")

	_, err := loadConfig(path)
	require.ErrorContains(t, err, "invalid config")
}

func TestResolve(t *testing.T) {
	path := writeConfig(t, "policy: saturate\n")

	tests := []struct {
		name     string
		opts     *options
		expected config
	}{
		{
			name:     "defaults",
			opts:     &options{},
			expected: config{Policy: "fail", Module: "env"},
		},
		{
			name:     "file",
			opts:     &options{configPath: path},
			expected: config{Policy: "saturate", Module: "env"},
		},
		{
			name:     "flags override file",
			opts:     &options{configPath: path, policy: "wrap", module: "math"},
			expected: config{Policy: "wrap", Module: "math"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := resolve(tc.opts)
			require.NoError(t, err)
			require.Equal(t, tc.expected, cfg)
		})
	}
}

func TestResolve_UnknownPolicy(t *testing.T) {
	_, err := resolve(&options{policy: "clamp"})
	require.ErrorContains(t, err, `unknown overflow policy "clamp"`)
}

func TestResolve_EmptyModule(t *testing.T) {
	path := writeConfig(t, `module: ""`)

	_, err := resolve(&options{configPath: path})
	require.ErrorContains(t, err, "module name must not be empty")
}
