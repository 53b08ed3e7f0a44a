package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckConfig_PrintsEffectiveConfigWithoutSecrets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shelter.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
services:
  billing:
    base_url: http://billing.local
    api_key: super-secret
`), 0o644))

	cmd := checkConfigCmd(&path)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "base_url: http://billing.local")
	assert.Contains(t, out.String(), "***")
	assert.NotContains(t, out.String(), "super-secret")
}

func TestCheckConfig_InvalidDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shelter.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  driver: mongo\n"), 0o644))

	cmd := checkConfigCmd(&path)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs(nil)
	assert.ErrorContains(t, cmd.Execute(), "unknown store.driver")
}
