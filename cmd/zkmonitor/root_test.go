package main

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basement-tech/Monitoring-zimKnives/config"
	"github.com/basement-tech/Monitoring-zimKnives/services"
)

var register sync.Once

func execute(t *testing.T, args ...string) (string, error) {
	register.Do(registerServices)
	out := &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRegisterServices(t *testing.T) {
	register.Do(registerServices)
	assert.Equal(t, []string{"monitor", "pingtest"}, services.IDs())
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "zkmonitor dev\n", out)
}

func TestConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zkmonitor.yml")
	require.NoError(t, os.WriteFile(path, []byte(config.ExampleYaml), 0o644))

	out, err := execute(t, "config", "-c", path)
	require.NoError(t, err)
	assert.Contains(t, out, "location: zimKnives shop")
	assert.Contains(t, out, "namespace: zk-env")
}

func TestConfigMissing(t *testing.T) {
	_, err := execute(t, "config", "-c", filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestRunUnknownService(t *testing.T) {
	_, err := execute(t, "run", "heating")
	assert.ErrorContains(t, err, "unknown service heating")
}
