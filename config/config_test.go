package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var yml = `
location: bench
mqtt:
  broker: tcp://localhost:1883
`

func ExampleOpenRaw() {
	config, _ := OpenRaw([]byte(yml))
	fmt.Println(config.Location)
	fmt.Println(config.Loop.Period)
	fmt.Println(config.Topic("temp"))
	fmt.Println(config.Holdoff.Motion, config.Holdoff.Environment, config.Holdoff.Limit)
	// Output:
	// bench
	// 2s
	// zk-env/temp
	// 5m0s 12h0m0s 1h0m0s
}

func TestExampleConfig(t *testing.T) {
	c := ExampleConfig
	assert.Equal(t, "zimKnives shop", c.Location)
	require.NotNil(t, c.GPIO.Motion)
	assert.Equal(t, 4, *c.GPIO.Motion)
	assert.Nil(t, c.GPIO.Panic)
	assert.Equal(t, time.Hour, c.Holdoff.Limit.Duration)
	assert.Len(t, c.Limits, 3)
	assert.Equal(t, "high", c.Limits[0].Sense)
	assert.Equal(t, "mail", c.Email.Command)
}

func TestDurationForms(t *testing.T) {
	c, err := OpenRaw([]byte(yml + `
holdoff:
  motion: 300
  environment: 1d
  limit: 90m
loop:
  period: 500ms
`))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, c.Holdoff.Motion.Duration)
	assert.Equal(t, 24*time.Hour, c.Holdoff.Environment.Duration)
	assert.Equal(t, 90*time.Minute, c.Holdoff.Limit.Duration)
	assert.Equal(t, 500*time.Millisecond, c.Loop.Period.Duration)

	_, err = OpenRaw([]byte(yml + "loop:\n  period: soon\n"))
	assert.Error(t, err)
}

func TestBadConfig(t *testing.T) {
	for name, doc := range map[string]string{
		"no location": "mqtt:\n  broker: tcp://x:1883\n",
		"no broker":   "location: bench\n",
		"driver":      yml + "gpio:\n  driver: parport\n",
		"target":      yml + "notify:\n  targets: [pager]\n",
		"limit":       yml + "limits:\n  - parm: temp\n    limit: 1\n",
		"unknown key": yml + "colour: blue\n",
		"smtp server": yml + "email:\n  method: smtp\n",
		"yaml":        "location: [",
	} {
		_, err := OpenRaw([]byte(doc))
		assert.Error(t, err, name)
	}
}

func TestLimitNameDefaultsToParm(t *testing.T) {
	c, err := OpenRaw([]byte(yml + "limits:\n  - parm: temp\n    limit: 90\n    sense: sideways\n    message: hot\n"))
	require.NoError(t, err)
	assert.Equal(t, "temp", c.Limits[0].Name)
	// sense is checked when the limit runs, not here
	assert.Equal(t, "sideways", c.Limits[0].Sense)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zkmonitor.yml")
	require.NoError(t, os.WriteFile(path, []byte(ExampleYaml), 0o600))
	c, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "zk-monitor", c.MQTT.ClientID)

	_, err = Open(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestMarshal(t *testing.T) {
	data, err := ExampleConfig.Marshal()
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "motion: 5m0s"))

	c, err := OpenRaw(data)
	require.NoError(t, err)
	assert.Equal(t, ExampleConfig.Holdoff, c.Holdoff)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	assert.Equal(t, "/tmp/cfg/zkmonitor/zkmonitor.yml", ConfigPath("zkmonitor.yml"))
}
