package util

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ZK_STATE", "/var/lib/zk")

	assert.Equal(t, filepath.Join(home, "abc"), ExpandPath("~/abc"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, "/var/lib/zk/reboot", ExpandPath("$ZK_STATE/reboot"))
	assert.Equal(t, "/etc/zkmonitor.yml", ExpandPath("/etc/zkmonitor.yml"))
	assert.Equal(t, "~other/abc", ExpandPath("~other/abc"))
}
