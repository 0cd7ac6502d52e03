package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load(writeYAML(t, "app:\n  name: demo\n"))
	require.NoError(t, err)

	assert.Equal(t, "demo", c.App.Name)
	assert.Equal(t, 8081, c.App.Admin.Port)
	assert.Equal(t, "root@example.com", c.Admin.ProtectedEmail)
	assert.Equal(t, "local", c.Upload.Provider)
	assert.Equal(t, "cookie", c.Flash.Store)
	assert.EqualValues(t, 16, c.Limits.MaxBodyMB)
}

func TestLoadFileAndEnv(t *testing.T) {
	p := writeYAML(t, `
db:
  driver: mysql
  dsn: mysql://db:3306/forum
upload:
  provider: imgur
  imgurClientID: abc
redis:
  addr: 127.0.0.1:6379
`)
	t.Setenv("APP_DB_DRIVER", "postgres")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "postgres", c.DB.Driver)
	assert.Equal(t, "mysql://db:3306/forum", c.DB.DSN)
	assert.Equal(t, "abc", c.Upload.ImgurClientID)
	assert.Equal(t, "127.0.0.1:6379", c.Redis.Addr)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
