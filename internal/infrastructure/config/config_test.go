package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp 切到空目录，避免读到仓库里的 config.yaml
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTokenExpire)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTokenExpire)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)
	yaml := "server:\n  port: 9000\njwt:\n  secret: from-file\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("BOOKSTORE_JWT_SECRET", "from-env")
	t.Setenv("BOOKSTORE_DATABASE_PASSWORD", "p@ss")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "p@ss", cfg.Database.Password)
}

func TestValidate(t *testing.T) {
	chdirTemp(t)
	cfg, err := Load()
	require.NoError(t, err)

	release := *cfg
	release.Server.Mode = "release"
	assert.Error(t, validate(&release), "release 模式禁止默认密钥")

	badPort := *cfg
	badPort.Server.Port = 70000
	assert.Error(t, validate(&badPort))

	badLimit := *cfg
	badLimit.RateLimit.Requests = 0
	assert.Error(t, validate(&badLimit))
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{User: "root", Password: "pw", Host: "db", Port: 3306, DBName: "bookstore", Charset: "utf8mb4", Loc: "Asia/Shanghai"}
	assert.Equal(t, "root:pw@tcp(db:3306)/bookstore?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai", d.DSN())
}
