package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port    int      `json:"port"`
	Origins []string `json:"origins"`
	Portal  struct {
		LoginUrl string `json:"login_url"`
	} `json:"portal"`
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "config.json5"), []byte(`{
		// comments and trailing commas are allowed
		port: 5000,
		origins: ["http://localhost:5173"],
		portal: { login_url: "https://portal.example/Login.aspx" },
	}`), 0600)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, 5000, cfg.Port)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.Origins)
	require.Equal(t, "https://portal.example/Login.aspx", cfg.Portal.LoginUrl)

	err = os.WriteFile(filepath.Join(dir, "config.local.json5"), []byte(`{ port: 8080 }`), 0600)
	require.NoError(t, err)

	cfg, err = ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "https://portal.example/Login.aspx", cfg.Portal.LoginUrl)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GRADEFETCH_TEST_PORT", "9000")
	t.Setenv("GRADEFETCH_TEST_ORIGINS", "http://a.example, ,http://b.example")
	t.Setenv("GRADEFETCH_TEST_BIN", "/usr/bin/chromium")
	t.Setenv("GRADEFETCH_TEST_BAD_INT", "nine")

	port := 5000
	EnvInt(&port, "GRADEFETCH_TEST_PORT")
	require.Equal(t, 9000, port)

	bad := 1
	EnvInt(&bad, "GRADEFETCH_TEST_BAD_INT")
	require.Equal(t, 1, bad)

	var origins []string
	EnvList(&origins, "GRADEFETCH_TEST_ORIGINS")
	require.Equal(t, []string{"http://a.example", "http://b.example"}, origins)

	bin := "chrome"
	EnvString(&bin, "GRADEFETCH_TEST_BIN")
	require.Equal(t, "/usr/bin/chromium", bin)

	unset := "kept"
	EnvString(&unset, "GRADEFETCH_TEST_UNSET")
	require.Equal(t, "kept", unset)
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	err := os.WriteFile(path, []byte("GRADEFETCH_TEST_FROM_FILE=hello\n"), 0600)
	require.NoError(t, err)
	t.Setenv("GRADEFETCH_TEST_FROM_FILE", "")
	os.Unsetenv("GRADEFETCH_TEST_FROM_FILE")

	require.NoError(t, LoadEnv(path, filepath.Join(dir, "missing.env")))
	require.Equal(t, "hello", os.Getenv("GRADEFETCH_TEST_FROM_FILE"))
}
