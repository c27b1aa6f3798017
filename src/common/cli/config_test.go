package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("JOBLY_CLI_TEST_KEY=from-dotenv\n"), 0600))
	t.Cleanup(func() { os.Unsetenv("JOBLY_CLI_TEST_KEY") })

	require.NoError(t, LoadEnvFiles(filepath.Join(dir, "missing.env"), envFile))
	assert.Equal(t, "from-dotenv", os.Getenv("JOBLY_CLI_TEST_KEY"))
}

func TestInitConfig_FileAndEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "joblyd.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("server:\n  port: 4000\n"), 0600))
	t.Setenv("JOBLYTEST_AUTH_SECRET_KEY", "s3cret")

	require.NoError(t, InitConfig(ConfigOptions{
		ConfigFile: cfgFile,
		EnvPrefix:  "JOBLYTEST",
	}))

	assert.Equal(t, 4000, viper.GetInt("server.port"))
	assert.Equal(t, "s3cret", viper.GetString("auth.secret_key"))
}
