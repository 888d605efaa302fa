package sdk_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HumanFS/humanfs-apps-sdk/pkg/log"
	"github.com/HumanFS/humanfs-apps-sdk/pkg/sdk"
)

// clearEnv unsets every variable LoadConfig reads for the rest of the test.
func clearEnv(t *testing.T) {
	for _, key := range []string{
		"SAFE_HOST_URL", "SAFE_SDK_VERSION", "SAFE_REQUEST_TIMEOUT", "SAFE_PING_INTERVAL",
		"SAFE_HANDSHAKE_TIMEOUT", "SAFE_METRICS_ENABLED", "LOG_FORMAT", "LOG_LEVEL", "LOG_OUTPUT",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SAFE_CONFIG_DIR_PATH", t.TempDir())
	t.Setenv("SAFE_HOST_URL", "ws://localhost:3000/ws")

	conf, err := sdk.LoadConfig(log.NewNoopLogger())
	require.NoError(t, err)

	assert.Equal(t, "ws://localhost:3000/ws", conf.HostURL)
	assert.Equal(t, "1.0.0", conf.SDKVersion)
	assert.Equal(t, 30*time.Second, conf.RequestTimeout)
	assert.Equal(t, 5*time.Second, conf.PingInterval)
	assert.False(t, conf.MetricsEnabled)
	assert.Equal(t, "console", conf.Log.Format)
	assert.Equal(t, log.LevelInfo, conf.Log.Level)

	dialerConf := conf.DialerConfig()
	assert.Equal(t, conf.RequestTimeout, dialerConf.RequestTimeout)
	assert.Equal(t, conf.HandshakeTimeout, dialerConf.HandshakeTimeout)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(
		"SAFE_HOST_URL=wss://host.example/apps\n"+
			"SAFE_SDK_VERSION=9.1.0\n"+
			"SAFE_REQUEST_TIMEOUT=2s\n"+
			"LOG_FORMAT=json\n",
	), 0o600))
	t.Setenv("SAFE_CONFIG_DIR_PATH", dir)
	t.Setenv("SAFE_SDK_VERSION", "2.0.0")

	conf, err := sdk.LoadConfig(log.NewNoopLogger())
	require.NoError(t, err)

	assert.Equal(t, "wss://host.example/apps", conf.HostURL)
	assert.Equal(t, "2.0.0", conf.SDKVersion, "environment wins over .env")
	assert.Equal(t, 2*time.Second, conf.RequestTimeout)
	assert.Equal(t, "json", conf.Log.Format)
}

func TestLoadConfig_YAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(
		"host_url: wss://host.example/apps\n"+
			"sdk_version: 3.0.0\n"+
			"request_timeout: 2s\n"+
			"metrics_enabled: true\n"+
			"log:\n"+
			"  format: logfmt\n"+
			"  level: debug\n",
	), 0o600))
	t.Setenv("SAFE_CONFIG_DIR_PATH", dir)
	t.Setenv("SAFE_SDK_VERSION", "4.0.0")

	conf, err := sdk.LoadConfig(log.NewNoopLogger())
	require.NoError(t, err)

	assert.Equal(t, "wss://host.example/apps", conf.HostURL)
	assert.Equal(t, "4.0.0", conf.SDKVersion, "environment wins over config.yaml")
	assert.Equal(t, 2*time.Second, conf.RequestTimeout)
	assert.Equal(t, 5*time.Second, conf.PingInterval, "defaults fill unset fields")
	assert.True(t, conf.MetricsEnabled)
	assert.Equal(t, "logfmt", conf.Log.Format)
	assert.Equal(t, log.LevelDebug, conf.Log.Level)
	assert.Equal(t, "stderr", conf.Log.Output)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(
		"host_url: ws://localhost:3000\nhost_port: 3000\n",
	), 0o600))
	t.Setenv("SAFE_CONFIG_DIR_PATH", dir)

	_, err := sdk.LoadConfig(log.NewNoopLogger())
	assert.ErrorIs(t, err, sdk.ErrInvalidConfig, "unknown keys are rejected")
}

func TestLoadConfig_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("SAFE_CONFIG_DIR_PATH", t.TempDir())

	_, err := sdk.LoadConfig(log.NewNoopLogger())
	assert.ErrorIs(t, err, sdk.ErrInvalidConfig, "host url is required")

	t.Setenv("SAFE_HOST_URL", "not a url")
	_, err = sdk.LoadConfig(log.NewNoopLogger())
	assert.ErrorIs(t, err, sdk.ErrInvalidConfig)

	t.Setenv("SAFE_HOST_URL", "ws://localhost:3000")
	t.Setenv("SAFE_REQUEST_TIMEOUT", "soon")
	_, err = sdk.LoadConfig(log.NewNoopLogger())
	assert.ErrorIs(t, err, sdk.ErrInvalidConfig)
}
