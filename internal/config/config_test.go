package config

import (
	"path/filepath"
	"testing"

	"github.com/purpose168/evo-widgets-cn/internal/env"
	"github.com/stretchr/testify/require"
)

// TestLoad_FromEnv 测试配置从环境变量读取
func TestLoad_FromEnv(t *testing.T) {
	dir := t.TempDir()
	envs := env.NewFromMap(map[string]string{
		"EVO_CLIENT_ID":              "client-1",
		"EVO_DISCOVERY_URL":          "https://discover.example.com",
		"EVO_ACCESS_TOKEN":           "token-1",
		"EVOWIDGETS_DATA_DIR":        dir,
		"EVOWIDGETS_DEBUG":           "true",
		"EVOWIDGETS_DISABLE_METRICS": "1",
	})

	cfg, err := Load(envs)
	require.NoError(t, err)
	require.Equal(t, "client-1", cfg.ClientID)
	require.Equal(t, "https://discover.example.com", cfg.DiscoveryURL)
	require.Equal(t, "token-1", cfg.AccessToken)
	require.Equal(t, dir, cfg.DataDir)
	require.True(t, cfg.Debug)
	require.True(t, cfg.DisableMetrics)

	require.Equal(t, filepath.Join(dir, "logs", "evowidgets.log"), cfg.LogPath())
	require.Equal(t, filepath.Join(dir, "prefs.env"), cfg.PrefsPath())
}

// TestLoad_Defaults 测试布尔开关的默认值
func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(env.NewFromMap(map[string]string{
		"EVOWIDGETS_DATA_DIR": t.TempDir(),
	}))
	require.NoError(t, err)
	require.False(t, cfg.Debug)
	require.False(t, cfg.DisableMetrics)
	require.Empty(t, cfg.DiscoveryURL)
}
