// Package config 加载应用配置：Evo 接入参数与本地数据目录。
// 取值优先级：环境变量 > 工作目录下的 .env 文件 > 默认值。
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/purpose168/evo-widgets-cn/internal/env"
	"github.com/purpose168/evo-widgets-cn/internal/home"
)

const appName = "evowidgets"

// Config 是应用的运行配置。
type Config struct {
	// ClientID 是 Evo 应用的客户端 id。
	ClientID string
	// DiscoveryURL 是 Evo 发现服务地址，空值使用默认地址。
	DiscoveryURL string
	// AccessToken 是 Evo 访问令牌。完整的 OAuth 流程不在范围内，
	// 令牌由外部供给。
	AccessToken string
	// DataDir 是日志、偏好等本地数据的目录。
	DataDir string
	// Debug 开启调试日志与 HTTP 往返记录。
	Debug bool
	// DisableMetrics 关闭遥测上报。
	DisableMetrics bool
}

// Load 读取配置。.env 文件存在时先并入进程环境（不覆盖已有变量）。
func Load(envs env.Env) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ClientID:       envs.Get("EVO_CLIENT_ID"),
		DiscoveryURL:   envs.Get("EVO_DISCOVERY_URL"),
		AccessToken:    envs.Get("EVO_ACCESS_TOKEN"),
		DataDir:        envs.Get("EVOWIDGETS_DATA_DIR"),
		Debug:          boolEnv(envs, "EVOWIDGETS_DEBUG"),
		DisableMetrics: boolEnv(envs, "EVOWIDGETS_DISABLE_METRICS"),
	}

	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(home.Dir(), ".local", "share", appName)
	} else {
		cfg.DataDir = home.Long(cfg.DataDir)
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("创建数据目录 %s 失败: %w", cfg.DataDir, err)
	}
	return cfg, nil
}

// LogPath 返回日志文件路径。
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "logs", appName+".log")
}

// PrefsPath 返回选择偏好文件路径。
func (c *Config) PrefsPath() string {
	return filepath.Join(c.DataDir, "prefs.env")
}

func boolEnv(envs env.Env, key string) bool {
	v, err := strconv.ParseBool(envs.Get(key))
	return err == nil && v
}
