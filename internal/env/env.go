// Package env 抽象环境变量来源，便于在测试中替换真实环境。
package env

import (
	"fmt"
	"os"
)

// Env 是环境变量来源。
type Env interface {
	// Get 返回环境变量的值，不存在时返回空字符串。
	Get(key string) string
	// Env 以 key=value 形式返回全部环境变量。
	Env() []string
}

// New 返回基于进程环境的 [Env]。
func New() Env {
	return &osEnv{}
}

type osEnv struct{}

func (osEnv) Get(key string) string {
	return os.Getenv(key)
}

func (osEnv) Env() []string {
	return os.Environ()
}

// NewFromMap 返回基于给定映射的 [Env]，用于测试与配置注入。
func NewFromMap(m map[string]string) Env {
	return &mapEnv{m: m}
}

type mapEnv struct {
	m map[string]string
}

func (e *mapEnv) Get(key string) string {
	return e.m[key]
}

func (e *mapEnv) Env() []string {
	env := make([]string, 0, len(e.m))
	for k, v := range e.m {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	return env
}
