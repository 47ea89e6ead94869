package env

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// prefPrefix 是写入 dotenv 文件的键前缀，避免与其它条目混淆。
const prefPrefix = "EVO_PREF_"

// DotEnv 把选择偏好持久化到 dotenv 文件（微件的 Prefs 协作者）。
// 文件不存在时从空集开始，首次写入时创建。
type DotEnv struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

// NewDotEnv 打开（或准备创建）给定路径的 dotenv 文件。
func NewDotEnv(path string) (*DotEnv, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("读取偏好文件 %s 失败: %w", path, err)
		}
		values = make(map[string]string)
	}
	return &DotEnv{path: path, values: values}, nil
}

// Get 按键读取持久化的选择。
func (d *DotEnv) Get(key string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.values[prefKey(key)]
	return v, ok
}

// Set 持久化选择并立即写回文件。
func (d *DotEnv) Set(key, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	k := prefKey(key)
	if d.values[k] == value {
		return nil
	}
	d.values[k] = value
	if err := godotenv.Write(d.values, d.path); err != nil {
		return fmt.Errorf("写入偏好文件 %s 失败: %w", d.path, err)
	}
	return nil
}

// prefKey 把微件名归一化为 dotenv 键。
func prefKey(key string) string {
	k := strings.ToUpper(key)
	k = strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(k)
	return prefPrefix + k
}
