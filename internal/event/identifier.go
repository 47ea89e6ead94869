package event

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net"

	"github.com/denisbrodbeck/machineid"
)

// distinctId 是遥测事件的匿名设备标识，进程内只计算一次。
var distinctId string

const (
	hashKey    = "evowidgets"
	fallbackId = "unknown"
)

// getDistinctId 推导匿名设备标识：优先用以应用名加盐的机器 id，
// 取不到时退化为 MAC 地址的 HMAC，再不行就归入 unknown 一桶。
// 任何分支都不会把原始硬件标识发出去。
func getDistinctId() string {
	if id, err := machineid.ProtectedID(hashKey); err == nil {
		return id
	}
	if macAddr, err := getMacAddr(); err == nil {
		return hashString(macAddr)
	}
	return fallbackId
}

// getMacAddr 返回第一个已启用、非回环且分配了地址的接口的 MAC 地址。
func getMacAddr() (string, error) {
	interfaces, err := net.Interfaces()
	if err != nil {
		return "", err
	}
	for _, iface := range interfaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 || len(iface.HardwareAddr) == 0 {
			continue
		}
		if addrs, err := iface.Addrs(); err == nil && len(addrs) > 0 {
			return iface.HardwareAddr.String(), nil
		}
	}
	return "", fmt.Errorf("未找到具有MAC地址的活动网络接口")
}

// hashString 对字符串做 HMAC-SHA256，返回十六进制结果。
func hashString(str string) string {
	hash := hmac.New(sha256.New, []byte(str))
	hash.Write([]byte(hashKey))
	return hex.EncodeToString(hash.Sum(nil))
}
