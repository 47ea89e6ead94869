package bind

import (
	"errors"

	"github.com/purpose168/evo-widgets-cn/internal/field"
)

// ErrDisposed 表示在控制器销毁后尝试建立新绑定。
var ErrDisposed = errors.New("绑定控制器已销毁")

// asListenerError 判断 err 是否为（或包装了）订阅者错误。
// 订阅者错误不代表写入失败，提交流程据此决定是否继续刷新宿主。
func asListenerError(err error, target **field.ListenerError) bool {
	return errors.As(err, target)
}
