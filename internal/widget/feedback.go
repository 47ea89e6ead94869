package widget

import (
	"fmt"

	"github.com/purpose168/evo-widgets-cn/internal/field"
)

// FeedbackSchema 返回反馈微件的字段模式。
func FeedbackSchema() field.Schema {
	return field.Schema{
		{Name: "label", Kind: field.KindString},
		{Name: "progress", Kind: field.KindFloat},
		{Name: "message", Kind: field.KindString},
	}
}

// Feedback 是长任务的进度反馈微件：标签、[0,1] 进度与状态消息。
type Feedback struct {
	*Base
}

// NewFeedback 创建反馈微件。
func NewFeedback(name string, opts ...Option) *Feedback {
	return &Feedback{Base: newBase(name, FeedbackSchema(), opts...)}
}

// SetLabel 设置标签。
func (f *Feedback) SetLabel(label string) error {
	return f.Set("label", label)
}

// Progress 更新进度与消息。p 取值 [0,1]，越界时截断。
func (f *Feedback) Progress(p float64, msg string) error {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	if err := f.Set("progress", p); err != nil {
		return err
	}
	return f.Set("message", msg)
}

// FormatProgress 把 [0,1] 的进度格式化为百分比文本，保留一位小数：
// 0.5 渲染为 "50.0%"。
func FormatProgress(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}
