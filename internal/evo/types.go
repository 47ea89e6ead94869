// Package evo 实现 Evo 云服务协作者：服务发现、工作区与地学对象
// 客户端，以及供微件消费的服务管理器。微件核心只通过窄接口使用
// 本包，不感知 HTTP 细节。
package evo

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Organization 是发现服务返回的组织及其可用中心。
type Organization struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	Hubs        []Hub     `json:"hubs"`
}

// Hub 是组织下的一个服务中心。
type Hub struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
	URL         string `json:"url"`
}

// Workspace 是中心下的一个工作区。
type Workspace struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
}

// Object 是地学对象服务返回的对象条目。
type Object struct {
	ID       uuid.UUID `json:"object_id"`
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	SchemaID string    `json:"schema"`
	Created  time.Time `json:"created_at"`
	Modified time.Time `json:"modified_at"`
}

// TypeKey 从对象的模式 id 提取类型键，
// 例如 "/objects/pointset/1.2.1/pointset.schema.json" → "pointset"。
func (o Object) TypeKey() string {
	parts := strings.Split(strings.Trim(o.SchemaID, "/"), "/")
	if len(parts) >= 2 && parts[0] == "objects" {
		return parts[1]
	}
	return ""
}
