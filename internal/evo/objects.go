package evo

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ObjectClient 访问地学对象服务：列举工作区内的对象。
type ObjectClient struct {
	client *http.Client
}

// NewObjectClient 创建地学对象客户端。
func NewObjectClient(client *http.Client) *ObjectClient {
	return &ObjectClient{client: client}
}

// List 列举工作区内的全部对象。
func (c *ObjectClient) List(ctx context.Context, hubURL, orgID, workspaceID string) ([]Object, error) {
	var out struct {
		Objects []Object `json:"objects"`
	}
	url := fmt.Sprintf("%s/geoscience-object/orgs/%s/workspaces/%s/objects",
		strings.TrimRight(hubURL, "/"), orgID, workspaceID)
	if err := getJSON(ctx, c.client, url, &out); err != nil {
		return nil, fmt.Errorf("列举对象失败: %w", err)
	}
	return out.Objects, nil
}

// ReferenceURL 构造对象的引用地址（Evo 链接生成的输入）。
func ReferenceURL(hubURL, orgID, workspaceID, objectID string) string {
	return fmt.Sprintf("%s/geoscience-object/orgs/%s/workspaces/%s/objects/%s",
		strings.TrimRight(hubURL, "/"), orgID, workspaceID, objectID)
}
