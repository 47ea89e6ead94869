package evo

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// DefaultDiscoveryURL 是 Evo 发现服务的默认地址。
const DefaultDiscoveryURL = "https://discover.api.seequent.com"

// DiscoveryClient 访问 Evo 发现服务：按访问令牌列举组织与中心。
type DiscoveryClient struct {
	client  *http.Client
	baseURL string
}

// NewDiscoveryClient 创建发现服务客户端。baseURL 为空时使用默认地址。
func NewDiscoveryClient(client *http.Client, baseURL string) *DiscoveryClient {
	if baseURL == "" {
		baseURL = DefaultDiscoveryURL
	}
	return &DiscoveryClient{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Discover 返回令牌可访问的全部组织（含各自的中心列表）。
func (c *DiscoveryClient) Discover(ctx context.Context) ([]Organization, error) {
	var out struct {
		Organizations []Organization `json:"organizations"`
	}
	url := c.baseURL + "/evo/identity/v2/discovery"
	if err := getJSON(ctx, c.client, url, &out); err != nil {
		return nil, fmt.Errorf("服务发现失败: %w", err)
	}
	return out.Organizations, nil
}
