package evo

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// WorkspaceClient 访问工作区服务：列举组织在某个中心下的工作区。
type WorkspaceClient struct {
	client *http.Client
}

// NewWorkspaceClient 创建工作区客户端。
func NewWorkspaceClient(client *http.Client) *WorkspaceClient {
	return &WorkspaceClient{client: client}
}

// List 列举 hubURL 中心下组织 orgID 的工作区。
func (c *WorkspaceClient) List(ctx context.Context, hubURL, orgID string) ([]Workspace, error) {
	var out struct {
		Results []Workspace `json:"results"`
	}
	url := fmt.Sprintf("%s/workspace/orgs/%s/workspaces", strings.TrimRight(hubURL, "/"), orgID)
	if err := getJSON(ctx, c.client, url, &out); err != nil {
		return nil, fmt.Errorf("列举工作区失败: %w", err)
	}
	return out.Results, nil
}
