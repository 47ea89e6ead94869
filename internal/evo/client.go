package evo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/purpose168/evo-widgets-cn/internal/log"
)

// TokenProvider 提供访问令牌。完整的 OAuth 流程不在本仓库范围内，
// 令牌由配置或环境变量供给。
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// StaticToken 是固定令牌的 [TokenProvider]。
type StaticToken string

// AccessToken 实现 [TokenProvider] 接口。
func (t StaticToken) AccessToken(context.Context) (string, error) {
	return string(t), nil
}

// bearerTransport 为每个请求附加 Bearer 认证头。
type bearerTransport struct {
	token TokenProvider
	base  http.RoundTripper
}

// RoundTrip 实现 http.RoundTripper 接口。
func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.token.AccessToken(req.Context())
	if err != nil {
		return nil, fmt.Errorf("获取访问令牌失败: %w", err)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	clone.Header.Set("Accept", "application/json")
	return t.base.RoundTrip(clone)
}

// NewHTTPClient 创建带 Bearer 认证的 HTTP 客户端。
// 调试模式下叠加请求/响应日志传输层。
func NewHTTPClient(token TokenProvider, debug bool) *http.Client {
	var base http.RoundTripper = http.DefaultTransport
	if debug {
		base = &log.HTTPRoundTripLogger{Transport: base}
	}
	return &http.Client{
		Transport: &bearerTransport{token: token, base: base},
	}
}

// getJSON 执行 GET 请求并把 JSON 响应解码到 out。
func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("请求 %s 失败: %s: %s", url, resp.Status, body)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
