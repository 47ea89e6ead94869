package evo

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// objectPathRe 匹配地学对象引用地址的路径部分。
var objectPathRe = regexp.MustCompile(`^/geoscience-object/orgs/([^/]+)/workspaces/([^/]+)/objects/([^/?]+)`)

// evoBaseURL 根据引用地址的主机名推断 Evo 门户的环境地址。
func evoBaseURL(hostname string) string {
	switch {
	case strings.Contains(hostname, "integration"):
		return "https://evo.integration.seequent.com"
	case strings.Contains(hostname, "test"):
		return "https://evo.test.seequent.com"
	default:
		return "https://evo.seequent.com"
	}
}

// evoURL 从对象引用地址生成指定视图的 Evo 地址。
// 中心 id 取主机名的第一段，组织/工作区/对象 id 取自路径。
func evoURL(objectRef, view string) (string, error) {
	parsed, err := url.Parse(objectRef)
	if err != nil {
		return "", fmt.Errorf("解析对象引用地址失败: %w", err)
	}

	hostname := parsed.Hostname()
	if hostname == "" {
		return "", fmt.Errorf("对象引用地址缺少主机名: %s", objectRef)
	}
	hubID := strings.Split(hostname, ".")[0]

	m := objectPathRe.FindStringSubmatch(parsed.Path)
	if m == nil {
		return "", fmt.Errorf("对象引用地址的路径不符合预期格式: %s", parsed.Path)
	}
	orgID, workspaceID, objectID := m[1], m[2], m[3]

	return fmt.Sprintf("%s/%s/workspaces/%s/%s/%s?id=%s",
		evoBaseURL(hostname), orgID, hubID, workspaceID, view, objectID), nil
}

// ViewerURL 生成对象在 Evo 三维查看器中的地址。
func ViewerURL(objectRef string) (string, error) {
	return evoURL(objectRef, "viewer")
}

// PortalURL 生成对象在 Evo 门户概览页的地址。
func PortalURL(objectRef string) (string, error) {
	return evoURL(objectRef, "overview")
}
