package evo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestEvoURL_Production 测试生产环境的查看器与门户地址
func TestEvoURL_Production(t *testing.T) {
	t.Parallel()

	ref := "https://hub123.api.seequent.com/geoscience-object/orgs/org-1/workspaces/ws-1/objects/obj-1"

	viewer, err := ViewerURL(ref)
	require.NoError(t, err)
	require.Equal(t, "https://evo.seequent.com/org-1/workspaces/hub123/ws-1/viewer?id=obj-1", viewer)

	portal, err := PortalURL(ref)
	require.NoError(t, err)
	require.Equal(t, "https://evo.seequent.com/org-1/workspaces/hub123/ws-1/overview?id=obj-1", portal)
}

// TestEvoURL_Environments 测试主机名推断环境地址
func TestEvoURL_Environments(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		ref  string
		want string
	}{
		{
			name: "集成环境",
			ref:  "https://hub1.integration.seequent.com/geoscience-object/orgs/o/workspaces/w/objects/x",
			want: "https://evo.integration.seequent.com/o/workspaces/hub1/w/overview?id=x",
		},
		{
			name: "测试环境",
			ref:  "https://hub1.test.seequent.com/geoscience-object/orgs/o/workspaces/w/objects/x",
			want: "https://evo.test.seequent.com/o/workspaces/hub1/w/overview?id=x",
		},
		{
			name: "生产环境",
			ref:  "https://hub1.api.seequent.com/geoscience-object/orgs/o/workspaces/w/objects/x",
			want: "https://evo.seequent.com/o/workspaces/hub1/w/overview?id=x",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := PortalURL(tc.ref)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

// TestEvoURL_Invalid 测试非法引用地址报错
func TestEvoURL_Invalid(t *testing.T) {
	t.Parallel()

	// 路径不符合预期格式
	_, err := ViewerURL("https://hub1.api.seequent.com/some/other/path")
	require.Error(t, err)

	// 缺少主机名
	_, err = ViewerURL("/geoscience-object/orgs/o/workspaces/w/objects/x")
	require.Error(t, err)
}

// TestReferenceURL 测试对象引用地址的构造与解析互逆
func TestReferenceURL(t *testing.T) {
	t.Parallel()

	ref := ReferenceURL("https://hub9.api.seequent.com/", "org-9", "ws-9", "obj-9")
	require.Equal(t,
		"https://hub9.api.seequent.com/geoscience-object/orgs/org-9/workspaces/ws-9/objects/obj-9", ref)

	viewer, err := ViewerURL(ref)
	require.NoError(t, err)
	require.Equal(t, "https://evo.seequent.com/org-9/workspaces/hub9/ws-9/viewer?id=obj-9", viewer)
}
