package evo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testOrgID = "11111111-1111-1111-1111-111111111111"
	testWsID  = "22222222-2222-2222-2222-222222222222"
	testObjID = "33333333-3333-3333-3333-333333333333"
)

// newTestServer 模拟发现、工作区与对象三个服务端点。
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/evo/identity/v2/discovery", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		fmt.Fprintf(w, `{"organizations":[{"id":%q,"display_name":"矿业一号","hubs":[{"code":"hub1","display_name":"亚太中心","url":%q}]}]}`,
			testOrgID, srv.URL)
	})
	mux.HandleFunc("/workspace/orgs/"+testOrgID+"/workspaces", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"results":[{"id":%q,"display_name":"勘探区"}]}`, testWsID)
	})
	mux.HandleFunc("/geoscience-object/orgs/"+testOrgID+"/workspaces/"+testWsID+"/objects", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"objects":[
			{"object_id":%q,"name":"granite","path":"rock/granite","schema":"/objects/pointset/1.0.1/pointset.schema.json","created_at":"2026-01-02T03:04:05Z","modified_at":"2026-01-03T03:04:05Z"},
			{"object_id":"44444444-4444-4444-4444-444444444444","name":"basalt","path":"rock/basalt","schema":"/objects/block-model/1.1.0/block-model.schema.json"}
		]}`, testObjID)
	})
	return srv
}

// TestServiceManager_EndToEnd 测试发现 → 中心 → 工作区 → 对象的完整链路
func TestServiceManager_EndToEnd(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	client := NewHTTPClient(StaticToken("token-1"), false)
	m := NewServiceManager(client, srv.URL)
	ctx := context.Background()

	orgs, err := m.Organizations(ctx)
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	require.Equal(t, "矿业一号", orgs[0].Label)
	require.Equal(t, testOrgID, orgs[0].Value)

	hubs, err := m.Hubs(ctx, testOrgID)
	require.NoError(t, err)
	require.Len(t, hubs, 1)
	require.Equal(t, "hub1", hubs[0].Value)

	wss, err := m.Workspaces(ctx, testOrgID, "hub1")
	require.NoError(t, err)
	require.Len(t, wss, 1)
	require.Equal(t, testWsID, wss[0].Value)

	m.SetSelection(testOrgID, "hub1", testWsID)
	require.Equal(t, testWsID, m.Workspace())

	objects, err := m.ListObjects(ctx, testWsID, "")
	require.NoError(t, err)
	require.Len(t, objects, 2)
	require.Equal(t, "granite", objects[0].Name)
	require.Equal(t, "pointset", objects[0].Type)

	// 按类型键过滤
	objects, err = m.ListObjects(ctx, testWsID, "block-model")
	require.NoError(t, err)
	require.Len(t, objects, 1)
	require.Equal(t, "basalt", objects[0].Name)
}

// TestServiceManager_ObjectReference 测试对象引用地址的构造
func TestServiceManager_ObjectReference(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	client := NewHTTPClient(StaticToken("token-1"), false)
	m := NewServiceManager(client, srv.URL)
	ctx := context.Background()

	_, err := m.Organizations(ctx)
	require.NoError(t, err)
	m.SetSelection(testOrgID, "hub1", testWsID)

	ref, err := m.ObjectReference(testObjID)
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("%s/geoscience-object/orgs/%s/workspaces/%s/objects/%s",
		srv.URL, testOrgID, testWsID, testObjID), ref)
}

// TestServiceManager_UnknownOrg 测试未知组织报错
func TestServiceManager_UnknownOrg(t *testing.T) {
	t.Parallel()

	client := NewHTTPClient(StaticToken("token-1"), false)
	m := NewServiceManager(client, "http://127.0.0.1:0")

	_, err := m.Hubs(context.Background(), "没有这个组织")
	require.Error(t, err)

	_, err = m.ListObjects(context.Background(), "ws", "")
	require.Error(t, err)
}
