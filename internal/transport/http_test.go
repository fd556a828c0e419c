package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rpggio/staffplan/internal/domain/staffing"
	"github.com/rpggio/staffplan/internal/planning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type testHandler struct {
	method string
	tenant string
	params json.RawMessage
	err    error
}

func (h *testHandler) Handle(_ context.Context, tenantID, method string, params json.RawMessage) (any, error) {
	h.method = method
	h.tenant = tenantID
	h.params = params
	if h.err != nil {
		return nil, h.err
	}
	return map[string]string{"tenant": tenantID}, nil
}

type codedErr struct {
	code string
}

func (e codedErr) Error() string             { return e.code }
func (e codedErr) CodeValue() string         { return e.code }
func (e codedErr) MessageValue() string      { return "message for " + e.code }
func (e codedErr) DetailsValue() any         { return nil }
func (e codedErr) RecoveryHintValue() string { return "hint" }

type staticResolver struct {
	tenant string
}

func (r *staticResolver) ResolveTenant(_ context.Context, token string) (string, error) {
	if token != "token" {
		return "", ErrUnauthorized
	}
	return r.tenant, nil
}

func postRPC(t *testing.T, url, token, body string) Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url+"/rpc", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(NewServer(opts))
	t.Cleanup(server.Close)
	return server
}

func TestHTTPServer_RPC(t *testing.T) {
	handler := &testHandler{}
	server := newTestServer(t, Options{
		Handler: handler,
		Auth:    AuthMiddleware(&staticResolver{tenant: "tenant1"}),
	})

	resp := postRPC(t, server.URL, "token", `{"jsonrpc":"2.0","method":"list_employees","params":{"limit":5},"id":1}`)
	require.Nil(t, resp.Error)
	assert.Equal(t, "list_employees", handler.method)
	assert.Equal(t, "tenant1", handler.tenant)
	assert.JSONEq(t, `{"limit":5}`, string(handler.params))
}

func TestHTTPServer_RPCRequiresToken(t *testing.T) {
	server := newTestServer(t, Options{
		Handler: &testHandler{},
		Auth:    AuthMiddleware(&staticResolver{tenant: "tenant1"}),
	})

	for _, token := range []string{"", "wrong"} {
		req, err := http.NewRequest(http.MethodPost, server.URL+"/rpc",
			bytes.NewBufferString(`{"jsonrpc":"2.0","method":"list_employees","id":1}`))
		require.NoError(t, err)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
}

func TestHTTPServer_RPCWithoutTenantIsRejected(t *testing.T) {
	server := newTestServer(t, Options{Handler: &testHandler{}})

	resp, err := http.Post(server.URL+"/rpc", "application/json",
		bytes.NewBufferString(`{"jsonrpc":"2.0","method":"list_employees","id":1}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHTTPServer_RPCErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantData string
	}{
		{name: "parse", body: `{not json`, wantCode: ErrParseCode},
		{name: "invalid request", body: `{"jsonrpc":"1.0","method":"x","id":1}`, wantCode: ErrInvalidReq},
		{name: "method not found", body: `{"jsonrpc":"2.0","method":"x","id":1}`, err: codedErr{"METHOD_NOT_FOUND"}, wantCode: ErrMethodNotFound, wantData: "METHOD_NOT_FOUND"},
		{name: "invalid params", body: `{"jsonrpc":"2.0","method":"x","id":1}`, err: codedErr{"INVALID_PARAMS"}, wantCode: ErrInvalidParams, wantData: "INVALID_PARAMS"},
		{name: "domain", body: `{"jsonrpc":"2.0","method":"x","id":1}`, err: codedErr{"CONFLICT"}, wantCode: ErrApplication, wantData: "CONFLICT"},
		{name: "internal", body: `{"jsonrpc":"2.0","method":"x","id":1}`, err: errors.New("db gone"), wantCode: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, Options{
				Handler: &testHandler{err: tt.err},
				Auth:    StaticTenantMiddleware("tenant1"),
			})
			resp := postRPC(t, server.URL, "", tt.body)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.NotContains(t, resp.Error.Message, "db gone")

			if tt.wantData != "" {
				data, ok := resp.Error.Data.(map[string]any)
				require.True(t, ok)
				assert.Equal(t, tt.wantData, data["code"])
				assert.Equal(t, "hint", data["recovery_hint"])
			}
		})
	}
}

func TestHTTPServer_Health(t *testing.T) {
	server := newTestServer(t, Options{Handler: &testHandler{}})

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTPServer_MountsMCP(t *testing.T) {
	var hit bool
	mcpHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hit = true
		w.WriteHeader(http.StatusAccepted)
	})
	server := newTestServer(t, Options{Handler: &testHandler{}, MCP: mcpHandler})

	resp, err := http.Post(server.URL+"/mcp", "application/json", bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.True(t, hit)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
}

type workloadStub struct {
	query staffing.WorkloadQuery
	err   error
}

func (s *workloadStub) Workload(_ context.Context, _ string, q staffing.WorkloadQuery) (*staffing.Heatmap, error) {
	s.query = q
	if s.err != nil {
		return nil, s.err
	}
	return &staffing.Heatmap{
		Granularity: planning.GranularityWeek,
		Buckets:     []planning.Bucket{{Start: q.Range.Start, End: q.Range.End}},
		Rows: []staffing.HeatmapRow{{
			EmployeeID: "e1",
			Name:       "Ada Lovelace",
			Cells:      []staffing.HeatmapCell{{Load: 60, Level: planning.LevelMedium}},
		}},
	}, nil
}

func TestHTTPServer_WorkloadExport(t *testing.T) {
	source := &workloadStub{}
	server := newTestServer(t, Options{
		Handler:  &testHandler{},
		Auth:     StaticTenantMiddleware("tenant1"),
		Workload: source,
	})

	resp, err := http.Get(server.URL + "/export/workload.xlsx?start=2024-01-01&end=2024-01-07&employee_id=e1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "workload_2024-01-01_2024-01-07.xlsx")
	assert.Equal(t, []string{"e1"}, source.query.EmployeeIDs)

	f, err := excelize.OpenReader(resp.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Workload")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ada Lovelace", rows[1][0])
}

func TestHTTPServer_WorkloadExportBadRange(t *testing.T) {
	server := newTestServer(t, Options{
		Handler:  &testHandler{},
		Auth:     StaticTenantMiddleware("tenant1"),
		Workload: &workloadStub{err: planning.ErrInvalidInterval},
	})

	resp, err := http.Get(server.URL + "/export/workload.xlsx?start=2024-01-01&end=nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(server.URL + "/export/workload.xlsx?start=2024-02-01&end=2024-01-01")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
