package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ayaseen/openshift-monitor-web/pkg/config"
	"github.com/ayaseen/openshift-monitor-web/pkg/manifest"
	"github.com/ayaseen/openshift-monitor-web/pkg/monitor"
	"github.com/ayaseen/openshift-monitor-web/pkg/types"
)

// spyRunner records run invocations so tests can assert what (if anything)
// reached the execution layer
type spyRunner struct {
	calls   int
	lastReq types.RunRequest
	result  *types.RunResult
	err     error
}

func (s *spyRunner) Run(ctx context.Context, req types.RunRequest) (*types.RunResult, error) {
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	return &types.RunResult{Success: true, Message: "ok"}, nil
}

func newTestServer(t *testing.T, spy *spyRunner) *Server {
	t.Helper()
	dir := t.TempDir()

	manifestPath := filepath.Join(dir, "monitoring_commands_v8.list")
	content := "# manifest\nA|cmd1\nA|cmd2\nB|cmd3\n"
	require.NoError(t, os.WriteFile(manifestPath, []byte(content), 0644))

	reportsDir := filepath.Join(dir, "reports")
	require.NoError(t, os.MkdirAll(reportsDir, 0755))

	cfg := config.Default()
	cfg.Execution.ScriptDir = dir
	cfg.Execution.ScratchDir = dir
	cfg.Execution.ReportsDir = reportsDir

	store := manifest.NewStore(manifestPath)
	return New(cfg, store, spy, zap.NewNop().Sugar())
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.Engine().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGetCategories(t *testing.T) {
	srv := newTestServer(t, &spyRunner{})

	rec := doRequest(srv, http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])

	categories := body["categories"].([]interface{})
	require.Len(t, categories, 2)

	first := categories[0].(map[string]interface{})
	assert.Equal(t, "A", first["id"])
	assert.Equal(t, "Cluster-Wide Health & Platform", first["name"])
	assert.Equal(t, float64(2), first["commandCount"])

	second := categories[1].(map[string]interface{})
	assert.Equal(t, "B", second["id"])
	assert.Equal(t, float64(1), second["commandCount"])
}

func TestGetCategoriesManifestUnreadable(t *testing.T) {
	spy := &spyRunner{}
	srv := newTestServer(t, spy)
	srv.store = manifest.NewStore(filepath.Join(t.TempDir(), "missing.list"))

	rec := doRequest(srv, http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestGetReports(t *testing.T) {
	srv := newTestServer(t, &spyRunner{})

	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"daily_old.html", "daily_new.html"} {
		path := filepath.Join(srv.cfg.Execution.ReportsDir, name)
		require.NoError(t, os.WriteFile(path, []byte("<html/>"), 0644))
		mtime := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}

	rec := doRequest(srv, http.MethodGet, "/api/reports", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])

	list := body["reports"].([]interface{})
	require.Len(t, list, 2)
	assert.Equal(t, "daily_new.html", list[0].(map[string]interface{})["name"])
	assert.Equal(t, "daily_old.html", list[1].(map[string]interface{})["name"])
}

func TestGetReportsEmpty(t *testing.T) {
	srv := newTestServer(t, &spyRunner{})

	rec := doRequest(srv, http.MethodGet, "/api/reports", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Empty(t, body["reports"])
}

func TestRunMonitorValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"malformed json", `{not json`, "Invalid JSON format"},
		{"empty body object", `{}`, "No groups selected"},
		{"empty groups", `{"groups":[]}`, "No groups selected"},
		{"double letter", `{"groups":["AA"]}`, "Invalid group name: AA"},
		{"lowercase", `{"groups":["a"]}`, "Invalid group name: a"},
		{"digit", `{"groups":["1"]}`, "Invalid group name: 1"},
		{"empty string", `{"groups":[""]}`, "Invalid group name: "},
		{"mixed valid invalid", `{"groups":["A","b"]}`, "Invalid group name: b"},
		{"bad mode", `{"groups":["A"],"mode":"fast"}`, "Invalid mode: fast"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spy := &spyRunner{}
			srv := newTestServer(t, spy)

			rec := doRequest(srv, http.MethodPost, "/api/run-monitor", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			body := decode(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.want, body["error"])

			// Validation failures must never reach the execution layer
			assert.Zero(t, spy.calls)
		})
	}
}

func TestRunMonitorModeDefaultsToActionable(t *testing.T) {
	spy := &spyRunner{}
	srv := newTestServer(t, spy)

	rec := doRequest(srv, http.MethodPost, "/api/run-monitor", `{"groups":["A"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, spy.calls)
	assert.Equal(t, string(types.ModeActionable), spy.lastReq.Mode)

	rec = doRequest(srv, http.MethodPost, "/api/run-monitor", `{"groups":["A"],"mode":"actionable"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 2, spy.calls)
	assert.Equal(t, string(types.ModeActionable), spy.lastReq.Mode)
}

func TestRunMonitorSuccess(t *testing.T) {
	spy := &spyRunner{result: &types.RunResult{
		Success:    true,
		Message:    "Monitoring script executed successfully",
		ReportFile: "daily_x.html",
		ReportURL:  "/reports/daily_x.html",
		Output:     "some output",
	}}
	srv := newTestServer(t, spy)

	rec := doRequest(srv, http.MethodPost, "/api/run-monitor", `{"groups":["A","B"],"mode":"verbose"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Monitoring script executed successfully", body["message"])
	assert.Equal(t, "daily_x.html", body["reportFile"])
	assert.Equal(t, "/reports/daily_x.html", body["reportUrl"])
	assert.Equal(t, "some output", body["output"])

	assert.Equal(t, []string{"A", "B"}, spy.lastReq.Groups)
	assert.Equal(t, "verbose", spy.lastReq.Mode)
}

func TestRunMonitorScriptFailure(t *testing.T) {
	spy := &spyRunner{result: &types.RunResult{
		Success: false,
		Message: "Script execution failed with exit code: 3",
	}}
	srv := newTestServer(t, spy)

	rec := doRequest(srv, http.MethodPost, "/api/run-monitor", `{"groups":["A"]}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Script execution failed with exit code: 3", body["error"])
}

func TestRunMonitorBusy(t *testing.T) {
	spy := &spyRunner{err: monitor.ErrRunInProgress}
	srv := newTestServer(t, spy)

	rec := doRequest(srv, http.MethodPost, "/api/run-monitor", `{"groups":["A"]}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
}

func TestUnknownAPIEndpoint(t *testing.T) {
	srv := newTestServer(t, &spyRunner{})

	rec := doRequest(srv, http.MethodGet, "/api/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "Unknown endpoint")
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &spyRunner{})

	rec := doRequest(srv, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode(t, rec)["status"])
}
