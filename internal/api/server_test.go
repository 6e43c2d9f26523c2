package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/matzehuels/ucycle/pkg/errors"
	"github.com/matzehuels/ucycle/pkg/observability"
	"github.com/matzehuels/ucycle/pkg/pipeline"
	"github.com/matzehuels/ucycle/pkg/ucycle"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(pipeline.NewRunner(nil, nil, nil), nil, 6))
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, data
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, body := do(t, ts, http.MethodGet, "/healthz", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `"status":"ok"`) || !strings.Contains(string(body), `"version":"dev"`) {
		t.Errorf("body = %s", body)
	}
	if _, err := uuid.Parse(resp.Header.Get(RequestIDHeader)); err != nil {
		t.Errorf("response has no valid request ID: %q", resp.Header.Get(RequestIDHeader))
	}
}

func TestRequestIDPropagated(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.NewString()
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("request ID = %q, want %q", got, id)
	}
}

func TestGetCycle(t *testing.T) {
	ts := newTestServer(t)

	resp, body := do(t, ts, http.MethodGet, "/v1/cycles/3", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	var doc struct {
		N       int    `json:"n"`
		Length  int    `json:"length"`
		Symbols string `json:"symbols"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.N != 3 || doc.Length != 6 || doc.Symbols != "321312" {
		t.Errorf("document = %+v", doc)
	}

	resp, body = do(t, ts, http.MethodGet, "/v1/cycles/4?format=text", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := string(body); got != "432142134132431241234231\n" {
		t.Errorf("text body = %q", got)
	}
}

func TestGetCycleErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		path   string
		status int
		code   errors.Code
	}{
		{"/v1/cycles/abc", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/v1/cycles/7", http.StatusUnprocessableEntity, errors.ErrCodeOutOfRange},
		{"/v1/cycles/-1", http.StatusUnprocessableEntity, errors.ErrCodeOutOfRange},
		{"/v1/cycles/3?format=xml", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		resp, body := do(t, ts, http.MethodGet, tt.path, "")
		if resp.StatusCode != tt.status {
			t.Errorf("%s: status = %d, want %d", tt.path, resp.StatusCode, tt.status)
		}
		var e errorResponse
		if err := json.Unmarshal(body, &e); err != nil {
			t.Errorf("%s: error body %s: %v", tt.path, body, err)
			continue
		}
		if e.Code != tt.code || e.RequestID == "" {
			t.Errorf("%s: error = %+v, want code %s", tt.path, e, tt.code)
		}
	}
}

func TestGetSymbol(t *testing.T) {
	ts := newTestServer(t)

	resp, body := do(t, ts, http.MethodGet, "/v1/cycles/4/symbols/9", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	var got symbolResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	want := symbolResponse{N: 4, Index: 9, Symbol: 1, Permutation: []int{1, 3, 2, 4}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("symbol mismatch (-want +got):\n%s", diff)
	}

	// Beyond the construction limit, still answered by unranking.
	resp, _ = do(t, ts, http.MethodGet, "/v1/cycles/20/symbols/0", "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("n=20 status = %d", resp.StatusCode)
	}
	resp, _ = do(t, ts, http.MethodGet, "/v1/cycles/3/symbols/6", "")
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("index past end status = %d", resp.StatusCode)
	}
}

func TestVerify(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		body  string
		valid bool
	}{
		{`{"n":3,"symbols":"321312"}`, true},
		{`{"n":3,"strategy":"lehmer","symbols":"{3,2,1,3,1,2}"}`, true},
		{`{"n":3,"symbols":"121312"}`, false},
		{`{"n":3,"symbols":"32131"}`, false},
		{`{"n":1,"symbols":"1"}`, true},
	}
	for _, tt := range tests {
		resp, body := do(t, ts, http.MethodPost, "/v1/verify", tt.body)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: status = %d: %s", tt.body, resp.StatusCode, body)
			continue
		}
		var report ucycle.Report
		if err := json.Unmarshal(body, &report); err != nil {
			t.Fatal(err)
		}
		if report.Valid != tt.valid {
			t.Errorf("%s: valid = %v, want %v (%s)", tt.body, report.Valid, tt.valid, report.Reason)
		}
	}

	for _, body := range []string{`{"n":3,"symbols":"3#1"}`, `{"n":3,"strategy":"nope","symbols":"321312"}`, `not json`, `{"n":3,"extra":1}`} {
		if resp, _ := do(t, ts, http.MethodPost, "/v1/verify", body); resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", body, resp.StatusCode)
		}
	}
}

func TestRank(t *testing.T) {
	ts := newTestServer(t)
	resp, body := do(t, ts, http.MethodPost, "/v1/rank", `{"permutation":[2,1,4,3,5]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	want := `{"permutation":[2,1,4,3,5],"ranks":[{"strategy":"ruskey-williams","rank":11},{"strategy":"lehmer","rank":26},{"strategy":"7-order","rank":31}]}`
	if got := strings.TrimSpace(string(body)); got != want {
		t.Errorf("body = %s\nwant   %s", got, want)
	}

	if resp, _ := do(t, ts, http.MethodPost, "/v1/rank", `{"permutation":[1,1,2]}`); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid permutation status = %d", resp.StatusCode)
	}
}

func TestUnrank(t *testing.T) {
	ts := newTestServer(t)
	resp, body := do(t, ts, http.MethodPost, "/v1/unrank", `{"n":4,"strategy":"lehmer","rank":19}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	var got unrankResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{4, 1, 3, 2}, got.Permutation); diff != "" {
		t.Errorf("permutation mismatch (-want +got):\n%s", diff)
	}

	if resp, _ := do(t, ts, http.MethodPost, "/v1/unrank", `{"n":3,"rank":6}`); resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("rank past end status = %d", resp.StatusCode)
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	routes []string
	status []int
}

func (h *recordingHooks) OnResponse(_ context.Context, _, _, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, route)
	h.status = append(h.status, status)
}

func TestObserveReportsRoutePattern(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	ts := newTestServer(t)
	do(t, ts, http.MethodGet, "/v1/cycles/3/symbols/2", "")
	do(t, ts, http.MethodGet, "/v1/cycles/99", "")

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	wantRoutes := []string{"/v1/cycles/{n}/symbols/{i}", "/v1/cycles/{n}"}
	if diff := cmp.Diff(wantRoutes, hooks.routes); diff != "" {
		t.Errorf("routes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{200, 422}, hooks.status); diff != "" {
		t.Errorf("status mismatch (-want +got):\n%s", diff)
	}
}
