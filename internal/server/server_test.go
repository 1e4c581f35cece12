package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"

	"github.com/mlorenz/scenetree/pkg/config"
)

const sampleDoc = `{
	"name": "Root", "type": "group", "x": 0, "y": 0, "width": 100, "height": 100,
	"children": [
		{"name": "Child", "type": "text", "x": 10, "y": 5, "width": 80, "height": 20, "text": "Hi"}
	]
}`

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := New(Options{
		Build:  config.Default().Build,
		Logger: log.New(io.Discard),
	})
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, data
}

func TestHealth(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q", body["status"])
	}
}

func TestParseEndpoint(t *testing.T) {
	ts := testServer(t)

	resp, data := postJSON(t, ts.URL+"/v1/parse", sampleDoc)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, data)
	}

	var got parseResponse
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Name != "Root" || got.NodeCount != 2 || got.Depth != 2 {
		t.Errorf("parse response = %+v", got)
	}
}

func TestParseEndpointMalformed(t *testing.T) {
	ts := testServer(t)

	doc := `{"name": "Root", "type": "group", "x": 0, "y": 0, "width": "wide", "height": 1}`
	resp, data := postJSON(t, ts.URL+"/v1/parse", doc)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", resp.StatusCode, data)
	}

	var got errorResponse
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Code != "MALFORMED_DOCUMENT" {
		t.Errorf("code = %q", got.Code)
	}
	if got.Path != "/width" {
		t.Errorf("path = %q, want /width", got.Path)
	}
}

func TestBuildEndpoint(t *testing.T) {
	ts := testServer(t)

	resp, data := postJSON(t, ts.URL+"/v1/build", sampleDoc)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, data)
	}

	var got buildResponse
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.ElementCount != 2 || len(got.Elements) != 1 {
		t.Fatalf("build response = %+v", got)
	}

	child := got.Elements[0].Children[0]
	if child.Position.X != 10 || child.Position.Y != -5 {
		t.Errorf("default convention should negate Y: %+v", child.Position)
	}
	if child.Text != "Hi" {
		t.Errorf("text content lost: %+v", child)
	}
}

func TestBuildEndpointConventionOverride(t *testing.T) {
	ts := testServer(t)

	resp, data := postJSON(t, ts.URL+"/v1/build?convention=y-down-top-left", sampleDoc)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, data)
	}

	var got buildResponse
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	child := got.Elements[0].Children[0]
	if child.Position.Y != 5 {
		t.Errorf("identity convention should keep Y: %+v", child.Position)
	}
}

func TestBuildEndpointUnknownConvention(t *testing.T) {
	ts := testServer(t)

	resp, data := postJSON(t, ts.URL+"/v1/build?convention=sideways", sampleDoc)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", resp.StatusCode, data)
	}

	var got errorResponse
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Code != "INVALID_CONVENTION" {
		t.Errorf("code = %q", got.Code)
	}
}

func TestStoreRoutesDisabledWithoutStore(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/v1/documents")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when no store is configured", resp.StatusCode)
	}
}
