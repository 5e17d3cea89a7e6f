package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func doRequest(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	srv := NewServer(0, "")
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

type sseRecord struct {
	event string
	data  string
}

func parseSSE(body string) []sseRecord {
	var records []sseRecord
	for _, block := range strings.Split(body, "\n\n") {
		var rec sseRecord
		for _, line := range strings.Split(block, "\n") {
			switch {
			case strings.HasPrefix(line, "event: "):
				rec.event = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				rec.data = strings.TrimPrefix(line, "data: ")
			}
		}
		if rec.event != "" {
			records = append(records, rec)
		}
	}
	return records
}

func TestHandleHealth(t *testing.T) {
	rec := doRequest(t, "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("Unexpected body: %s", rec.Body.String())
	}
}

func TestHandleScenes(t *testing.T) {
	rec := doRequest(t, "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var scenes []scene.SceneInfo
	if err := json.NewDecoder(rec.Body).Decode(&scenes); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(scenes) != len(scene.Names()) {
		t.Errorf("Expected %d scenes, got %d", len(scene.Names()), len(scenes))
	}
}

func TestHandleSceneConfig(t *testing.T) {
	rec := doRequest(t, "/api/scene-config?scene=quads")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response struct {
		Scene    string         `json:"scene"`
		Defaults map[string]interface{} `json:"defaults"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if response.Scene != "quads" {
		t.Errorf("Expected scene quads, got %s", response.Scene)
	}
	if response.Defaults["width"] != float64(400) || response.Defaults["height"] != float64(400) {
		t.Errorf("Expected 400x400 defaults, got %v", response.Defaults)
	}

	if rec := doRequest(t, "/api/scene-config?scene=nope"); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown scene, got %d", rec.Code)
	}
}

func TestHandleRender_PNG(t *testing.T) {
	rec := doRequest(t, "/api/render?scene=empty&width=8&height=4&samples=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %s", ct)
	}
	if got := rec.Header().Get("X-Render-Samples"); got != "32" {
		t.Errorf("Expected 32 samples, got %s", got)
	}

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("Expected 8x4 image, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestHandleRender_InvalidParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"non-numeric width", "width=abc"},
		{"zero width", "width=0"},
		{"too many samples", "samples=99999"},
		{"negative gamma", "gamma=-1"},
		{"bad seed", "seed=x"},
		{"bad normals", "normals=maybe"},
		{"unknown scene", "scene=nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, "/api/render?"+tt.query)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), `"error"`) {
				t.Errorf("Expected JSON error, got %s", rec.Body.String())
			}
		})
	}
}

func TestHandleRenderStream(t *testing.T) {
	rec := doRequest(t, "/api/render/stream?scene=empty&width=4&height=2&samples=1")
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected text/event-stream, got %s", ct)
	}

	records := parseSSE(rec.Body.String())
	if len(records) == 0 {
		t.Fatal("Expected SSE events")
	}

	last := records[len(records)-1]
	if last.event != "complete" {
		t.Fatalf("Expected final complete event, got %s: %s", last.event, last.data)
	}

	var consoleCount int
	for _, r := range records[:len(records)-1] {
		if r.event != "console" {
			t.Errorf("Unexpected event before completion: %s", r.event)
		}
		consoleCount++
	}
	if consoleCount == 0 {
		t.Error("Expected console events from the render log")
	}

	var complete RenderComplete
	if err := json.Unmarshal([]byte(last.data), &complete); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if complete.Width != 4 || complete.Height != 2 || complete.Scene != "empty" {
		t.Errorf("Unexpected result header: %+v", complete)
	}
	if complete.Stats.TotalSamples != 8 || complete.ImageData == "" {
		t.Errorf("Unexpected stats or image: %+v", complete.Stats)
	}
}

func TestHandleRenderStream_Error(t *testing.T) {
	rec := doRequest(t, "/api/render/stream?scene=nope")

	records := parseSSE(rec.Body.String())
	if len(records) == 0 {
		t.Fatal("Expected an error event")
	}
	last := records[len(records)-1]
	if last.event != "error" || !strings.Contains(last.data, "unknown scene") {
		t.Errorf("Expected unknown scene error, got %s: %s", last.event, last.data)
	}
}

// failingWriter rejects every body write, like a client that hung up
// without the request context being cancelled yet
type failingWriter struct {
	header http.Header
}

func (f *failingWriter) Header() http.Header       { return f.header }
func (f *failingWriter) WriteHeader(int)           {}
func (f *failingWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestHandleRenderStream_WriteFailureStopsRender(t *testing.T) {
	srv := NewServer(0, "")
	// Far too much work to finish in the timeout unless the failed write cancels the render
	req := httptest.NewRequest(http.MethodGet, "/api/render/stream?scene=default&width=100&height=200&samples=2000", nil)
	w := &failingWriter{header: http.Header{}}

	done := make(chan struct{})
	go func() {
		srv.Handler().ServeHTTP(w, req)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(20 * time.Second):
		t.Fatal("Handler did not return after the client write failed")
	}
}

func TestHandleInspect(t *testing.T) {
	// 15x9 puts the center of pixel (7, 4) exactly on the view axis
	rec := doRequest(t, "/api/inspect?scene=default&width=15&height=9&x=7&y=4")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response InspectResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !response.Hit {
		t.Fatal("Expected the center ray to hit the red sphere")
	}
	if response.MaterialType != "lambertian" || response.GeometryType != "sphere" {
		t.Errorf("Expected lambertian sphere, got %s %s", response.MaterialType, response.GeometryType)
	}
	if !response.FrontFace || response.Distance <= 0 {
		t.Errorf("Expected a front face hit at positive distance, got %+v", response)
	}
	// The pinhole ray runs from look-from (0,0.75,2) through the sphere
	// center (0,0.5,-1), so the normal points straight back at the camera
	want := core.NewVec3(0, 0.25, 3).Normalize()
	normal := core.NewVec3(response.Normal[0], response.Normal[1], response.Normal[2])
	if normal.Subtract(want).Length() > 1e-9 {
		t.Errorf("Expected normal %v from an unjittered ray, got %v", want, normal)
	}
	geom, _ := response.Properties["geometry"].(map[string]interface{})
	if geom["radius"] != 0.5 {
		t.Errorf("Expected radius 0.5, got %v", geom["radius"])
	}
}

func TestHandleInspect_Miss(t *testing.T) {
	rec := doRequest(t, "/api/inspect?scene=empty&x=10&y=10")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response InspectResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if response.Hit {
		t.Error("Expected miss in the empty scene")
	}
}

func TestHandleInspect_BadRequest(t *testing.T) {
	tests := []struct {
		name   string
		params url.Values
	}{
		{"missing x", url.Values{"y": {"1"}}},
		{"bad y", url.Values{"x": {"1"}, "y": {"top"}}},
		{"out of bounds", url.Values{"width": {"10"}, "height": {"10"}, "x": {"10"}, "y": {"0"}}},
		{"negative", url.Values{"x": {"-1"}, "y": {"0"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, "/api/inspect?"+tt.params.Encode())
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestParseIntParam(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{"", 7, false},
		{"5", 5, false},
		{"1", 1, false},
		{"10", 10, false},
		{"0", 0, true},
		{"11", 0, true},
		{"1.5", 0, true},
	}

	for _, tt := range tests {
		values := url.Values{}
		if tt.value != "" {
			values.Set("n", tt.value)
		}
		got, err := parseIntParam(values, "n", 7, 1, 10)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseIntParam(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseIntParam(%q) = %d, want %d", tt.value, got, tt.want)
		}
	}
}
