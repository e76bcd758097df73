package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	deckgen "github.com/alnah/go-deckgen"
	"github.com/alnah/go-deckgen/internal/history"
	"github.com/alnah/go-deckgen/internal/pptx"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fixture struct {
	srv     *Server
	http    *httptest.Server
	history *history.Store
	outDir  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	outDir := t.TempDir()
	r, err := deckgen.NewRenderer(deckgen.WithOutputDir(outDir))
	if err != nil {
		t.Fatalf("NewRenderer() unexpected error: %v", err)
	}
	store, err := history.Open(":memory:")
	if err != nil {
		t.Fatalf("history.Open() unexpected error: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	srv := New(Config{Renderer: r, History: store, Workers: 2})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &fixture{srv: srv, http: ts, history: store, outDir: outDir}
}

func (f *fixture) post(t *testing.T, path string, body any) (*http.Response, []byte) {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(f.http.URL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp, out
}

func (f *fixture) get(t *testing.T, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(f.http.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp, out
}

// ---------------------------------------------------------------------------
// TestGenerate - POST /api/generate
// ---------------------------------------------------------------------------

func TestGenerate_TopicOnly(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	resp, body := f.post(t, "/api/generate", map[string]any{"topic": "Coffee", "theme": "midnight"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}

	var got GenerateResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Status != "success" || got.Topic != "Coffee" {
		t.Errorf("response = %+v", got)
	}
	if got.DownloadURL != "/download/"+got.Filename {
		t.Errorf("DownloadURL = %q", got.DownloadURL)
	}
	if got.Report == nil || got.Report.Theme != "midnight" || len(got.Report.Slides) != 2 {
		t.Errorf("report = %+v", got.Report)
	}
	if _, err := os.Stat(filepath.Join(f.outDir, got.Filename)); err != nil {
		t.Errorf("deck not written: %v", err)
	}

	entries, err := f.history.List(context.Background(), 0)
	if err != nil || len(entries) != 1 || entries[0].Filename != got.Filename {
		t.Errorf("history = %+v, %v", entries, err)
	}
}

func TestGenerate_WithOutline(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	req := map[string]any{
		"use_images": false,
		"outline": map[string]any{
			"topic": "Tea",
			"slides": []map[string]any{
				{"id": 1, "kind": "cover", "title": "Tea"},
				{"id": 2, "kind": "table", "title": "Types", "table_data": map[string]any{
					"headers": []string{"Kind", "Caffeine"},
					"rows":    [][]any{{"Green", 30}, {"Black", 47}},
				}},
				{"id": 3, "kind": "image-feature", "visual": map[string]any{"need_image": true, "image_prompt": "tea"}},
			},
		},
	}
	resp, body := f.post(t, "/api/generate", req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	var got GenerateResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if got.Topic != "Tea" || len(got.Report.Slides) != 3 {
		t.Errorf("response = %+v", got)
	}
	// Images were skipped, so the image slide is not degraded.
	if got.Report.Slides[2].Status != deckgen.StatusRendered {
		t.Errorf("image slide = %+v", got.Report.Slides[2])
	}
}

func TestGenerate_BadRequests(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"topic":`},
		{"empty topic", `{"topic": "   "}`},
		{"topic too long", `{"topic": "` + strings.Repeat("x", MaxTopicLength+1) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp, err := http.Post(f.http.URL+"/api/generate", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			var e errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Status != "error" || e.Error == "" {
				t.Errorf("error body = %+v, %v", e, err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDownload - GET /download/:name
// ---------------------------------------------------------------------------

func TestDownload(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, body := f.post(t, "/api/generate", map[string]any{"topic": "Download me"})
	var gen GenerateResponse
	if err := json.Unmarshal(body, &gen); err != nil {
		t.Fatal(err)
	}

	resp, data := f.get(t, gen.DownloadURL)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != pptx.MediaType {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, gen.Filename) {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Error("body is not a zip package")
	}
}

func TestDownload_Rejects(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	if err := os.WriteFile(filepath.Join(f.outDir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want int
	}{
		{"missing", "/download/nope.pptx", http.StatusNotFound},
		{"wrong extension", "/download/notes.txt", http.StatusBadRequest},
		{"encoded traversal", "/download/..%2F..%2Fetc%2Fpasswd.pptx", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp, _ := f.get(t, tt.path)
			if resp.StatusCode != tt.want && resp.StatusCode != http.StatusNotFound {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
			if resp.StatusCode == http.StatusOK {
				t.Error("file served")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestListings - themes, renders, healthz
// ---------------------------------------------------------------------------

func TestThemes(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	resp, body := f.get(t, "/api/themes")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got struct {
		Themes []themeView `json:"themes"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Themes) != 3 || got.Themes[0].Name != "corporate" || !got.Themes[0].Default {
		t.Errorf("themes = %+v", got.Themes)
	}
	if len(got.Themes[0].Kinds) != len(deckgen.Kinds) {
		t.Errorf("corporate kinds = %v", got.Themes[0].Kinds)
	}
}

func TestRenders(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	for _, topic := range []string{"one", "two", "three"} {
		f.post(t, "/api/generate", map[string]any{"topic": topic, "use_images": false})
	}

	resp, body := f.get(t, "/api/renders?limit=2")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got struct {
		Renders []history.Entry `json:"renders"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Renders) != 2 {
		t.Errorf("renders = %d, want 2", len(got.Renders))
	}
}

func TestRenders_NoHistory(t *testing.T) {
	t.Parallel()

	r, err := deckgen.NewRenderer(deckgen.WithOutputDir(t.TempDir()))
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(New(Config{Renderer: r}).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/renders")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `"renders":[]`) {
		t.Errorf("status %d body %s", resp.StatusCode, body)
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	resp, body := f.get(t, "/healthz")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "ok") {
		t.Errorf("status %d body %s", resp.StatusCode, body)
	}
}

// ---------------------------------------------------------------------------
// TestGenerateWS - Streaming over WebSocket
// ---------------------------------------------------------------------------

func dialWS(t *testing.T, f *fixture) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.http.URL, "http") + "/ws/generate"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() unexpected error: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvents(t *testing.T, conn *websocket.Conn) []Event {
	t.Helper()
	var events []Event
	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return events
			}
			t.Fatalf("ReadJSON() unexpected error: %v", err)
		}
		events = append(events, ev)
		if ev.Type == EventDone || ev.Type == EventError {
			return events
		}
	}
}

func TestGenerateWS(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	conn := dialWS(t, f)
	if err := conn.WriteJSON(GenerateRequest{Topic: "Streaming"}); err != nil {
		t.Fatal(err)
	}

	events := readEvents(t, conn)
	if len(events) != 3 {
		t.Fatalf("events = %d, want 2 slides + done", len(events))
	}
	for i, ev := range events[:2] {
		if ev.Type != EventSlide || ev.Slide == nil || ev.Slide.Index != i {
			t.Errorf("event %d = %+v", i, ev)
		}
	}
	done := events[2]
	if done.Type != EventDone || done.Result == nil || done.Result.Filename == "" {
		t.Errorf("done = %+v", done)
	}
}

func TestGenerateWS_Error(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	conn := dialWS(t, f)
	if err := conn.WriteJSON(GenerateRequest{}); err != nil {
		t.Fatal(err)
	}

	events := readEvents(t, conn)
	if len(events) != 1 || events[0].Type != EventError || !strings.Contains(events[0].Error, "topic") {
		t.Errorf("events = %+v", events)
	}
}

// ---------------------------------------------------------------------------
// TestAcquire - Render slots
// ---------------------------------------------------------------------------

func TestAcquire_Busy(t *testing.T) {
	t.Parallel()

	r, err := deckgen.NewRenderer(deckgen.WithOutputDir(t.TempDir()))
	if err != nil {
		t.Fatal(err)
	}
	s := New(Config{Renderer: r, Workers: 1})

	release, err := s.acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.acquire(ctx); statusFor(err) != http.StatusServiceUnavailable {
		t.Errorf("acquire() error = %v, want busy", err)
	}
	release()
	if _, err := s.acquire(context.Background()); err != nil {
		t.Errorf("acquire() after release = %v", err)
	}
}

func TestNew_PanicsWithoutRenderer(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("New() did not panic")
		}
	}()
	New(Config{})
}
