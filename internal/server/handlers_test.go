package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"neurolearn/internal/broadcast"
	"neurolearn/internal/events"
	"neurolearn/internal/kv"
	"neurolearn/internal/progress"
	"neurolearn/internal/relay"
	"neurolearn/internal/wshub"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	return newTestServerWithAnalyzer(t, relay.New("http://127.0.0.1:0", "test-key", "test-model", nil))
}

func newTestServerWithAnalyzer(t *testing.T, analyzer *relay.Analyzer) (*Server, *httptest.Server) {
	t.Helper()
	mem := kv.NewMemory()
	bus := events.NewBus()

	srv := &Server{
		Progress: progress.New(mem, bus),
		Analyzer: analyzer,
		Hub:      wshub.NewHub(broadcast.NewBroadcaster(bus)),
		KV:       mem,
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatal(err)
	}
}

func TestHandleState_Defaults(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/state")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var state State
	decodeJSON(t, resp, &state)

	if state.Mode != progress.ModeUnset {
		t.Errorf("mode = %q, want unset", state.Mode)
	}
	if state.Onboarded {
		t.Error("fresh state should not be onboarded")
	}
	if state.PlaybackSpeed != 1 {
		t.Errorf("playbackSpeed = %v, want 1", state.PlaybackSpeed)
	}
	if state.Progress.Level != 1 || state.Progress.CurrentStreak != 1 {
		t.Errorf("progress = %+v, want defaults", state.Progress)
	}
}

func TestHandleSetMode_Valid(t *testing.T) {
	srv, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/mode", map[string]string{"mode": "dyslexia"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if srv.Progress.Mode() != progress.ModeDyslexia {
		t.Errorf("mode = %q, want %q", srv.Progress.Mode(), progress.ModeDyslexia)
	}
}

func TestHandleSetMode_Unknown(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/mode", map[string]string{"mode": "turbo"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestHandleSetOnboarded(t *testing.T) {
	srv, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/onboarded", map[string]bool{"onboarded": true})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if !srv.Progress.Onboarded() {
		t.Error("store should be onboarded")
	}
}

func TestHandleSetPlaybackSpeed(t *testing.T) {
	srv, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/playback-speed", map[string]float64{"speed": 1.5})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if srv.Progress.PlaybackSpeed() != 1.5 {
		t.Errorf("playbackSpeed = %v, want 1.5", srv.Progress.PlaybackSpeed())
	}
}

func TestHandleSetPlaybackSpeed_RejectsNonPositive(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/playback-speed", map[string]float64{"speed": -1})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestHandleAddXP(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/xp", map[string]int{"amount": 120})

	var l progress.Learner
	decodeJSON(t, resp, &l)
	if l.TotalXP != 120 {
		t.Errorf("totalXP = %d, want 120", l.TotalXP)
	}
	if l.Level != 2 {
		t.Errorf("level = %d, want 2", l.Level)
	}
}

func TestHandleCompleteLesson(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/lessons/complete", nil)

	var l progress.Learner
	decodeJSON(t, resp, &l)
	if l.LessonsCompleted != 1 {
		t.Errorf("lessonsCompleted = %d, want 1", l.LessonsCompleted)
	}
	if l.TotalXP != 25 {
		t.Errorf("totalXP = %d, want 25", l.TotalXP)
	}
}

func TestHandleUpdateProgress(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/progress", map[string]int{"accuracy": 90, "timeSpent": 15})

	var l progress.Learner
	decodeJSON(t, resp, &l)
	if l.Accuracy != 90 {
		t.Errorf("accuracy = %d, want 90", l.Accuracy)
	}
	if l.TimeSpent != 15 {
		t.Errorf("timeSpent = %d, want 15", l.TimeSpent)
	}
	if l.CurrentStreak != 1 {
		t.Errorf("currentStreak = %d, want untouched 1", l.CurrentStreak)
	}
}

func TestHandleReset(t *testing.T) {
	srv, ts := newTestServer(t)
	srv.Progress.AddXP(300)
	srv.Progress.SetOnboarded(true)

	resp := postJSON(t, ts.URL+"/api/reset", nil)

	var state State
	decodeJSON(t, resp, &state)
	if state.Progress.TotalXP != 0 || state.Progress.Level != 1 {
		t.Errorf("progress after reset = %+v, want defaults", state.Progress)
	}
	if state.Onboarded {
		t.Error("onboarded should reset")
	}
}

func TestHandleHealth(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestCORS_Preflight(t *testing.T) {
	_, ts := newTestServer(t)

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/analyze-image", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestCORS_HeadersOnRegularRequests(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/state")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}
