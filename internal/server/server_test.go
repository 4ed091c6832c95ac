package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/TianLangHin/ultimate-tic-tac-toe-website/internal/board"
	"github.com/TianLangHin/ultimate-tic-tac-toe-website/internal/engine"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	eng := engine.New(engine.WithMaxDepth(4))
	srv := New(eng, nil, "", zerolog.Nop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatal(err)
	}
	return resp, buf.Bytes()
}

func TestAnalyzeEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/analyze", AnalyzeRequest{
		Board: board.StartWire,
		Depth: 2,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}

	var info InfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		t.Fatalf("bad response %s: %v", body, err)
	}
	if info.Type != "info" || info.Depth != 2 {
		t.Errorf("response = %+v", info)
	}
	if len(info.PV) == 0 || info.Score == "" {
		t.Errorf("incomplete analysis: %+v", info)
	}
}

func TestAnalyzeEndpointErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name     string
		req      AnalyzeRequest
		category string
		sub      string
	}{
		{"bad board", AnalyzeRequest{Board: "not a board", Depth: 2}, "board", "parse"},
		{"zero depth", AnalyzeRequest{Board: board.StartWire, Depth: 0}, "depth", "nonpositive"},
		{"huge depth", AnalyzeRequest{Board: board.StartWire, Depth: 99}, "depth", "toolarge"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := postJSON(t, ts.URL+"/analyze", tc.req)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			var e ErrorResponse
			if err := json.Unmarshal(body, &e); err != nil {
				t.Fatal(err)
			}
			if e.Type != "error" || e.Category != tc.category || e.SubCategory != tc.sub {
				t.Errorf("error = %+v, want %s/%s", e, tc.category, tc.sub)
			}
		})
	}
}

func TestAnalyzeEndpointMethod(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/analyze")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /analyze: status = %d", resp.StatusCode)
	}
}

func TestWebSocketAnalysis(t *testing.T) {
	ts := newTestServer(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(AnalyzeRequest{Board: board.StartWire, Depth: 1}); err != nil {
		t.Fatal(err)
	}
	var info InfoResponse
	if err := conn.ReadJSON(&info); err != nil {
		t.Fatal(err)
	}
	if info.Type != "info" || info.Depth != 1 {
		t.Errorf("response = %+v", info)
	}

	// Errors keep the connection open.
	if err := conn.WriteJSON(AnalyzeRequest{Board: board.StartWire, Depth: 0}); err != nil {
		t.Fatal(err)
	}
	var e ErrorResponse
	if err := conn.ReadJSON(&e); err != nil {
		t.Fatal(err)
	}
	if e.Type != "error" || e.Category != "depth" {
		t.Errorf("error = %+v", e)
	}

	if err := conn.WriteJSON(AnalyzeRequest{Board: board.StartWire, Depth: 2}); err != nil {
		t.Fatal(err)
	}
	if err := conn.ReadJSON(&info); err != nil {
		t.Fatal(err)
	}
	if info.Depth != 2 {
		t.Errorf("second analysis = %+v", info)
	}
}

func TestGameEndpoint(t *testing.T) {
	ts := newTestServer(t)

	// X wins zones 4, 0 and 8 along the meta main diagonal.
	moves := []int{
		39, 31, 41, 49, 40,
		27, 3, 28, 9, 0, 5, 45, 4,
		17, 75, 32, 51, 62, 77, 47, 24, 61, 63, 26, 76,
	}
	resp, body := postJSON(t, ts.URL+"/game", GameReport{Moves: moves, PlayerSide: "x"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	var result GameReportResponse
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatal(err)
	}
	if result.Result != "X wins" {
		t.Errorf("result = %q", result.Result)
	}
}

func TestGameEndpointRejectsIllegalGames(t *testing.T) {
	ts := newTestServer(t)
	resp, _ := postJSON(t, ts.URL+"/game", GameReport{Moves: []int{40, 0}})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
