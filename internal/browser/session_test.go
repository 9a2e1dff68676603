package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chromedp/cdproto/target"
)

func TestPickActive(t *testing.T) {
	tests := []struct {
		name  string
		infos []*target.Info
		want  target.ID
	}{
		{
			name:  "no targets",
			infos: nil,
			want:  "",
		},
		{
			name: "all blank picks first",
			infos: []*target.Info{
				{TargetID: "A", URL: "about:blank"},
				{TargetID: "B", URL: "about:blank"},
			},
			want: "A",
		},
		{
			name: "content beats earlier blank",
			infos: []*target.Info{
				{TargetID: "A", URL: "about:blank"},
				{TargetID: "B", URL: "https://example.com"},
				{TargetID: "C", URL: "https://other.org"},
			},
			want: "B",
		},
		{
			name: "empty url is not content",
			infos: []*target.Info{
				{TargetID: "A", URL: ""},
				{TargetID: "B", URL: "https://example.com"},
			},
			want: "B",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pickActive(tt.infos); got != tt.want {
				t.Errorf("pickActive: expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestResolveWebSocketURL_Passthrough(t *testing.T) {
	for _, ep := range []string{
		"ws://127.0.0.1:9222/devtools/browser/abc",
		"wss://remote.example/devtools/browser/abc",
	} {
		got, err := resolveWebSocketURL(context.Background(), ep)
		if err != nil {
			t.Errorf("resolveWebSocketURL(%q): unexpected error: %v", ep, err)
			continue
		}
		if got != ep {
			t.Errorf("resolveWebSocketURL(%q): expected passthrough, got %q", ep, got)
		}
	}
}

func TestResolveWebSocketURL_VersionProbe(t *testing.T) {
	const wsURL = "ws://127.0.0.1:9222/devtools/browser/deadbeef"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/json/version" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Browser":"Chrome/120.0","webSocketDebuggerUrl":"` + wsURL + `"}`))
	}))
	defer srv.Close()

	got, err := resolveWebSocketURL(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != wsURL {
		t.Errorf("expected %q, got %q", wsURL, got)
	}

	// A bare host:port gets the http scheme before the probe.
	bare := strings.TrimPrefix(srv.URL, "http://")
	got, err = resolveWebSocketURL(context.Background(), bare)
	if err != nil {
		t.Fatalf("bare host: unexpected error: %v", err)
	}
	if got != wsURL {
		t.Errorf("bare host: expected %q, got %q", wsURL, got)
	}
}

func TestResolveWebSocketURL_ProbeFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()
	if _, err := resolveWebSocketURL(context.Background(), srv.URL); err == nil {
		t.Error("expected error for non-200 version endpoint")
	}

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Browser":"Chrome/120.0"}`))
	}))
	defer empty.Close()
	if _, err := resolveWebSocketURL(context.Background(), empty.URL); err == nil {
		t.Error("expected error when the endpoint reports no debugger url")
	}
}
