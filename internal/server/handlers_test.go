package server

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/ShreyashPatil123/Panther-update-sub001/internal/nav"
)

func TestStringParam(t *testing.T) {
	params := map[string]interface{}{
		"url":     "https://example.com",
		"timeout": 30,
	}

	if got := stringParam(params, "url", ""); got != "https://example.com" {
		t.Errorf("string value: got %q", got)
	}
	if got := stringParam(params, "missing", "fallback"); got != "fallback" {
		t.Errorf("missing key: got %q, want fallback", got)
	}
	// Numeric values are stringified, not dropped.
	if got := stringParam(params, "timeout", ""); got != "30" {
		t.Errorf("numeric value: got %q, want \"30\"", got)
	}
}

func TestIntParam(t *testing.T) {
	params := map[string]interface{}{
		"a": 5,
		"b": float64(7), // JSON numbers decode as float64
		"c": int64(9),
		"d": "not a number",
	}

	tests := []struct {
		key  string
		want int
	}{
		{"a", 5},
		{"b", 7},
		{"c", 9},
		{"d", 42},
		{"missing", 42},
	}
	for _, tt := range tests {
		if got := intParam(params, tt.key, 42); got != tt.want {
			t.Errorf("intParam(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}
}

func TestBoolParam(t *testing.T) {
	params := map[string]interface{}{
		"yes": true,
		"no":  false,
		"str": "true",
	}

	if !boolParam(params, "yes", false) {
		t.Error("true value should be true")
	}
	if boolParam(params, "no", true) {
		t.Error("false value should be false")
	}
	// Strings never coerce to bool.
	if boolParam(params, "str", false) {
		t.Error("string value should fall back to default")
	}
	if !boolParam(params, "missing", true) {
		t.Error("missing key should fall back to default")
	}
}

func TestStatusReport_YAMLShape(t *testing.T) {
	report := statusReport{
		Version:   "dev",
		Transport: "stdio",
		Endpoint:  "http://127.0.0.1:9222",
		Sessions:  1,
		Native:    true,
		Metrics:   nav.NewMetrics().Snapshot(),
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		t.Fatal(err)
	}

	var m map[string]interface{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"version", "transport", "endpoint", "sessions", "native_input", "metrics"} {
		if _, ok := m[key]; !ok {
			t.Errorf("status report missing %q field", key)
		}
	}
}
