package telemetry

import (
	"context"
	"testing"
	"time"
)

func TestInit_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := Init(context.Background(), "test", "  ")
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if shutdown == nil {
		t.Fatal("Expected a shutdown func")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("Expected noop shutdown, got %v", err)
	}
}

func TestInit_WithEndpoint(t *testing.T) {
	shutdown, err := Init(context.Background(), "test", "http://127.0.0.1:4318")
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		t.Errorf("Expected clean shutdown with no spans, got %v", err)
	}
}

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		endpoint   string
		wantHost   string
		wantSecure bool
	}{
		{"", "", false},
		{"collector:4318", "collector:4318", false},
		{"http://collector:4318", "collector:4318", false},
		{"https://otel.example.com/", "otel.example.com", true},
		{"  http://localhost:4318  ", "localhost:4318", false},
	}

	for _, tt := range tests {
		host, secure := parseEndpoint(tt.endpoint)
		if host != tt.wantHost || secure != tt.wantSecure {
			t.Errorf("parseEndpoint(%q) = %q, %v; want %q, %v", tt.endpoint, host, secure, tt.wantHost, tt.wantSecure)
		}
	}
}
