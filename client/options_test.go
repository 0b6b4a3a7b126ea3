package client

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.BufferSize != 8192 {
		t.Errorf("expected buffer size %d, got %d", 8192, config.BufferSize)
	}
	if config.Timeout != time.Second*5 {
		t.Errorf("expected timeout %v, got %v", time.Second*5, config.Timeout)
	}
	if config.Encoding != "utf-8" {
		t.Errorf("expected encoding %q, got %q", "utf-8", config.Encoding)
	}
	if config.Logger == nil {
		t.Error("logger not initialized")
	}
}
