package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeaviateAddrs(t *testing.T) {
	cfg := &Config{
		WeaviateScheme:   "http",
		WeaviateHost:     "weaviate.local",
		WeaviatePort:     8080,
		WeaviateGRPCPort: 50051,
	}

	assert.Equal(t, "weaviate.local:8080", cfg.WeaviateAddr())
	assert.Equal(t, "weaviate.local:50051", cfg.WeaviateGRPCAddr())
}

func TestGetGinMode(t *testing.T) {
	tests := []struct {
		logLevel string
		expected string
	}{
		{logLevel: "debug", expected: "debug"},
		{logLevel: "info", expected: "release"},
		{logLevel: "warn", expected: "release"},
		{logLevel: "error", expected: "release"},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			assert.Equal(t, tt.expected, cfg.GetGinMode())
		})
	}
}
