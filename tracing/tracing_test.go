package tracing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOTLPEndpoint(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"tempo:4318", "tempo:4318"},
		{"http://tempo:4318", "tempo:4318"},
		{"https://collector.local", "collector.local:4318"},
		{"  otel:4318 ", "otel:4318"},
	}
	for _, tt := range tests {
		got, err := parseOTLPEndpoint(tt.raw)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestInit_DisabledWithoutEndpoint(t *testing.T) {
	assert.Nil(t, Init("campsite-backend", ""))
}
