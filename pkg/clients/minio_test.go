package clients

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		useSSL     bool
		wantHost   string
		wantSecure bool
	}{
		{name: "host and port", raw: "minio:9000", wantHost: "minio:9000"},
		{name: "host keeps flag", raw: "minio:9000", useSSL: true, wantHost: "minio:9000", wantSecure: true},
		{name: "trailing slash", raw: "minio:9000/", wantHost: "minio:9000"},
		{name: "http url", raw: "http://minio:9000", useSSL: true, wantHost: "minio:9000"},
		{name: "https url", raw: "https://s3.example.com", wantHost: "s3.example.com", wantSecure: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, secure, err := parseEndpoint(tt.raw, tt.useSSL)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, host)
			assert.Equal(t, tt.wantSecure, secure)
		})
	}
}

func TestParseEndpointRejectsScheme(t *testing.T) {
	_, _, err := parseEndpoint("ftp://minio:9000", false)
	require.Error(t, err)
}
