package minio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	tests := map[string]string{
		"a.png":                  "a.png",
		"/a.png":                 "a.png",
		"products/a.png":         "a.png",
		"/products/a.png":        "a.png",
		"s3://products/a.png":    "a.png",
		"s3://other/a.png":       "other/a.png",
		"products/nested/b.webp": "nested/b.webp",
		"":                       "",
	}

	for ref, want := range tests {
		assert.Equal(t, want, objectKey(ref, "products"), ref)
	}
}
