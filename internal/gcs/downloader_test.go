package gcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURI(t *testing.T) {
	bucket, object, err := ParseURI("gs://statements/incoming/nov_2025_scotia.pdf")
	require.NoError(t, err)
	assert.Equal(t, "statements", bucket)
	assert.Equal(t, "incoming/nov_2025_scotia.pdf", object)
}

func TestParseURIErrors(t *testing.T) {
	for _, uri := range []string{
		"",
		"statements/file.pdf",
		"s3://bucket/key",
		"gs://bucket-only",
		"gs:///no-bucket",
	} {
		_, _, err := ParseURI(uri)
		assert.Error(t, err, uri)
	}
}
