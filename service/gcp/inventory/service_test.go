package gcpinventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	compute "google.golang.org/api/compute/v1"
)

func TestExtractResourceName(t *testing.T) {
	url := "https://www.googleapis.com/compute/v1/projects/demo/zones/us-central1-a/disks/data-disk-1"

	assert.Equal(t, "data-disk-1", extractResourceName(url))
	assert.Equal(t, "bare-name", extractResourceName("bare-name"))
}

func TestStopTimestamp(t *testing.T) {
	instance := &compute.Instance{
		CreationTimestamp: "2026-01-01T00:00:00Z",
		LastStopTimestamp: "2026-07-15T12:00:00Z",
	}

	parsed, ok := stopTimestamp(instance)
	require.True(t, ok)
	assert.Equal(t, 15, parsed.Day())

	instance.LastStopTimestamp = ""
	parsed, ok = stopTimestamp(instance)
	require.True(t, ok, "falls back to the creation timestamp")
	assert.Equal(t, 2026, parsed.Year())

	instance.CreationTimestamp = "garbage"
	_, ok = stopTimestamp(instance)
	assert.False(t, ok)
}
