package visualization

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeJSON_RoundTrip(t *testing.T) {
	chart, err := Scatter3D(resultTable(t), "strength", "cost", "density", "Utility")
	require.NoError(t, err)

	data, err := EncodeJSON(chart)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"scatter3d"`)

	decoded, err := DecodeJSON(data)
	require.NoError(t, err)
	assert.Equal(t, chart, decoded)
}

func TestWriteCompressed_RoundTrip(t *testing.T) {
	chart, err := ParallelCoordinates(resultTable(t), []string{"strength", "cost"}, "Utility")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCompressed(&buf, chart))

	decoded, err := ReadCompressed(&buf)
	require.NoError(t, err)
	assert.Equal(t, chart, decoded)
}

func TestReadCompressed_Garbage(t *testing.T) {
	_, err := ReadCompressed(bytes.NewReader([]byte("definitely not zstd")))
	require.Error(t, err)
}
