package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DrawBoard/internal/state"
)

func TestPDFWritesSnapshot(t *testing.T) {
	h := state.NewHistory(8)
	h.Record(427, 240, 0xFFFFFF00)
	h.Record(432, 240, 0xFF000000)
	h.Record(432, 245, 0x0000FF00)

	path := filepath.Join(t.TempDir(), "drawing.pdf")
	err := PDF(path, state.Bounds{Width: 854, Height: 480}, 0, h, Metadata{
		Session: "test-session",
		Started: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Frames:  3,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestPDFEmptyHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	require.NoError(t, PDF(path, state.Bounds{Width: 10, Height: 10}, 0xFFFFFF00, state.NewHistory(1), Metadata{}))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestPDFBadPath(t *testing.T) {
	err := PDF(filepath.Join(t.TempDir(), "missing", "x.pdf"), state.Bounds{Width: 10, Height: 10}, 0, state.NewHistory(1), Metadata{})
	assert.Error(t, err)
}
