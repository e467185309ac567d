package s3blob

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainarb/arbscan/internal/domain"
)

type memWriter struct {
	objects      map[string][]byte
	contentTypes map[string]string
}

func newMemWriter() *memWriter {
	return &memWriter{
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

func (m *memWriter) Write(_ context.Context, key string, data []byte, contentType string) error {
	m.objects[key] = data
	m.contentTypes[key] = contentType
	return nil
}

func TestArchiveSnapshot(t *testing.T) {
	w := newMemWriter()
	a := NewArchiver(w)
	a.now = func() time.Time {
		return time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)
	}

	key, err := a.ArchiveSnapshot(context.Background(), []domain.Opportunity{
		{ID: "a"}, {ID: "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, "archive/snapshots/2025-01-02/150405.jsonl", key)
	assert.Equal(t, ndjsonContentType, w.contentTypes[key])

	lines := strings.Split(strings.TrimSpace(string(w.objects[key])), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"id":"a"`)
	assert.Contains(t, lines[1], `"id":"b"`)
}

func TestArchiveHistoryKey(t *testing.T) {
	w := newMemWriter()
	a := NewArchiver(w)
	a.now = func() time.Time {
		return time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	}

	key, err := a.ArchiveHistory(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "archive/executions/2025-06-30/235959.jsonl", key)
	assert.Empty(t, w.objects[key], "an empty history archives as an empty document")
}
