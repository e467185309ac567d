package s3blob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chainarb/arbscan/internal/domain"
)

const ndjsonContentType = "application/x-ndjson"

// Archiver implements domain.Archiver by serializing the current snapshot
// and execution history to JSONL and uploading the documents to object
// storage. Keys are partitioned by capture time, so successive archives of
// the same day land under the same prefix.
type Archiver struct {
	writer domain.BlobWriter
	now    func() time.Time
}

// NewArchiver creates an Archiver over the given writer.
func NewArchiver(writer domain.BlobWriter) *Archiver {
	return &Archiver{writer: writer, now: time.Now}
}

// ArchiveSnapshot uploads the ranked opportunity set as one JSONL document
// and returns the object key.
func (a *Archiver) ArchiveSnapshot(ctx context.Context, opps []domain.Opportunity) (string, error) {
	buf, err := marshalJSONL(opps)
	if err != nil {
		return "", fmt.Errorf("s3blob: archive snapshot marshal: %w", err)
	}
	key := archiveKey("snapshots", a.now().UTC())
	if err := a.writer.Write(ctx, key, buf, ndjsonContentType); err != nil {
		return "", fmt.Errorf("s3blob: archive snapshot upload: %w", err)
	}
	return key, nil
}

// ArchiveHistory uploads the execution history as one JSONL document and
// returns the object key.
func (a *Archiver) ArchiveHistory(ctx context.Context, recs []domain.ExecutionRecord) (string, error) {
	buf, err := marshalJSONL(recs)
	if err != nil {
		return "", fmt.Errorf("s3blob: archive history marshal: %w", err)
	}
	key := archiveKey("executions", a.now().UTC())
	if err := a.writer.Write(ctx, key, buf, ndjsonContentType); err != nil {
		return "", fmt.Errorf("s3blob: archive history upload: %w", err)
	}
	return key, nil
}

// archiveKey builds the object key for an archive document:
//
//	archive/snapshots/2025-01-02/150405.jsonl
//	archive/executions/2025-01-02/150405.jsonl
func archiveKey(kind string, at time.Time) string {
	return fmt.Sprintf("archive/%s/%s/%s.jsonl", kind, at.Format("2006-01-02"), at.Format("150405"))
}

// marshalJSONL serializes a slice of records as newline-delimited JSON.
func marshalJSONL[T any](records []T) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// Compile-time interface check.
var _ domain.Archiver = (*Archiver)(nil)
