package domain

import "context"

// BlobWriter writes a document to object storage under the given key.
type BlobWriter interface {
	Write(ctx context.Context, key string, data []byte, contentType string) error
}

// Archiver exports the current snapshot and execution history as JSONL
// documents in object storage.
type Archiver interface {
	ArchiveSnapshot(ctx context.Context, opps []Opportunity) (string, error)
	ArchiveHistory(ctx context.Context, recs []ExecutionRecord) (string, error)
}
