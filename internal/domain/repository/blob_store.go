package repository

import "context"

// BlobStore is the persistence collaborator for the ledger aggregate: a
// key-value interface over opaque blobs. Implementations give no cross-process
// consistency guarantee; the in-memory ledger stays authoritative for the
// lifetime of the process.
type BlobStore interface {
	// Load returns the blob stored under key. The second result is false when
	// the key is absent (absent is not an error).
	Load(ctx context.Context, key string) ([]byte, bool, error)

	// Save writes the blob under key, replacing any previous value.
	Save(ctx context.Context, key string, blob []byte) error
}
