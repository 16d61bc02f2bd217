package inventory

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/uniform-stock/internal/domain/entity"
	"github.com/jhoicas/uniform-stock/internal/domain/repository"
	"github.com/jhoicas/uniform-stock/pkg/logger"
)

// LedgerStore loads and saves the whole ledger aggregate as one JSON blob
// through the BlobStore collaborator. Timestamps round-trip as RFC 3339 text
// and come back as time.Time values on load.
type LedgerStore struct {
	blobs repository.BlobStore
	key   string
	log   *logger.Logger
}

// NewLedgerStore builds the store for a single blob key.
func NewLedgerStore(blobs repository.BlobStore, key string, log *logger.Logger) *LedgerStore {
	return &LedgerStore{blobs: blobs, key: key, log: log}
}

// Load returns the persisted ledger. An absent key, a load error or a corrupt
// payload all degrade to an empty ledger: the store never fails a read, it
// only logs what it found.
func (s *LedgerStore) Load(ctx context.Context) *entity.Ledger {
	data, ok, err := s.blobs.Load(ctx, s.key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("loading ledger blob, starting empty")
		return entity.NewLedger()
	}
	if !ok {
		return entity.NewLedger()
	}

	var ledger entity.Ledger
	if err := json.Unmarshal(data, &ledger); err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("corrupt ledger blob, starting empty")
		return entity.NewLedger()
	}
	if ledger.Products == nil {
		ledger.Products = make(map[string]*entity.Product)
	}
	if ledger.Movements == nil {
		ledger.Movements = []entity.Movement{}
	}
	return &ledger
}

// Save serializes and persists the aggregate. Failures are logged and
// swallowed: the in-memory state stays authoritative for the rest of the
// process lifetime, there is no rollback.
func (s *LedgerStore) Save(ctx context.Context, ledger *entity.Ledger) {
	data, err := json.Marshal(ledger)
	if err != nil {
		s.log.Error().Err(err).Str("key", s.key).Msg("serializing ledger")
		return
	}
	if err := s.blobs.Save(ctx, s.key, data); err != nil {
		s.log.Error().Err(err).Str("key", s.key).Msg("persisting ledger")
	}
}
