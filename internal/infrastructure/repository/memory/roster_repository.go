package memory

import (
	"context"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/roster-sync/internal/domain/roster"
)

// RosterRepository keeps the encoded roster document in memory so jobs can be exercised
// end to end without touching disk.
type RosterRepository struct {
	mu        sync.RWMutex
	document  []byte
	saveCount int
}

func NewRosterRepository(document []byte) *RosterRepository {
	return &RosterRepository{document: append([]byte(nil), document...)}
}

func (r *RosterRepository) Load(_ context.Context) ([]roster.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records, err := roster.DecodeCollection(r.document)
	if err != nil {
		return nil, crerr.Wrap(err, "decode in-memory roster")
	}
	if err := roster.ValidateCollection(records); err != nil {
		return nil, crerr.Wrap(err, "validate in-memory roster")
	}
	return records, nil
}

func (r *RosterRepository) Save(ctx context.Context, records []roster.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := roster.EncodeCollection(records)
	if err != nil {
		return crerr.Wrap(err, "encode in-memory roster")
	}

	r.mu.Lock()
	r.document = data
	r.saveCount++
	r.mu.Unlock()
	return nil
}

func (r *RosterRepository) Document() []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]byte(nil), r.document...)
}

func (r *RosterRepository) SaveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saveCount
}
