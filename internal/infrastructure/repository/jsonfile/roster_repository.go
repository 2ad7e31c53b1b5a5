package jsonfile

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/roster-sync/internal/domain/roster"
	"github.com/riskibarqy/roster-sync/internal/platform/logging"
)

// RosterRepository keeps the roster as one pretty-printed JSON array on disk.
type RosterRepository struct {
	path   string
	logger *logging.Logger
}

func NewRosterRepository(path string, logger *logging.Logger) *RosterRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &RosterRepository{path: path, logger: logger}
}

func (r *RosterRepository) Path() string {
	return r.path
}

func (r *RosterRepository) Load(ctx context.Context) ([]roster.Record, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, crerr.Wrapf(err, "read roster %s", r.path)
	}

	records, err := roster.DecodeCollection(data)
	if err != nil {
		return nil, crerr.Wrapf(err, "decode roster %s", r.path)
	}
	if err := roster.ValidateCollection(records); err != nil {
		return nil, crerr.Wrapf(err, "validate roster %s", r.path)
	}

	r.logger.DebugContext(ctx, "roster loaded", "path", r.path, "records", len(records))
	return records, nil
}

// Save rewrites the whole file through a temp file and rename. Identical output is not rewritten.
func (r *RosterRepository) Save(ctx context.Context, records []roster.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := roster.EncodeCollection(records)
	if err != nil {
		return crerr.Wrap(err, "encode roster")
	}

	if existing, err := os.ReadFile(r.path); err == nil && bytes.Equal(existing, data) {
		r.logger.InfoContext(ctx, "roster unchanged, skipping write", "path", r.path)
		return nil
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return crerr.Wrapf(err, "create roster dir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return crerr.Wrap(err, "create temp roster file")
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return crerr.Wrap(err, "write temp roster file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return crerr.Wrap(err, "sync temp roster file")
	}
	if err := tmp.Close(); err != nil {
		return crerr.Wrap(err, "close temp roster file")
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return crerr.Wrap(err, "chmod temp roster file")
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return crerr.Wrapf(err, "replace roster %s", r.path)
	}

	r.logger.InfoContext(ctx, "roster written", "path", r.path, "records", len(records), "bytes", len(data))
	return nil
}
