// Package file persists the ledger snapshot as a single JSON document.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/commercebot/shopkeeper/internal/ledger/domain"
)

type Store struct {
	log  *slog.Logger
	path string
}

func NewStore(log *slog.Logger, path string) *Store {
	return &Store{log: log, path: path}
}

// Load reads the snapshot file. A missing file yields the default state;
// any other read or decode failure is returned as-is.
func (s *Store) Load(ctx context.Context) (domain.Snapshot, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Info("no snapshot file, starting from defaults", "path", s.path)
		return domain.DefaultSnapshot(), nil
	}
	if err != nil {
		return domain.Snapshot{}, err
	}

	snap := domain.DefaultSnapshot()
	if err := json.Unmarshal(b, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if snap.Products == nil {
		snap.Products = map[string]domain.Product{}
	}
	if snap.Orders == nil {
		snap.Orders = map[string]domain.Order{}
	}
	if snap.Suppliers == nil {
		snap.Suppliers = map[string]json.RawMessage{}
	}
	return snap, nil
}

// Save writes the full snapshot atomically: the document goes to a temp
// file in the same directory which is then renamed over the target, so a
// crash mid-write never leaves a truncated snapshot behind.
func (s *Store) Save(ctx context.Context, snap domain.Snapshot) error {
	b, err := json.MarshalIndent(snap, "", "    ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
