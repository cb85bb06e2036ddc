package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"nogo/internal/bootstrap"
	"nogo/internal/domain/game"
	errs "nogo/internal/errors"
)

const archiveKeyPrefix = "nogo:archive:"

// BadgerGameRepository keeps live and finished games in one embedded
// store, for running without Redis and MongoDB.
type BadgerGameRepository struct {
	cfg bootstrap.Config
	log *zap.SugaredLogger
	db  *badger.DB
}

func NewBadgerGameRepository(cfg bootstrap.Config, log *zap.SugaredLogger, db *badger.DB) *BadgerGameRepository {
	return &BadgerGameRepository{
		cfg: cfg,
		log: log,
		db:  db,
	}
}

func archiveKey(id string) string {
	return archiveKeyPrefix + id
}

func (b *BadgerGameRepository) put(key string, rec game.Record, withTTL bool) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: encode game %s: %w", errs.ErrInternal, rec.ID, err)
	}
	err = b.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), data)
		if withTTL && b.cfg.SessionTTL() > 0 {
			entry = entry.WithTTL(b.cfg.SessionTTL())
		}
		return txn.SetEntry(entry)
	})
	if err != nil {
		b.log.Errorw("failed to store game", "key", key, "error", err)
		return fmt.Errorf("%w: store game %s: %w", errs.ErrInternal, rec.ID, err)
	}
	return nil
}

func (b *BadgerGameRepository) get(key, id string) (game.Record, error) {
	var rec game.Record
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return rec, fmt.Errorf("%w: %s", errs.ErrGameNotFound, id)
	} else if err != nil {
		return rec, fmt.Errorf("%w: read game %s: %w", errs.ErrInternal, id, err)
	}
	return rec, nil
}

func (b *BadgerGameRepository) SaveActive(_ context.Context, rec game.Record) error {
	return b.put(liveKey(rec.ID), rec, true)
}

func (b *BadgerGameRepository) LoadActive(_ context.Context, id string) (game.Record, error) {
	return b.get(liveKey(id), id)
}

func (b *BadgerGameRepository) DeleteActive(_ context.Context, id string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(liveKey(id)))
	})
	if err != nil {
		return fmt.Errorf("%w: delete game %s: %w", errs.ErrInternal, id, err)
	}
	return nil
}

func (b *BadgerGameRepository) Archive(_ context.Context, rec game.Record) error {
	if err := b.put(archiveKey(rec.ID), rec, false); err != nil {
		return err
	}
	b.log.Infow("game archived", "game_id", rec.ID, "winner", rec.Winner)
	return nil
}

func (b *BadgerGameRepository) GetArchived(_ context.Context, id string) (game.Record, error) {
	return b.get(archiveKey(id), id)
}

// ListArchived pages through finished games, newest first. The archive is
// scanned in full to sort it.
func (b *BadgerGameRepository) ListArchived(_ context.Context, pageNum, limit int) ([]game.Record, int, error) {
	var all []game.Record
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(archiveKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec game.Record
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			all = append(all, rec)
		}
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("%w: list archived games: %w", errs.ErrInternal, err)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return finishedAt(all[i]).After(finishedAt(all[j]))
	})

	totalPages := (len(all) + limit - 1) / limit
	start := min((pageNum-1)*limit, len(all))
	end := min(start+limit, len(all))
	return all[start:end], totalPages, nil
}

func finishedAt(rec game.Record) time.Time {
	if rec.FinishedAt != nil {
		return *rec.FinishedAt
	}
	return rec.UpdatedAt
}
