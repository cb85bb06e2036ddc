package adapters

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"nogo/internal/bootstrap"
)

// AdapterBadger opens the embedded store used when the server runs without
// Redis and MongoDB. An empty BadgerDir keeps everything in memory.
type AdapterBadger struct {
	db  *badger.DB
	cfg *bootstrap.Config
	log *zap.SugaredLogger
}

func NewAdapterBadger(cfg *bootstrap.Config, log *zap.SugaredLogger) *AdapterBadger {
	return &AdapterBadger{
		cfg: cfg,
		log: log,
	}
}

func (a *AdapterBadger) Init(ctx context.Context) error {
	opts := badger.DefaultOptions(a.cfg.BadgerDir)
	if a.cfg.BadgerDir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("open badger at %q: %w", a.cfg.BadgerDir, err)
	}
	a.db = db

	a.log.Infow("opened badger store", "dir", a.cfg.BadgerDir)
	return nil
}

func (a *AdapterBadger) GetDB() *badger.DB {
	return a.db
}

func (a *AdapterBadger) Close(ctx context.Context) error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
