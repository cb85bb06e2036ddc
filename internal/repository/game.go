package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"nogo/internal/bootstrap"
	"nogo/internal/domain/game"
	errs "nogo/internal/errors"
)

const (
	liveKeyPrefix     = "nogo:game:"
	archiveCollection = "games"
	opTimeout         = 5 * time.Second
)

// GameRepository keeps games in play in Redis and finished games in MongoDB.
type GameRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	redis *redis.Client
	mongo *mongo.Database
}

func NewGameRepository(cfg bootstrap.Config, log *zap.SugaredLogger, redis *redis.Client, mongo *mongo.Database) *GameRepository {
	return &GameRepository{
		cfg:   cfg,
		log:   log,
		redis: redis,
		mongo: mongo,
	}
}

func liveKey(id string) string {
	return liveKeyPrefix + id
}

// SaveActive stores rec under its id and refreshes the session TTL.
func (g *GameRepository) SaveActive(ctx context.Context, rec game.Record) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: encode game %s: %w", errs.ErrInternal, rec.ID, err)
	}
	if err = g.redis.Set(ctx, liveKey(rec.ID), data, g.cfg.SessionTTL()).Err(); err != nil {
		g.log.Errorw("failed to store live game", "game_id", rec.ID, "error", err)
		return fmt.Errorf("%w: store game %s: %w", errs.ErrInternal, rec.ID, err)
	}
	return nil
}

func (g *GameRepository) LoadActive(ctx context.Context, id string) (game.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var rec game.Record
	data, err := g.redis.Get(ctx, liveKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return rec, fmt.Errorf("%w: %s", errs.ErrGameNotFound, id)
	} else if err != nil {
		g.log.Errorw("failed to read live game", "game_id", id, "error", err)
		return rec, fmt.Errorf("%w: read game %s: %w", errs.ErrInternal, id, err)
	}

	if err = json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("%w: decode game %s: %w", errs.ErrInternal, id, err)
	}
	return rec, nil
}

func (g *GameRepository) DeleteActive(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := g.redis.Del(ctx, liveKey(id)).Err(); err != nil {
		return fmt.Errorf("%w: delete game %s: %w", errs.ErrInternal, id, err)
	}
	return nil
}

// Archive writes a finished game. Archiving the same game twice replaces
// the earlier document.
func (g *GameRepository) Archive(ctx context.Context, rec game.Record) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	collection := g.mongo.Collection(archiveCollection)
	opts := options.Replace().SetUpsert(true)
	if _, err := collection.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec, opts); err != nil {
		g.log.Errorw("failed to archive game", "game_id", rec.ID, "error", err)
		return fmt.Errorf("%w: archive game %s: %w", errs.ErrInternal, rec.ID, err)
	}

	g.log.Infow("game archived", "game_id", rec.ID, "winner", rec.Winner)
	return nil
}

func (g *GameRepository) GetArchived(ctx context.Context, id string) (game.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var rec game.Record
	err := g.mongo.Collection(archiveCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return rec, fmt.Errorf("%w: %s", errs.ErrGameNotFound, id)
	} else if err != nil {
		g.log.Errorw("failed to read archived game", "game_id", id, "error", err)
		return rec, fmt.Errorf("%w: read archived game %s: %w", errs.ErrInternal, id, err)
	}
	return rec, nil
}

// ListArchived returns page pageNum (counted from 1) of finished games,
// newest first, and the total number of pages.
func (g *GameRepository) ListArchived(ctx context.Context, pageNum, limit int) ([]game.Record, int, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	collection := g.mongo.Collection(archiveCollection)

	total, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("%w: count archived games: %w", errs.ErrInternal, err)
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	opts := options.Find().
		SetSort(bson.D{{Key: "finished_at", Value: -1}}).
		SetSkip(int64((pageNum - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: list archived games: %w", errs.ErrInternal, err)
	}
	defer cursor.Close(ctx)

	games := make([]game.Record, 0, limit)
	if err = cursor.All(ctx, &games); err != nil {
		return nil, 0, fmt.Errorf("%w: decode archived games: %w", errs.ErrInternal, err)
	}
	return games, totalPages, nil
}
