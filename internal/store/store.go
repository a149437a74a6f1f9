package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Store persists board snapshots to Redis, keyed by game ID and version, so
// a finished or interrupted game can be inspected and replayed later.
type Store struct {
	rdb *redis.Client
	log *zap.Logger
}

// Open connects to Redis and verifies the connection with a ping.
func Open(ctx context.Context, addr, password string, log *zap.Logger) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	log.Info("connected to redis", zap.String("addr", addr))
	return &Store{rdb: rdb, log: log}, nil
}

func snapshotKey(gameID string) string { return "game:" + gameID + ":snapshots" }
func versionKey(gameID string) string  { return "game:" + gameID + ":version" }

// SaveSnapshot stores one serialized board version and advances the latest
// version marker.
func (s *Store) SaveSnapshot(ctx context.Context, gameID string, version int, data []byte) error {
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, snapshotKey(gameID), strconv.Itoa(version), data)
	pipe.Set(ctx, versionKey(gameID), version, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save snapshot %s v%d: %w", gameID, version, err)
	}
	return nil
}

// LoadSnapshot returns the latest stored snapshot and its version.
func (s *Store) LoadSnapshot(ctx context.Context, gameID string) ([]byte, int, error) {
	version, err := s.rdb.Get(ctx, versionKey(gameID)).Int()
	if err != nil {
		return nil, 0, fmt.Errorf("load version %s: %w", gameID, err)
	}
	data, err := s.rdb.HGet(ctx, snapshotKey(gameID), strconv.Itoa(version)).Bytes()
	if err != nil {
		return nil, 0, fmt.Errorf("load snapshot %s v%d: %w", gameID, version, err)
	}
	return data, version, nil
}

// Delete drops every stored snapshot for a game.
func (s *Store) Delete(ctx context.Context, gameID string) error {
	return s.rdb.Del(ctx, snapshotKey(gameID), versionKey(gameID)).Err()
}

// Close releases the Redis connection.
func (s *Store) Close() error {
	return s.rdb.Close()
}
