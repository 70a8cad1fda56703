package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"gameledger/internal/model"
	"gameledger/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game record operations

func (s *Storage) GetGameRecord(ctx context.Context, id model.GameID) (*model.GameRecord, error) {
	data, err := s.client.Get(ctx, recordKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var record model.GameRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Storage) GameRecordExists(ctx context.Context, id model.GameID) (bool, error) {
	exists, err := s.client.Exists(ctx, recordKey(id)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *Storage) ListGameRecords(ctx context.Context) ([]*model.GameRecord, error) {
	ids, err := s.client.SMembers(ctx, recordIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []*model.GameRecord{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = recordKey(model.GameID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*model.GameRecord, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Index entry without a record, e.g. mid-cleanup
		}
		var record model.GameRecord
		if err := json.Unmarshal([]byte(val.(string)), &record); err != nil {
			continue // Skip invalid data
		}
		records = append(records, &record)
	}

	return records, nil
}

func (s *Storage) DeleteGameRecords(ctx context.Context, ids []model.GameID) error {
	if len(ids) == 0 {
		return nil
	}

	keys := make([]string, len(ids))
	members := make([]interface{}, len(ids))
	for i, id := range ids {
		keys[i] = recordKey(id)
		members[i] = string(id)
	}

	// Measure the stored records first so metered bytes can be released
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return err
	}

	var freed int64
	for _, val := range values {
		if val == nil {
			continue
		}
		freed += int64(len(val.(string)))
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, keys...)
	pipe.SRem(ctx, recordIndexKey(), members...)
	if freed > 0 {
		pipe.DecrBy(ctx, meterKey(), freed)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Player index operations

func (s *Storage) GetPlayerGameIDs(ctx context.Context, playerID model.AccountID) ([]model.GameID, error) {
	raw, err := s.client.LRange(ctx, playerGamesKey(playerID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]model.GameID, len(raw))
	for i, id := range raw {
		ids[i] = model.GameID(id)
	}
	return ids, nil
}

// Player stats operations

func (s *Storage) GetPlayerStats(ctx context.Context, playerID model.AccountID) (*model.PlayerStats, error) {
	data, err := s.client.Get(ctx, statsKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var stats model.PlayerStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *Storage) ListPlayerStats(ctx context.Context) ([]*model.PlayerStats, error) {
	players, err := s.client.SMembers(ctx, playerIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(players) == 0 {
		return []*model.PlayerStats{}, nil
	}

	keys := make([]string, len(players))
	for i, p := range players {
		keys[i] = statsKey(model.AccountID(p))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	all := make([]*model.PlayerStats, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var stats model.PlayerStats
		if err := json.Unmarshal([]byte(val.(string)), &stats); err != nil {
			continue // Skip invalid data
		}
		all = append(all, &stats)
	}

	return all, nil
}

// ApplyChangeset commits a record submission in one transactional pipeline
func (s *Storage) ApplyChangeset(ctx context.Context, cs *storage.Changeset) error {
	delta, err := cs.StorageDelta()
	if err != nil {
		return err
	}

	recordData, err := json.Marshal(cs.Record)
	if err != nil {
		return err
	}
	statsData, err := json.Marshal(cs.Stats)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, recordKey(cs.Record.GameID), recordData, 0)
	pipe.SAdd(ctx, recordIndexKey(), string(cs.Record.GameID))
	pipe.RPush(ctx, playerGamesKey(cs.Record.PlayerID), string(cs.Record.GameID))
	pipe.Set(ctx, statsKey(cs.Stats.PlayerID), statsData, 0)
	pipe.SAdd(ctx, playerIndexKey(), string(cs.Stats.PlayerID))
	pipe.Incr(ctx, totalGamesKey())
	if cs.NewPlayer {
		pipe.Incr(ctx, totalPlayersKey())
	}
	pipe.IncrBy(ctx, meterKey(), delta)
	_, err = pipe.Exec(ctx)
	return err
}

// Leaderboard cache operations

func (s *Storage) GetLeaderboard(ctx context.Context) (*model.LeaderboardSnapshot, error) {
	data, err := s.client.Get(ctx, leaderboardKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &model.LeaderboardSnapshot{}, nil
		}
		return nil, err
	}

	var snapshot model.LeaderboardSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (s *Storage) SaveLeaderboard(ctx context.Context, entries []model.LeaderboardEntry, rebuiltAt int64) error {
	snapshot := model.LeaderboardSnapshot{
		Entries:   entries,
		RebuiltAt: rebuiltAt,
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, leaderboardKey(), data, 0).Err()
}

func (s *Storage) ClearLeaderboard(ctx context.Context) error {
	return s.client.Del(ctx, leaderboardKey()).Err()
}

// Admin roster operations

func (s *Storage) GetAdmins(ctx context.Context) ([]model.AccountID, error) {
	data, err := s.client.Get(ctx, adminsKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []model.AccountID{}, nil
		}
		return nil, err
	}

	var admins []model.AccountID
	if err := json.Unmarshal(data, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

func (s *Storage) SaveAdmins(ctx context.Context, admins []model.AccountID) error {
	data, err := json.Marshal(admins)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, adminsKey(), data, 0).Err()
}

// Storage price operations

func (s *Storage) GetStoragePrice(ctx context.Context) (uint64, bool, error) {
	val, err := s.client.Get(ctx, priceKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}

	price, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return price, true, nil
}

func (s *Storage) SetStoragePrice(ctx context.Context, price uint64) error {
	return s.client.Set(ctx, priceKey(), strconv.FormatUint(price, 10), 0).Err()
}

// Ledger-wide counters

func (s *Storage) GetContractTotals(ctx context.Context) (*model.ContractTotals, error) {
	values, err := s.client.MGet(ctx, totalGamesKey(), totalPlayersKey()).Result()
	if err != nil {
		return nil, err
	}

	totals := &model.ContractTotals{}
	if games, err := counterValue(values[0]); err == nil {
		totals.TotalGames = games
	}
	if players, err := counterValue(values[1]); err == nil {
		totals.TotalPlayers = players
	}
	return totals, nil
}

func (s *Storage) StorageBytes(ctx context.Context) (int64, error) {
	val, err := s.client.Get(ctx, meterKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}

	return strconv.ParseInt(val, 10, 64)
}

func counterValue(val interface{}) (int64, error) {
	if val == nil {
		return 0, nil
	}
	return strconv.ParseInt(val.(string), 10, 64)
}
