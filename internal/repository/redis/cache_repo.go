package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jimlawless/whereami"
	goredis "github.com/redis/go-redis/v9"

	"github.com/DRSN-tech/fitting-backend/internal/cfg"
	"github.com/DRSN-tech/fitting-backend/internal/domain"
	"github.com/DRSN-tech/fitting-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/fitting-backend/internal/usecase"
	"github.com/DRSN-tech/fitting-backend/pkg/clients"
	"github.com/DRSN-tech/fitting-backend/pkg/e"
	"github.com/DRSN-tech/fitting-backend/pkg/logger"
)

const (
	vectorKeyPrefix  = "vector:"
	productKeyPrefix = "product:"

	scanBatchSize = 500
)

// CacheRepo хранит векторы и записи каталога в Redis с TTL.
type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.ProductRecordConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.ProductRecordConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// CacheVector сохраняет вектор как JSON-массив. Повторная запись по той же
// позиции перезаписывает значение и сбрасывает TTL.
func (r *CacheRepo) CacheVector(ctx context.Context, pos int64, vector []float32, ttl time.Duration) error {
	if err := domain.ValidateVector(vector); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	data, err := json.Marshal(vector)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := r.client.Client.Set(ctx, r.vectorKey(pos), data, r.ttlOrDefault(ttl)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// CacheProduct сохраняет запись каталога как JSON-объект с нормализованными полями.
func (r *CacheRepo) CacheProduct(ctx context.Context, record *domain.ProductRecord, ttl time.Duration) error {
	model := r.conv.ToRedisModel(record)

	data, err := converter.SafeMarshal(model)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := r.client.Client.Set(ctx, r.productKey(record.Pos), data, r.ttlOrDefault(ttl)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (r *CacheRepo) ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl > 0 {
		return ttl
	}

	return r.cfg.DefaultTTL
}

// GetCachedVector возвращает вектор либо nil при промахе.
func (r *CacheRepo) GetCachedVector(ctx context.Context, pos int64) ([]float32, error) {
	data, err := r.getBytes(ctx, r.vectorKey(pos))
	if err != nil || data == nil {
		return nil, err
	}

	vector, err := domain.ParseVector(data)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return vector, nil
}

// GetCachedProduct возвращает запись каталога либо nil при промахе.
func (r *CacheRepo) GetCachedProduct(ctx context.Context, pos int64) (*domain.ProductRecord, error) {
	data, err := r.getBytes(ctx, r.productKey(pos))
	if err != nil || data == nil {
		return nil, err
	}

	model, err := converter.TryUnmarshal(data)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToDomain(model), nil
}

// SearchCachedVectors перебирает все закэшированные векторы и возвращает
// ближайшие по L2-дистанции записи, у которых в кэше есть и товар.
// Пустой кэш дает пустой срез без ошибки.
func (r *CacheRepo) SearchCachedVectors(ctx context.Context, queryVector []float32, limit int) ([]usecase.SearchResult, error) {
	if err := domain.ValidateVector(queryVector); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	keys, err := r.scanKeys(ctx, vectorKeyPrefix+"*")
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if len(keys) == 0 {
		return []usecase.SearchResult{}, nil
	}

	type candidate struct {
		pos      int64
		distance float64
		vector   []float32
	}

	candidates := make([]candidate, 0, len(keys))

	for offset := 0; offset < len(keys); offset += scanBatchSize {
		end := offset + scanBatchSize
		if end > len(keys) {
			end = len(keys)
		}

		batch := keys[offset:end]
		values, err := r.client.Client.MGet(ctx, batch...).Result()
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		for i, val := range values {
			data, err := redisValueToBytes(val, batch[i])
			if err != nil || data == nil {
				continue
			}

			pos, err := strconv.ParseInt(strings.TrimPrefix(batch[i], vectorKeyPrefix), 10, 64)
			if err != nil {
				r.logger.Warnf("некорректный ключ вектора %q: %v", batch[i], err)
				continue
			}

			vector, err := domain.ParseVector(data)
			if err != nil {
				r.logger.Warnf("вектор pos=%d не разобран: %v", pos, err)
				continue
			}

			candidates = append(candidates, candidate{
				pos:      pos,
				distance: domain.L2Distance(queryVector, vector),
				vector:   vector,
			})
		}
	}

	sort.Slice(candidates, func(a, b int) bool {
		return candidates[a].distance < candidates[b].distance
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	results := make([]usecase.SearchResult, 0, len(candidates))
	for _, c := range candidates {
		record, err := r.GetCachedProduct(ctx, c.pos)
		if err != nil {
			r.logger.Warnf("товар pos=%d не прочитан из кэша: %v", c.pos, err)
			continue
		}

		if record == nil {
			continue // вектор без товара — неполная пара, пропускаем
		}

		results = append(results, usecase.SearchResult{
			Record:     *record,
			Similarity: 1.0 - c.distance,
			Vector:     c.vector,
		})
	}

	return results, nil
}

// Stats возвращает метрики кэша: число ключей по типам и память бэкенда.
// Недоступный бэкенд дает пустую карту без ошибки.
func (r *CacheRepo) Stats(ctx context.Context) (map[string]any, error) {
	vectorKeys, err := r.scanKeys(ctx, vectorKeyPrefix+"*")
	if err != nil {
		r.logger.Warnf("статистика кэша недоступна: %v", err)
		return map[string]any{}, nil
	}

	productKeys, err := r.scanKeys(ctx, productKeyPrefix+"*")
	if err != nil {
		r.logger.Warnf("статистика кэша недоступна: %v", err)
		return map[string]any{}, nil
	}

	dbSize, err := r.client.Client.DBSize(ctx).Result()
	if err != nil {
		r.logger.Warnf("статистика кэша недоступна: %v", err)
		return map[string]any{}, nil
	}

	stats := map[string]any{
		"total_vectors":  len(vectorKeys),
		"total_products": len(productKeys),
		"total_keys":     dbSize,
		"default_ttl":    int(r.cfg.DefaultTTL.Seconds()),
	}

	// Серверные счетчики best-effort: отсутствие поля в INFO не считается ошибкой.
	if info, err := r.client.Client.Info(ctx).Result(); err == nil {
		for _, field := range []string{
			"redis_version",
			"used_memory_human",
			"connected_clients",
			"keyspace_hits",
			"keyspace_misses",
		} {
			if val := parseInfoField(info, field); val != "" {
				stats[field] = val
			}
		}
	}

	return stats, nil
}

func (r *CacheRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}

func (r *CacheRepo) getBytes(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Client.Get(ctx, key).Result()
	if err != nil {
		if isNilReply(err) {
			return nil, nil
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return []byte(val), nil
}

func (r *CacheRepo) scanKeys(ctx context.Context, pattern string) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)

	for {
		batch, next, err := r.client.Client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return nil, err
		}

		keys = append(keys, batch...)

		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}

func (r *CacheRepo) vectorKey(pos int64) string {
	return fmt.Sprintf("%s%d", vectorKeyPrefix, pos)
}

func (r *CacheRepo) productKey(pos int64) string {
	return fmt.Sprintf("%s%d", productKeyPrefix, pos)
}

func isNilReply(err error) bool {
	return errors.Is(err, goredis.Nil)
}

// parseInfoField достает значение поля из текстового ответа INFO.
func parseInfoField(info, field string) string {
	for _, line := range strings.Split(info, "\n") {
		if after, ok := strings.CutPrefix(strings.TrimRight(line, "\r"), field+":"); ok {
			return strings.TrimSpace(after)
		}
	}

	return ""
}

// redisValueToBytes конвертирует значение из Redis в []byte.
// Поддерживает string и []byte, возвращает ошибку для неизвестных типов.
func redisValueToBytes(val any, key string) ([]byte, error) {
	switch v := val.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	case nil:
		return nil, nil // cache miss
	default:
		return nil, fmt.Errorf("unexpected Redis value type for key %s: %T", key, val)
	}
}
