package model

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sparsefields/internal/db"
	"sparsefields/internal/logger"
	"sparsefields/internal/sparse"
)

// FieldMapCacheTTL is how long a cached column map lives in Redis.
var FieldMapCacheTTL = 2 * time.Hour

func fieldMapKey(modelName string) string {
	return "fieldmap:" + modelName
}

// GetMappingsFromRedisOrBuild returns the model's column map, cached in Redis
// when a client is configured.
func GetMappingsFromRedisOrBuild(ctx context.Context, modelName string) (sparse.ColumnMap, error) {
	m, ok := Registry[modelName]
	if !ok {
		return nil, fmt.Errorf("model not found: %s", modelName)
	}
	if db.RDB == nil {
		return m.Mappings(), nil
	}

	redisKey := fieldMapKey(modelName)

	// 1. Попытка загрузить из Redis
	cachedStr, err := db.RDB.Get(ctx, redisKey).Result()
	if err == nil {
		var cached sparse.ColumnMap
		if err := json.Unmarshal([]byte(cachedStr), &cached); err != nil {
			// Битый кэш считаем сбоем
			return nil, fmt.Errorf("invalid field map in Redis for model '%s': %w", modelName, err)
		}
		return cached, nil
	}

	// 2. Строим на лету
	mappings := m.Mappings()

	// 3. Сохраняем в Redis
	jsonData, err := json.Marshal(mappings)
	if err != nil {
		return nil, fmt.Errorf("marshal field map failed: %w", err)
	}
	if err := db.RDB.Set(ctx, redisKey, jsonData, FieldMapCacheTTL).Err(); err != nil {
		logger.Warn("fieldmap_cache_set_failed", map[string]any{
			"model": modelName,
			"error": err.Error(),
		})
	}
	return mappings, nil
}
