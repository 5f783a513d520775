package model

import (
	"context"
	"fmt"

	"sparsefields/internal/db"
)

// FlushFieldMaps удаляет все закэшированные карты полей из Redis
func FlushFieldMaps(ctx context.Context) error {
	conn := db.RDB
	if conn == nil {
		return nil
	}

	iter := conn.Scan(ctx, 0, fieldMapKey("*"), 1000).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if err := conn.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", key, err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan error: %w", err)
	}

	return nil
}
