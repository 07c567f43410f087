package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"secure-files-server/config"
	"secure-files-server/internal/model"
	"secure-files-server/internal/util"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheRepository кэширует записи о файлах. Кэшируется только сама запись,
// решение о доступе заново вычисляется на каждый запрос.
type CacheRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{rdb, ttl}
}

func (r *CacheRepository) SetFile(ctx context.Context, file *model.SecureFile) error {
	data, err := json.Marshal(file)
	if err != nil {
		return util.LogError("ошибка сериализации записи о файле", err)
	}

	pipe := r.client.Client.Pipeline()
	pipe.Set(ctx, r.idKey(file.ID), data, r.ttl)
	pipe.Set(ctx, r.nameKey(file.StoredName), data, r.ttl)
	if _, err = pipe.Exec(ctx); err != nil {
		return util.LogError("ошибка сохранения в Redis", err)
	}

	return nil
}

func (r *CacheRepository) GetFileByID(ctx context.Context, id int64) (*model.SecureFile, error) {
	return r.get(ctx, r.idKey(id))
}

func (r *CacheRepository) GetFileByStoredName(ctx context.Context, storedName string) (*model.SecureFile, error) {
	return r.get(ctx, r.nameKey(storedName))
}

func (r *CacheRepository) DeleteFile(ctx context.Context, id int64, storedName string) error {
	if err := r.client.Client.Del(ctx, r.idKey(id), r.nameKey(storedName)).Err(); err != nil {
		return util.LogError("ошибка удаления записи о файле из Redis", err)
	}
	return nil
}

func (r *CacheRepository) get(ctx context.Context, key string) (*model.SecureFile, error) {
	val, err := r.client.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // нет в кэше
	} else if err != nil {
		return nil, util.LogError("ошибка получения записи о файле из Redis", err)
	}

	var file model.SecureFile
	if err := json.Unmarshal([]byte(val), &file); err != nil {
		return nil, util.LogError("ошибка десериализации записи о файле из кэша", err)
	}
	return &file, nil
}

func (r *CacheRepository) idKey(id int64) string {
	return fmt.Sprintf("file:id:%d", id)
}

func (r *CacheRepository) nameKey(storedName string) string {
	return fmt.Sprintf("file:name:%s", storedName)
}
