package pagecache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rwecho/AIGCPilot/internal/pkg/logger"
)

const (
	keyPrefix = "page:"
	tagPrefix = "page_tag:"
)

// Cache 基于Redis的页面级缓存，按固定TTL过期，支持按路径/标签主动失效。
// Redis不可用时整体退化为直读数据库。
type Cache struct {
	client *redis.Client
}

// New 创建页面缓存，client为nil时所有操作直接跳过
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Enabled 缓存是否可用
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Get 读取缓存，未命中或缓存不可用返回false
func (c *Cache) Get(ctx context.Context, path string) ([]byte, bool) {
	if !c.Enabled() {
		return nil, false
	}

	data, err := c.client.Get(ctx, keyPrefix+path).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("读取页面缓存失败", zap.String("path", path), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// Set 写入缓存并登记标签，失败只记日志不影响请求
func (c *Cache) Set(ctx context.Context, path string, data []byte, ttl time.Duration, tags ...string) {
	if !c.Enabled() {
		return
	}

	key := keyPrefix + path
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Warn("写入页面缓存失败", zap.String("path", path), zap.Error(err))
		return
	}

	for _, tag := range tags {
		tagKey := tagPrefix + tag
		if err := c.client.SAdd(ctx, tagKey, key).Err(); err != nil {
			logger.Warn("登记缓存标签失败", zap.String("tag", tag), zap.Error(err))
			continue
		}
		// 标签集合自身也要过期，避免堆积失效key
		c.client.Expire(ctx, tagKey, ttl+time.Minute)
	}
}

// InvalidatePaths 按路径失效
func (c *Cache) InvalidatePaths(ctx context.Context, paths ...string) error {
	if !c.Enabled() || len(paths) == 0 {
		return nil
	}

	keys := make([]string, 0, len(paths))
	for _, p := range paths {
		keys = append(keys, keyPrefix+p)
	}
	return c.client.Del(ctx, keys...).Err()
}

// InvalidateTags 按标签失效，删除标签下登记的所有缓存key
func (c *Cache) InvalidateTags(ctx context.Context, tags ...string) error {
	if !c.Enabled() || len(tags) == 0 {
		return nil
	}

	for _, tag := range tags {
		tagKey := tagPrefix + tag
		keys, err := c.client.SMembers(ctx, tagKey).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if err := c.client.Del(ctx, tagKey).Err(); err != nil {
			return err
		}
	}
	return nil
}
