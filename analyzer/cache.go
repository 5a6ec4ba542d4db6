package analyzer

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/phuslu/log"
	"github.com/redis/go-redis/v9"
)

// Cache stores analysis results keyed by a content hash
type Cache interface {
	Get(ctx context.Context, key string) (*AnalysisResult, bool)
	Set(ctx context.Context, key string, result *AnalysisResult)
	Len(ctx context.Context) int
	Clear(ctx context.Context)
	TTL() time.Duration
	Close() error
}

// CacheStats provides statistics about the analyzer's cache
type CacheStats struct {
	Entries int           `json:"entries"`
	Hits    int           `json:"hits"`
	Misses  int           `json:"misses"`
	TTL     time.Duration `json:"ttl"`
}

// generateCacheKey creates a unique key for the content
func generateCacheKey(content string) string {
	hash := md5.Sum([]byte(content))
	return hex.EncodeToString(hash[:])
}

// Cache entry with expiration
type cacheEntry struct {
	result    *AnalysisResult
	timestamp time.Time
}

// MemoryCache is an in-process TTL cache with a size cap
type MemoryCache struct {
	mutex           sync.RWMutex
	entries         map[string]cacheEntry
	ttl             time.Duration
	maxSize         int
	cleanupInterval time.Duration
	done            chan struct{}
	closeOnce       sync.Once
}

// NewMemoryCache creates a cache and starts its cleanup goroutine
func NewMemoryCache(ttl time.Duration, maxSize int) *MemoryCache {
	c := &MemoryCache{
		entries:         make(map[string]cacheEntry),
		ttl:             ttl,
		maxSize:         maxSize,
		cleanupInterval: 5 * time.Minute,
		done:            make(chan struct{}),
	}
	go c.periodicCleanup()
	return c
}

// periodicCleanup removes expired entries periodically
func (c *MemoryCache) periodicCleanup() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.done:
			return
		}
	}
}

// cleanup removes expired entries and enforces the size limit
func (c *MemoryCache) cleanup() {
	now := time.Now()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	for key, entry := range c.entries {
		if now.Sub(entry.timestamp) > c.ttl {
			delete(c.entries, key)
		}
	}

	if len(c.entries) <= c.maxSize {
		return
	}

	type keyed struct {
		key       string
		timestamp time.Time
	}
	entries := make([]keyed, 0, len(c.entries))
	for key, entry := range c.entries {
		entries = append(entries, keyed{key, entry.timestamp})
	}

	// oldest first
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].timestamp.Before(entries[j].timestamp)
	})

	for i := 0; i < len(entries)-c.maxSize; i++ {
		delete(c.entries, entries[i].key)
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*AnalysisResult, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, found := c.entries[key]
	if !found || time.Since(entry.timestamp) >= c.ttl {
		return nil, false
	}
	return entry.result, true
}

func (c *MemoryCache) Set(_ context.Context, key string, result *AnalysisResult) {
	c.mutex.Lock()
	c.entries[key] = cacheEntry{result: result, timestamp: time.Now()}
	over := len(c.entries) > c.maxSize
	c.mutex.Unlock()

	if over {
		c.cleanup()
	}
}

func (c *MemoryCache) Len(context.Context) int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.entries)
}

// Clear drops every entry
func (c *MemoryCache) Clear(context.Context) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Close stops the cleanup goroutine
func (c *MemoryCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
	})
	return nil
}

// TTL returns the entry lifetime
func (c *MemoryCache) TTL() time.Duration {
	return c.ttl
}

const redisKeyPrefix = "seo:analysis:"

// RedisCache shares analysis results between instances through Redis
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to the Redis server at url and verifies it with a ping
func NewRedisCache(ctx context.Context, url string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (*AnalysisResult, bool) {
	data, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("key", key).Msg("redis cache read failed")
		}
		return nil, false
	}

	var result AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("discarding malformed cached analysis")
		return nil, false
	}
	return &result, true
}

func (c *RedisCache) Set(ctx context.Context, key string, result *AnalysisResult) {
	data, err := json.Marshal(result)
	if err != nil {
		log.Warn().Err(err).Msg("failed to encode analysis for cache")
		return
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis cache write failed")
	}
}

// Len counts cached analyses by scanning the key prefix
func (c *RedisCache) Len(ctx context.Context) int {
	n := 0
	iter := c.client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("redis cache scan failed")
	}
	return n
}

// Clear removes every cached analysis
func (c *RedisCache) Clear(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("redis cache clear failed")
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// TTL returns the entry lifetime
func (c *RedisCache) TTL() time.Duration {
	return c.ttl
}
