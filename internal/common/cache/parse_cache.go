// internal/common/cache/parse_cache.go
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/redis/go-redis/v9"

	"commerce-nlu/internal/common/logger"
	"commerce-nlu/internal/common/metrics"
	"commerce-nlu/internal/nlu/lexicon"
	"commerce-nlu/internal/nlu/pipeline"
)

const (
	keyPrefix = "nlu:parse:"

	defaultTTL       = time.Hour
	defaultL1MaxCost = 1 << 24
)

// blankRuns leaves line breaks alone: the parser reads multi-line layouts
// differently from the same words on one line.
var blankRuns = regexp.MustCompile(`[ \t\p{Zs}]+`)

// ParseCache memoizes parsed commands by message text. L1 is an in-process
// ristretto cache; L2 is an optional Redis shared by all worker replicas.
// Entries never carry a correlation id.
type ParseCache struct {
	l1     *ristretto.Cache[string, []byte]
	l2     *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func New(ttl time.Duration, l1MaxCost int64, rdb *redis.Client, log logger.Logger) (*ParseCache, error) {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if l1MaxCost <= 0 {
		l1MaxCost = defaultL1MaxCost
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	counters := l1MaxCost / 100
	if counters < 1000 {
		counters = 1000
	}
	l1, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: counters,
		MaxCost:     l1MaxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}

	return &ParseCache{
		l1:     l1,
		l2:     rdb,
		ttl:    ttl,
		logger: log.With(map[string]interface{}{"component": "parse-cache"}),
	}, nil
}

// Key is stable across runs of blanks and Unicode composition differences.
// Line breaks are part of the key.
func Key(text string) string {
	canonical := blankRuns.ReplaceAllString(strings.TrimSpace(lexicon.NFC(text)), " ")
	sum := sha256.Sum256([]byte(canonical))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get returns a copy of the cached command for text. An L2 hit is promoted
// to L1.
func (c *ParseCache) Get(ctx context.Context, text string) (*pipeline.ParsedCommand, bool) {
	key := Key(text)

	if data, ok := c.l1.Get(key); ok {
		metrics.CacheLookups.WithLabelValues("l1", "hit").Inc()
		return c.decode(key, data)
	}
	metrics.CacheLookups.WithLabelValues("l1", "miss").Inc()

	if c.l2 == nil {
		return nil, false
	}
	data, err := c.l2.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		metrics.CacheLookups.WithLabelValues("l2", "miss").Inc()
		return nil, false
	case err != nil:
		metrics.CacheLookups.WithLabelValues("l2", "error").Inc()
		c.logger.Warn("l2 lookup failed", map[string]interface{}{"error": err.Error()})
		return nil, false
	}
	metrics.CacheLookups.WithLabelValues("l2", "hit").Inc()

	c.l1.SetWithTTL(key, data, int64(len(data)), c.ttl)
	return c.decode(key, data)
}

// Set stores cmd under text. L2 failures are returned so the caller can
// log them; the L1 write has already happened by then.
func (c *ParseCache) Set(ctx context.Context, text string, cmd *pipeline.ParsedCommand) error {
	stored := *cmd
	stored.CorrelationID = ""
	data, err := json.Marshal(&stored)
	if err != nil {
		return fmt.Errorf("encode parsed command: %w", err)
	}

	key := Key(text)
	c.l1.SetWithTTL(key, data, int64(len(data)), c.ttl)

	if c.l2 == nil {
		return nil
	}
	if err := c.l2.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Wait blocks until buffered L1 writes are applied.
func (c *ParseCache) Wait() {
	c.l1.Wait()
}

func (c *ParseCache) Close() {
	c.l1.Close()
}

func (c *ParseCache) decode(key string, data []byte) (*pipeline.ParsedCommand, bool) {
	var cmd pipeline.ParsedCommand
	if err := json.Unmarshal(data, &cmd); err != nil {
		c.logger.Warn("dropping undecodable cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		c.l1.Del(key)
		return nil, false
	}
	return &cmd, true
}
