package recommend

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"
	"github.com/webtor-io/movie-ui/models"
)

const (
	cacheEnabledFlag = "recommend-cache"
	cacheTTLFlag     = "recommend-cache-ttl"
)

const moviesKey = "movie-ui:movies"

func RegisterCacheFlags(f []cli.Flag) []cli.Flag {
	f = append(f,
		cli.BoolFlag{
			Name:   cacheEnabledFlag,
			Usage:  "share catalog between ui instances through redis",
			EnvVar: "RECOMMEND_CACHE",
		},
		cli.DurationFlag{
			Name:   cacheTTLFlag,
			Usage:  "shared catalog cache ttl",
			EnvVar: "RECOMMEND_CACHE_TTL",
			Value:  5 * time.Minute,
		},
	)
	return cs.RegisterRedisClientFlags(f)
}

// Cache shares the catalog between ui instances. A nil *Cache is a valid
// no-op cache, redis failures are logged and treated as misses.
type Cache struct {
	rc  *cs.RedisClient
	cl  redis.UniversalClient
	ttl time.Duration
}

func NewCache(c *cli.Context) *Cache {
	if !c.Bool(cacheEnabledFlag) {
		return nil
	}
	rc := cs.NewRedisClient(c)
	return &Cache{
		rc:  rc,
		cl:  rc.Get(),
		ttl: c.Duration(cacheTTLFlag),
	}
}

func NewCacheWithClient(cl redis.UniversalClient, ttl time.Duration) *Cache {
	return &Cache{cl: cl, ttl: ttl}
}

func (s *Cache) GetMovies(ctx context.Context) ([]*models.Movie, bool) {
	if s == nil {
		return nil, false
	}
	b, err := s.cl.Get(ctx, moviesKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.WithError(err).Warn("failed to get movies from cache")
		return nil, false
	}
	var ms []*models.Movie
	if err := json.Unmarshal(b, &ms); err != nil {
		log.WithError(err).Warn("failed to decode cached movies")
		return nil, false
	}
	return models.Compact(ms), true
}

func (s *Cache) SetMovies(ctx context.Context, ms []*models.Movie) {
	if s == nil {
		return
	}
	b, err := json.Marshal(ms)
	if err != nil {
		log.WithError(err).Warn("failed to encode movies for cache")
		return
	}
	if err := s.cl.Set(ctx, moviesKey, b, s.ttl).Err(); err != nil {
		log.WithError(err).Warn("failed to put movies to cache")
	}
}

func (s *Cache) Close() {
	if s == nil {
		return
	}
	if s.rc != nil {
		s.rc.Close()
		return
	}
	_ = s.cl.Close()
}
