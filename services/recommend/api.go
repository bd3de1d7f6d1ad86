package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/urfave/cli"
	"github.com/webtor-io/lazymap"
	"github.com/webtor-io/movie-ui/models"
)

const (
	recommendApiHostFlag    = "recommend-api-host"
	recommendApiPortFlag    = "recommend-api-port"
	recommendApiSecureFlag  = "recommend-api-secure"
	recommendApiPrefixFlag  = "recommend-api-prefix"
	recommendApiTimeoutFlag = "recommend-api-timeout"
	recommendApiTripFlag    = "recommend-api-breaker-failures"
	recommendApiResetFlag   = "recommend-api-breaker-timeout"
)

const (
	defaultBreakerFailures = 5
	defaultBreakerTimeout  = 30 * time.Second
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	f = append(f,
		cli.StringFlag{
			Name:   recommendApiHostFlag,
			Usage:  "recommendation api host",
			EnvVar: "RECOMMEND_API_HOST",
			Value:  "localhost",
		},
		cli.IntFlag{
			Name:   recommendApiPortFlag,
			Usage:  "recommendation api port",
			EnvVar: "RECOMMEND_API_PORT",
			Value:  5000,
		},
		cli.BoolFlag{
			Name:   recommendApiSecureFlag,
			Usage:  "recommendation api secure (https)",
			EnvVar: "RECOMMEND_API_SECURE",
		},
		cli.StringFlag{
			Name:   recommendApiPrefixFlag,
			Usage:  "recommendation api path prefix",
			EnvVar: "RECOMMEND_API_PREFIX",
			Value:  "/api",
		},
		cli.DurationFlag{
			Name:   recommendApiTimeoutFlag,
			Usage:  "recommendation api request timeout (0 disables)",
			EnvVar: "RECOMMEND_API_TIMEOUT",
		},
		cli.IntFlag{
			Name:   recommendApiTripFlag,
			Usage:  "consecutive failures opening the recommendation api circuit (0 disables)",
			EnvVar: "RECOMMEND_API_BREAKER_FAILURES",
			Value:  defaultBreakerFailures,
		},
		cli.DurationFlag{
			Name:   recommendApiResetFlag,
			Usage:  "time the recommendation api circuit stays open",
			EnvVar: "RECOMMEND_API_BREAKER_TIMEOUT",
			Value:  defaultBreakerTimeout,
		},
	)
	return RegisterCacheFlags(f)
}

type Api struct {
	url       string
	cl        *http.Client
	timeout   time.Duration
	cb        *gobreaker.CircuitBreaker[struct{}]
	store     *Cache
	recommend *lazymap.LazyMap[*models.RecommendationsResponse]
	search    *lazymap.LazyMap[[]*models.Movie]
}

func New(c *cli.Context, cl *http.Client) *Api {
	protocol := "http"
	if c.Bool(recommendApiSecureFlag) {
		protocol = "https"
	}
	u := fmt.Sprintf("%v://%v:%v%v",
		protocol,
		c.String(recommendApiHostFlag),
		c.Int(recommendApiPortFlag),
		strings.TrimSuffix(c.String(recommendApiPrefixFlag), "/"),
	)
	log.Infof("recommendation api endpoint %v", u)
	return NewApi(u, cl).
		WithTimeout(c.Duration(recommendApiTimeoutFlag)).
		WithBreaker(uint32(c.Int(recommendApiTripFlag)), c.Duration(recommendApiResetFlag)).
		WithCache(NewCache(c))
}

// NewApi makes client for the service located at baseURL, e.g. http://localhost:5000/api.
func NewApi(baseURL string, cl *http.Client) *Api {
	s := &Api{
		url: strings.TrimSuffix(baseURL, "/"),
		cl:  cl,
		recommend: lazymap.New[*models.RecommendationsResponse](&lazymap.Config{
			Expire:      1 * time.Minute,
			ErrorExpire: 10 * time.Second,
		}),
		search: lazymap.New[[]*models.Movie](&lazymap.Config{
			Expire:      1 * time.Minute,
			ErrorExpire: 10 * time.Second,
		}),
	}
	return s.WithBreaker(defaultBreakerFailures, defaultBreakerTimeout)
}

// WithBreaker makes requests fail fast for timeout after the given number of
// consecutive failures. Zero failures disables the breaker.
func (s *Api) WithBreaker(failures uint32, timeout time.Duration) *Api {
	if failures == 0 {
		s.cb = nil
		return s
	}
	s.cb = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "recommend-api",
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithField("from", from.String()).
				WithField("to", to.String()).
				Warnf("%v circuit state changed", name)
		},
	})
	return s
}

func (s *Api) WithTimeout(d time.Duration) *Api {
	s.timeout = d
	return s
}

func (s *Api) WithCache(c *Cache) *Api {
	s.store = c
	return s
}

func (s *Api) get(ctx context.Context, path string, q url.Values, v any) error {
	if s.cb == nil {
		return s.doGet(ctx, path, q, v)
	}
	_, err := s.cb.Execute(func() (struct{}, error) {
		return struct{}{}, s.doGet(ctx, path, q, v)
	})
	return err
}

func (s *Api) doGet(ctx context.Context, path string, q url.Values, v any) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	u := s.url + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")
	resp, err := s.cl.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("recommendation api returned status %d for %v", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

// Movies fetches the catalog. Null records of all responses are dropped.
func (s *Api) Movies(ctx context.Context) ([]*models.Movie, error) {
	if ms, ok := s.store.GetMovies(ctx); ok {
		return ms, nil
	}
	var r models.MoviesResponse
	if err := s.get(ctx, "/movies", nil, &r); err != nil {
		return nil, errors.Wrap(err, "failed to get movies")
	}
	ms := models.Compact(r.Movies)
	s.store.SetMovies(ctx, ms)
	return ms, nil
}

// RandomRecommendations fetches recommendations for a movie picked by the service.
// Never cached.
func (s *Api) RandomRecommendations(ctx context.Context) ([]*models.Movie, error) {
	var r models.RecommendationsResponse
	if err := s.get(ctx, "/recommend/random", nil, &r); err != nil {
		return nil, errors.Wrap(err, "failed to get random recommendations")
	}
	return models.Compact(r.Recommendations), nil
}

// Recommend fetches movies similar to the movie with the given id.
func (s *Api) Recommend(ctx context.Context, id int) (*models.RecommendationsResponse, error) {
	return s.recommend.Get(strconv.Itoa(id), func() (*models.RecommendationsResponse, error) {
		var r models.RecommendationsResponse
		if err := s.get(ctx, "/recommend/"+strconv.Itoa(id), nil, &r); err != nil {
			return nil, errors.Wrapf(err, "failed to get recommendations for movie %v", id)
		}
		r.Recommendations = models.Compact(r.Recommendations)
		return &r, nil
	})
}

// Search runs title search on the service. The query is sent as is.
func (s *Api) Search(ctx context.Context, query string) ([]*models.Movie, error) {
	return s.search.Get(query, func() ([]*models.Movie, error) {
		var r models.MoviesResponse
		if err := s.get(ctx, "/search", url.Values{"q": []string{query}}, &r); err != nil {
			return nil, errors.Wrapf(err, "failed to search %q", query)
		}
		return models.Compact(r.Movies), nil
	})
}

func (s *Api) Close() {
	s.store.Close()
}
