package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"github.com/webtor-io/lazymap"
)

const (
	omdbApiKeyFlag    = "omdb-api-key"
	omdbApiSecureFlag = "omdb-api-secure"
	omdbApiHostFlag   = "omdb-api-host"
	omdbApiPortFlag   = "omdb-api-port"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   omdbApiHostFlag,
			Usage:  "omdb api host",
			EnvVar: "OMDB_API_HOST",
			Value:  "www.omdbapi.com",
		},
		cli.IntFlag{
			Name:   omdbApiPortFlag,
			Usage:  "omdb api port",
			EnvVar: "OMDB_API_PORT",
			Value:  443,
		},
		cli.BoolTFlag{
			Name:   omdbApiSecureFlag,
			Usage:  "omdb api secure (https)",
			EnvVar: "OMDB_API_SECURE",
		},
		cli.StringFlag{
			Name:   omdbApiKeyFlag,
			Usage:  "omdb api key, posters of movies without image are looked up if set",
			Value:  "",
			EnvVar: "OMDB_API_KEY",
		},
	)
}

// Api looks up posters of movies the recommendation service has no image for.
type Api struct {
	url     string
	key     string
	cl      *http.Client
	posters *lazymap.LazyMap[string]
}

func New(c *cli.Context, cl *http.Client) *Api {
	key := c.String(omdbApiKeyFlag)
	if key == "" {
		return nil
	}
	protocol := "http"
	if c.BoolT(omdbApiSecureFlag) {
		protocol = "https"
	}
	u := fmt.Sprintf("%v://%v:%v", protocol, c.String(omdbApiHostFlag), c.Int(omdbApiPortFlag))
	log.Infof("omdb api endpoint %v", u)
	return NewApi(u, key, cl)
}

func NewApi(url string, key string, cl *http.Client) *Api {
	return &Api{
		url: strings.TrimSuffix(url, "/"),
		key: key,
		cl:  cl,
		posters: lazymap.New[string](&lazymap.Config{
			Expire:      24 * time.Hour,
			ErrorExpire: 10 * time.Second,
		}),
	}
}

// PosterURL returns poster url of the movie or empty string if omdb has none.
// Year 0 means unknown.
func (s *Api) PosterURL(ctx context.Context, title string, year int) (string, error) {
	title = strings.TrimSpace(strings.ToLower(title))
	key := fmt.Sprintf("%v_%v", title, year)
	return s.posters.Get(key, func() (string, error) {
		return s.posterURL(ctx, title, year)
	})
}

func (s *Api) posterURL(ctx context.Context, title string, year int) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.url+"/", nil)
	if err != nil {
		return "", errors.Wrap(err, "create request")
	}

	q := req.URL.Query()
	q.Set("t", title)
	q.Set("type", "movie")
	q.Set("apikey", s.key)
	if year != 0 {
		q.Set("y", strconv.Itoa(year))
	}
	req.URL.RawQuery = q.Encode()

	resp, err := s.cl.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "request failed")
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", errors.Wrap(err, "decode response")
	}

	if r, ok := raw["Response"].(string); !ok || r != "True" {
		if strings.Contains(fmt.Sprintf("%s", raw["Error"]), "not found") {
			return "", nil
		}
		return "", errors.Errorf("omdb error: %v", raw["Error"])
	}

	poster, _ := raw["Poster"].(string)
	if poster == "N/A" {
		return "", nil
	}
	return poster, nil
}
