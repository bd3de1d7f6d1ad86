package poster

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"
	"github.com/webtor-io/movie-ui/services/omdb"
)

const (
	posterCacheS3BucketFlag = "poster-cache-s3-bucket"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   posterCacheS3BucketFlag,
			Usage:  "poster cache s3 bucket (empty disables caching)",
			EnvVar: "POSTER_CACHE_S3_BUCKET",
		},
	)
}

// PosterFinder looks up a poster url for movies without image.
type PosterFinder interface {
	PosterURL(ctx context.Context, title string, year int) (string, error)
}

type Handler struct {
	cl                  *http.Client
	s3Cl                *cs.S3Client
	finder              PosterFinder
	posterCacheS3Bucket string
}

func RegisterHandler(c *cli.Context, r *gin.Engine, cl *http.Client, s3Cl *cs.S3Client, om *omdb.Api) {
	h := &Handler{
		cl:                  cl,
		posterCacheS3Bucket: c.String(posterCacheS3BucketFlag),
	}
	if h.posterCacheS3Bucket != "" {
		h.s3Cl = s3Cl
	}
	if om != nil {
		h.finder = om
	}
	h.register(r)
}

func (s *Handler) register(r *gin.Engine) {
	r.GET("/poster/:movie_id/:file", s.poster)
	r.GET("/placeholder/:genre/:file", s.placeholder)
}
