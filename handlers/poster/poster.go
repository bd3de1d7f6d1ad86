package poster

import (
	"bytes"
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/webtor-io/movie-ui/handlers/common"
	"github.com/webtor-io/movie-ui/models"
)

type PosterFormat string

const (
	PosterFormatJPEG PosterFormat = "jpg"
)

const (
	PosterJPEGQuality = 85
	PosterMinWidth    = 32
	PosterMaxWidth    = 1000
)

type PosterArgs struct {
	width  int
	format PosterFormat
}

func bindFile(file string) (*PosterArgs, error) {
	fileParts := strings.Split(file, ".")
	if len(fileParts) != 2 {
		return nil, errors.Errorf("wrong file format %v", file)
	}
	width, err := strconv.Atoi(fileParts[0])
	if err != nil {
		return nil, errors.Errorf("wrong width %v", fileParts[0])
	}
	if width < PosterMinWidth || width > PosterMaxWidth {
		return nil, errors.Errorf("width %v out of range", width)
	}
	f := PosterFormat(fileParts[1])
	if f != PosterFormatJPEG {
		return nil, errors.Errorf("wrong format %v", f)
	}
	return &PosterArgs{
		width:  width,
		format: f,
	}, nil
}

// Key is the cache key of the poster resized from src.
func (s *PosterArgs) Key(src string) string {
	sum := sha256.Sum256([]byte(src))
	return fmt.Sprintf("poster/%x/%v.%v", sum[:16], s.width, s.format)
}

func (s *Handler) poster(c *gin.Context) {
	pa, err := bindFile(c.Param("file"))
	if err != nil {
		log.WithError(err).Error("failed to bind poster args")
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}
	id, err := strconv.Atoi(c.Param("movie_id"))
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, errors.Errorf("wrong movie id %v", c.Param("movie_id")))
		return
	}
	e := common.MustEntry(c)
	if e == nil {
		return
	}
	m := e.Controller.Movie(id)
	if m == nil {
		s.writePlaceholder(c, "", pa)
		return
	}
	src := s.source(c.Request.Context(), m)
	if src == "" {
		s.writePlaceholder(c, m.Genre, pa)
		return
	}

	b, err := s.getResizedJPEGPosterWithCache(c.Request.Context(), src, pa)
	if err != nil {
		log.WithError(err).WithField("movie_id", id).Warn("failed to get poster, using placeholder")
		s.writePlaceholder(c, m.Genre, pa)
		return
	}
	s.writeJPEG(c, b, "public, max-age=86400")
}

func (s *Handler) source(ctx context.Context, m *models.Movie) string {
	if m.HasPoster() {
		return m.Img
	}
	if s.finder == nil {
		return ""
	}
	u, err := s.finder.PosterURL(ctx, m.Title, m.Year)
	if err != nil {
		log.WithError(err).WithField("movie_id", m.ID).Warn("failed to find poster")
		return ""
	}
	return u
}

func (s *Handler) placeholder(c *gin.Context) {
	pa, err := bindFile(c.Param("file"))
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}
	s.writePlaceholder(c, models.Genre(c.Param("genre")), pa)
}

func (s *Handler) writePlaceholder(c *gin.Context, g models.Genre, pa *PosterArgs) {
	b, err := encodeJPEG(Placeholder(g, pa.width))
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	s.writeJPEG(c, b, "public, max-age=3600")
}

func (s *Handler) writeJPEG(c *gin.Context, b *bytes.Buffer, cacheControl string) {
	etag := s.generateETag(b.Bytes())

	if match := c.Request.Header.Get("If-None-Match"); match != "" && match == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Header("Content-Type", "image/jpeg")
	c.Header("Content-Length", strconv.Itoa(b.Len()))
	c.Header("ETag", etag)
	c.Header("Cache-Control", cacheControl)
	c.Status(http.StatusOK)

	_, _ = io.Copy(c.Writer, b)
}

func (s *Handler) generateETag(data []byte) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf(`"%x"`, sum[:])
}

func (s *Handler) getResizedPoster(ctx context.Context, src string, args *PosterArgs) (*image.NRGBA, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", src, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.cl.Do(req)
	if err != nil {
		return nil, err
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("poster returned status %d", resp.StatusCode)
	}

	srcImg, err := imaging.Decode(resp.Body)
	if err != nil {
		return nil, err
	}

	return imaging.Resize(srcImg, args.width, 0, imaging.Lanczos), nil
}

func (s *Handler) getResizedJPEGPosterWithCache(ctx context.Context, src string, args *PosterArgs) (*bytes.Buffer, error) {
	if s.s3Cl == nil {
		return s.getResizedJPEGPoster(ctx, src, args)
	}
	cl := s.s3Cl.Get()
	b, err := s.getPosterFromCache(ctx, cl, args.Key(src))
	if err != nil {
		return nil, err
	}
	if b != nil {
		return b, nil
	}
	b, err = s.getResizedJPEGPoster(ctx, src, args)
	if err != nil {
		return nil, err
	}
	err = s.putPosterToCache(ctx, cl, args.Key(src), b)
	if err != nil {
		log.WithError(err).Warn("failed to put poster to cache")
	}
	return b, nil
}

func (s *Handler) getResizedJPEGPoster(ctx context.Context, src string, args *PosterArgs) (*bytes.Buffer, error) {
	r, err := s.getResizedPoster(ctx, src, args)
	if err != nil {
		return nil, err
	}
	return encodeJPEG(r)
}

func encodeJPEG(img image.Image) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: PosterJPEGQuality})
	if err != nil {
		return nil, err
	}
	return &buf, nil
}

func (s *Handler) getPosterFromCache(ctx context.Context, s3Cl *s3.S3, key string) (*bytes.Buffer, error) {
	r, err := s3Cl.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.posterCacheS3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if awsErr, ok := err.(awserr.Error); ok && awsErr.Code() == s3.ErrCodeNoSuchKey {
			return nil, nil
		}
		return nil, err
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(r.Body)

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r.Body)
	if err != nil {
		return nil, err
	}
	return &buf, nil
}

func (s *Handler) makeAWSMD5(b []byte) *string {
	h := md5.Sum(b)
	m := base64.StdEncoding.EncodeToString(h[:])
	return aws.String(m)
}

func (s *Handler) putPosterToCache(ctx context.Context, s3Cl *s3.S3, key string, b *bytes.Buffer) (err error) {
	data := b.Bytes()
	_, err = s3Cl.PutObjectWithContext(ctx,
		&s3.PutObjectInput{
			Bucket:      aws.String(s.posterCacheS3Bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentMD5:  s.makeAWSMD5(data),
			ContentType: aws.String("image/jpeg"),
		})
	return
}
