package search

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/webtor-io/movie-ui/handlers/common"
	"github.com/webtor-io/movie-ui/models"
	"github.com/webtor-io/movie-ui/services/catalog"
)

type Trigger string

const (
	TriggerSubmit Trigger = "submit"
	TriggerInput  Trigger = "input"
	TriggerChange Trigger = "change"
)

type Handler struct {
	cfg *catalog.Config
}

func RegisterHandler(r *gin.Engine, cfg *catalog.Config) {
	h := &Handler{
		cfg: cfg,
	}
	r.POST("/search/open", h.click(catalog.ElementOpenSearch))
	r.POST("/search/home", h.click(catalog.ElementHome))
	r.POST("/recommendations/close", h.click(catalog.ElementCloseModal))
	r.POST("/movie/:movie_id/recommendations", h.recommendations)
	r.GET("/search", h.search)
}

func (s *Handler) click(target catalog.Element) gin.HandlerFunc {
	return func(c *gin.Context) {
		e := common.MustEntry(c)
		if e == nil {
			return
		}
		e.Dispatch(c.Request.Context(), catalog.Event{Type: catalog.EventClick, Target: target})
		c.Redirect(http.StatusFound, "/")
	}
}

func (s *Handler) recommendations(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("movie_id"))
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, errors.Errorf("wrong movie id %v", c.Param("movie_id")))
		return
	}
	e := common.MustEntry(c)
	if e == nil {
		return
	}
	e.Dispatch(c.Request.Context(), catalog.Event{Type: catalog.EventClick, Target: catalog.ElementCard, MovieID: id})
	c.Redirect(http.StatusFound, "/")
}

type SearchArgs struct {
	Query   string
	Genre   string
	Trigger Trigger
}

func (s *Handler) bindSearchArgs(c *gin.Context) (*SearchArgs, error) {
	t := Trigger(c.DefaultQuery("trigger", string(TriggerSubmit)))
	if t != TriggerSubmit && t != TriggerInput && t != TriggerChange {
		return nil, errors.Errorf("wrong trigger %v", t)
	}
	g := c.DefaultQuery("genre", models.GenreAll)
	if g == "" {
		g = models.GenreAll
	}
	return &SearchArgs{
		Query:   c.Query("q"),
		Genre:   g,
		Trigger: t,
	}, nil
}

func (s *SearchArgs) Event() catalog.Event {
	switch s.Trigger {
	case TriggerInput:
		return catalog.Event{Type: catalog.EventInput, Target: catalog.ElementSearchInput}
	case TriggerChange:
		return catalog.Event{Type: catalog.EventChange, Target: catalog.ElementFilter}
	default:
		return catalog.Event{Type: catalog.EventSubmit, Target: catalog.ElementSearchInput}
	}
}

func (s *Handler) search(c *gin.Context) {
	args, err := s.bindSearchArgs(c)
	if err != nil {
		log.WithError(err).Error("failed to bind search args")
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}
	e := common.MustEntry(c)
	if e == nil {
		return
	}
	ctx := c.Request.Context()
	if e.Controller.Overlay() == catalog.OverlayClosed {
		e.Dispatch(ctx, catalog.Event{Type: catalog.EventClick, Target: catalog.ElementOpenSearch})
	}
	e.View.SetValue(catalog.ElementSearchInput, args.Query)
	e.View.SetValue(catalog.ElementFilter, args.Genre)
	e.Dispatch(ctx, args.Event())
	common.RenderPage(c, s.cfg)
}
