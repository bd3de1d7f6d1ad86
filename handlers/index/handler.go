package index

import (
	"github.com/gin-gonic/gin"
	"github.com/webtor-io/movie-ui/handlers/common"
	"github.com/webtor-io/movie-ui/services/catalog"
	"github.com/webtor-io/movie-ui/services/template"
)

type Handler struct {
	cfg *catalog.Config
}

func RegisterHandler(r *gin.Engine, tm *template.Manager, cfg *catalog.Config) {
	tm.RegisterViews(common.PageView)
	h := &Handler{
		cfg: cfg,
	}
	r.GET("/", h.index)
}

func (s *Handler) index(c *gin.Context) {
	e := common.MustEntry(c)
	if e == nil {
		return
	}
	e.Refresh(c.Request.Context())
	common.RenderPage(c, s.cfg)
}
