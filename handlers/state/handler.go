package state

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/webtor-io/movie-ui/handlers/common"
	"github.com/webtor-io/movie-ui/services/catalog"
)

type StateResponse struct {
	Mode    catalog.Mode       `json:"mode"`
	Overlay string             `json:"overlay"`
	Page    *catalog.PageState `json:"page"`
}

func RegisterHandler(r *gin.Engine) {
	gr := r.Group("/api")
	gr.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet},
		AllowCredentials: false,
	}))
	gr.GET("/state", state)
}

func state(c *gin.Context) {
	e := common.MustEntry(c)
	if e == nil {
		return
	}
	c.JSON(http.StatusOK, &StateResponse{
		Mode:    e.Controller.Mode(),
		Overlay: e.Controller.Overlay().String(),
		Page:    e.View.Snapshot(),
	})
}
