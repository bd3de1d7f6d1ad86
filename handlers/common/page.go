package common

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/webtor-io/movie-ui/models"
	"github.com/webtor-io/movie-ui/services/catalog"
	"github.com/webtor-io/movie-ui/services/session"
)

// CSRFKey is the gin context key holding csrf token of the request.
const CSRFKey = "csrf_token"

const PageView = "index"

// PosterWidth is the width of card posters.
const PosterWidth = 300

type PageData struct {
	State         *catalog.PageState
	Genres        []models.Genre
	CSRF          string
	LiveSearch    bool
	SubmitOnEnter bool
}

type cardData struct {
	Card *catalog.Card
	CSRF string
}

type cardsData struct {
	Cards []*catalog.Card
	CSRF  string
}

func PosterURL(c *catalog.Card) string {
	return fmt.Sprintf("/poster/%d/%d.jpg", c.MovieID, PosterWidth)
}

func PlaceholderURL(c *catalog.Card) string {
	g := c.Genre.String()
	if g == "" {
		g = "unknown"
	}
	return fmt.Sprintf("/placeholder/%v/%d.jpg", g, PosterWidth)
}

// Funcs are template helpers used by page views.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"poster":      PosterURL,
		"placeholder": PlaceholderURL,
		"cardData": func(c *catalog.Card, csrf string) *cardData {
			return &cardData{Card: c, CSRF: csrf}
		},
		"cardsData": func(cs []*catalog.Card, csrf string) *cardsData {
			return &cardsData{Cards: cs, CSRF: csrf}
		},
	}
}

// RenderPage renders the page of the session attached to the request.
func RenderPage(c *gin.Context, cfg *catalog.Config) {
	e := MustEntry(c)
	if e == nil {
		return
	}
	s := e.View.Snapshot()
	e.View.Flash()
	c.HTML(http.StatusOK, PageView, &PageData{
		State:         s,
		Genres:        models.Genres,
		CSRF:          c.GetString(CSRFKey),
		LiveSearch:    cfg.LiveSearch,
		SubmitOnEnter: cfg.SubmitOnEnter,
	})
}

// MustEntry returns page session of the request or aborts it.
func MustEntry(c *gin.Context) *session.Entry {
	e := session.GetEntryFromContext(c)
	if e == nil {
		_ = c.AbortWithError(http.StatusInternalServerError, errors.New("no page session"))
	}
	return e
}
