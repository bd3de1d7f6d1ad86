package search_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webtor-io/movie-ui/handlers/common"
	"github.com/webtor-io/movie-ui/handlers/index"
	"github.com/webtor-io/movie-ui/handlers/search"
	"github.com/webtor-io/movie-ui/handlers/state"
	"github.com/webtor-io/movie-ui/services/catalog"
	"github.com/webtor-io/movie-ui/services/recommend"
	ss "github.com/webtor-io/movie-ui/services/session"
	"github.com/webtor-io/movie-ui/services/template"
	"github.com/webtor-io/movie-ui/templates"
)

type client struct {
	t   *testing.T
	cl  *http.Client
	url string
}

func newTestClient(t *testing.T, cfg *catalog.Config) *client {
	t.Helper()
	return newTestClientWithSource(t, cfg, nil)
}

func newTestClientWithSource(t *testing.T, cfg *catalog.Config, src *recommend.Api) *client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	re := multitemplate.NewRenderer()
	tm := template.NewManager(re, templates.FS).WithFuncs(common.Funcs())
	reg := ss.NewRegistryWithTTL(func() *catalog.Controller {
		if src == nil {
			return catalog.New(cfg, nil)
		}
		return catalog.New(cfg, src)
	}, time.Minute, time.Second)

	r := gin.New()
	r.HTMLRender = re
	r.Use(sessions.Sessions("test", cookie.NewStore([]byte("secret"))))
	r.Use(reg.Middleware())
	index.RegisterHandler(r, tm, cfg)
	search.RegisterHandler(r, cfg)
	state.RegisterHandler(r)
	require.NoError(t, tm.Init())

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{t: t, cl: &http.Client{Jar: jar}, url: server.URL}
}

func (s *client) do(method string, path string) (int, string) {
	s.t.Helper()
	req, err := http.NewRequest(method, s.url+path, nil)
	require.NoError(s.t, err)
	resp, err := s.cl.Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return resp.StatusCode, string(b)
}

func (s *client) state() *state.StateResponse {
	s.t.Helper()
	code, body := s.do(http.MethodGet, "/api/state")
	require.Equal(s.t, http.StatusOK, code)
	var st state.StateResponse
	require.NoError(s.t, json.Unmarshal([]byte(body), &st))
	return &st
}

func localConfig() *catalog.Config {
	cfg := catalog.DefaultConfig()
	cfg.Mode = catalog.ModeLocal
	return cfg
}

func searchPath(q, genre, trigger string) string {
	v := url.Values{"q": {q}, "genre": {genre}, "trigger": {trigger}}
	return "/search?" + v.Encode()
}

func TestIndex(t *testing.T) {
	c := newTestClient(t, localConfig())

	code, body := c.do(http.MethodGet, "/")

	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Echoes in the Dark")
	assert.Contains(t, body, "/poster/1/300.jpg")
	assert.Contains(t, body, "/placeholder/thriller/300.jpg")
	st := c.state()
	assert.Equal(t, catalog.ModeLocal, st.Mode)
	assert.Equal(t, "closed", st.Overlay)
	assert.True(t, st.Page.MainNavVisible)
	assert.Len(t, st.Page.Recommended, catalog.RecommendedSize)
}

func TestSearch_Dark(t *testing.T) {
	c := newTestClient(t, localConfig())
	code, _ := c.do(http.MethodPost, "/search/open")
	require.Equal(t, http.StatusOK, code)

	code, body := c.do(http.MethodGet, searchPath("dark", "all", "input"))

	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Found 1 result for &#34;dark&#34;")
	st := c.state()
	assert.Equal(t, "open", st.Overlay)
	assert.True(t, st.Page.ResultsVisible)
	assert.False(t, st.Page.NoResultsVisible)
	require.Len(t, st.Page.Results, 1)
	assert.Equal(t, "Echoes in the Dark", st.Page.Results[0].Title)
}

func TestSearch_OpensOverlay(t *testing.T) {
	c := newTestClient(t, localConfig())

	c.do(http.MethodGet, searchPath("zzz", "action", "change"))

	st := c.state()
	assert.Equal(t, "open", st.Overlay)
	assert.False(t, st.Page.MainNavVisible)
	assert.True(t, st.Page.NoResultsVisible)
	assert.False(t, st.Page.ResultsVisible)
	assert.Equal(t, "action", st.Page.Genre)
}

func TestSearch_DisabledTrigger(t *testing.T) {
	cfg := localConfig()
	cfg.LiveSearch = false
	c := newTestClient(t, cfg)

	c.do(http.MethodGet, searchPath("dark", "all", "input"))
	st := c.state()
	assert.False(t, st.Page.ResultsVisible)
	assert.Equal(t, "dark", st.Page.Query)

	c.do(http.MethodGet, searchPath("dark", "all", "submit"))
	assert.True(t, c.state().Page.ResultsVisible)
}

func TestSearch_WrongTrigger(t *testing.T) {
	c := newTestClient(t, localConfig())

	code, _ := c.do(http.MethodGet, searchPath("dark", "all", "hover"))

	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHome_RoundTrip(t *testing.T) {
	c := newTestClient(t, localConfig())
	c.do(http.MethodPost, "/search/open")
	c.do(http.MethodGet, searchPath("the", "all", "submit"))
	require.True(t, c.state().Page.ResultsVisible)

	code, body := c.do(http.MethodPost, "/search/home")

	assert.Equal(t, http.StatusOK, code)
	assert.True(t, strings.Contains(body, `id="searchPage" class="hidden"`))
	st := c.state()
	assert.Equal(t, "closed", st.Overlay)
	assert.Equal(t, "", st.Page.Query)
	assert.False(t, st.Page.ResultsVisible)
	assert.False(t, st.Page.NoResultsVisible)
	assert.True(t, st.Page.MainNavVisible)
}

func TestRecommendations(t *testing.T) {
	c := newTestClient(t, localConfig())

	code, body := c.do(http.MethodPost, "/movie/2/recommendations")

	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Recommendations for &#34;Forest of Memories&#34;")
	assert.Contains(t, body, "The Shawshank Redemption")
	assert.True(t, c.state().Page.ModalVisible)

	c.do(http.MethodPost, "/recommendations/close")
	assert.False(t, c.state().Page.ModalVisible)
}

func TestRecommendations_UnknownMovieShowsNotice(t *testing.T) {
	c := newTestClient(t, localConfig())

	_, body := c.do(http.MethodPost, "/movie/999/recommendations")

	assert.Contains(t, body, catalog.RecommendationsErrorMessage)
	_, body = c.do(http.MethodGet, "/")
	assert.NotContains(t, body, catalog.RecommendationsErrorMessage, "notice is shown once")
}

func TestRecommendations_WrongID(t *testing.T) {
	c := newTestClient(t, localConfig())

	code, _ := c.do(http.MethodPost, "/movie/abc/recommendations")

	assert.Equal(t, http.StatusBadRequest, code)
}

// newRecommendService serves catalog with null records in every list.
// The first moviesFailures catalog requests fail.
func newRecommendService(t *testing.T, moviesFailures int32) *recommend.Api {
	t.Helper()
	var moviesCalls int32
	write := func(w http.ResponseWriter, body string) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/movies", func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&moviesCalls, 1) <= moviesFailures {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		write(w, `{"movies":[null,{"id":7,"title":"Dark City","genre":"sci-fi","year":1998},{"id":8,"title":"Heat","genre":"action","year":1995}]}`)
	})
	mux.HandleFunc("/api/recommend/random", func(w http.ResponseWriter, r *http.Request) {
		write(w, `{"movie":{"id":8,"title":"Heat"},"recommendations":[null,{"id":8,"title":"Heat","genre":"action","year":1995}]}`)
	})
	mux.HandleFunc("/api/recommend/7", func(w http.ResponseWriter, r *http.Request) {
		write(w, `{"movie":{"id":7,"title":"Dark City"},"recommendations":[null,{"id":9,"title":"The Matrix","genre":"sci-fi","year":1999,"overview":"A hacker.","similarity_score":0.91}]}`)
	})
	mux.HandleFunc("/api/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "dark", r.URL.Query().Get("q"))
		write(w, `{"movies":[null,{"id":7,"title":"Dark City","genre":"sci-fi","year":1998}]}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return recommend.NewApi(server.URL+"/api", &http.Client{})
}

func TestRemote_NullRecordsAreSkipped(t *testing.T) {
	c := newTestClientWithSource(t, catalog.DefaultConfig(), newRecommendService(t, 0))

	code, body := c.do(http.MethodGet, "/")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Heat")
	st := c.state()
	assert.Equal(t, catalog.ModeRemote, st.Mode)
	require.Len(t, st.Page.Recommended, 1)

	code, body = c.do(http.MethodGet, searchPath("Dark", "sci-fi", "submit"))
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Found 1 result for &#34;dark&#34;")
	require.Len(t, c.state().Page.Results, 1)

	code, body = c.do(http.MethodPost, "/movie/7/recommendations")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Recommendations for &#34;Dark City&#34;")
	assert.Contains(t, body, "Match: 91.0%")
	require.Len(t, c.state().Page.ModalCards, 1)
}

func TestRemote_IndexReloadsAfterFallback(t *testing.T) {
	// session load and the reload of the first page both fail
	c := newTestClientWithSource(t, catalog.DefaultConfig(), newRecommendService(t, 2))

	_, body := c.do(http.MethodGet, "/")
	assert.Contains(t, body, "Echoes in the Dark")

	_, body = c.do(http.MethodGet, "/")
	assert.Contains(t, body, "Heat")
	assert.NotContains(t, body, "Echoes in the Dark")
}
