package state

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webtor-io/movie-ui/services/catalog"
	ss "github.com/webtor-io/movie-ui/services/session"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	reg := ss.NewRegistryWithTTL(func() *catalog.Controller {
		cfg := catalog.DefaultConfig()
		cfg.Mode = catalog.ModeLocal
		return catalog.New(cfg, nil)
	}, time.Minute, 0)
	r := gin.New()
	r.Use(sessions.Sessions("test", cookie.NewStore([]byte("secret"))))
	r.Use(reg.Middleware())
	RegisterHandler(r)
	return r
}

func TestState_CORS(t *testing.T) {
	r := newTestEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	req.Header.Set("Origin", "http://example.com")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	var st StateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, catalog.ModeLocal, st.Mode)
	assert.Equal(t, "closed", st.Overlay)
	assert.Len(t, st.Page.Recommended, catalog.RecommendedSize)
}
