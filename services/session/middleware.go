package session

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	idKey    = "page_session_id"
	entryKey = "page_session_entry"
)

// Middleware attaches page session entry to the request, issuing a new
// session id if the cookie session has none. Requires sessions middleware.
func (s *Registry) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		id, _ := sess.Get(idKey).(string)
		if id == "" {
			id = uuid.NewString()
			sess.Set(idKey, id)
			if err := sess.Save(); err != nil {
				_ = c.AbortWithError(http.StatusInternalServerError, errors.Wrap(err, "failed to save session"))
				return
			}
		}
		e, err := s.Get(c.Request.Context(), id)
		if err != nil {
			_ = c.AbortWithError(http.StatusInternalServerError, err)
			return
		}
		c.Set(entryKey, e)
		c.Next()
	}
}

func GetEntryFromContext(c *gin.Context) *Entry {
	if e, ok := c.Get(entryKey); ok {
		return e.(*Entry)
	}
	return nil
}
