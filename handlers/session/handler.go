package session

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	csrf "github.com/utrack/gin-csrf"
	"github.com/webtor-io/movie-ui/handlers/common"
	ss "github.com/webtor-io/movie-ui/services/session"
)

const (
	sessionSecretFlag = "secret"
	sessionSecureFlag = "session-secure"
	sessionName       = "movie-ui"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	f = append(f,
		cli.StringFlag{
			Name:   sessionSecretFlag,
			Usage:  "session secret",
			Value:  "secret123",
			EnvVar: "SESSION_SECRET",
		},
		cli.BoolFlag{
			Name:   sessionSecureFlag,
			Usage:  "send session cookie over https only",
			EnvVar: "SESSION_SECURE",
		},
	)
	return ss.RegisterRegistryFlags(f)
}

// RegisterHandler sets cookie sessions, csrf protection and page session lookup.
func RegisterHandler(c *cli.Context, r *gin.Engine, reg *ss.Registry) error {
	secret := c.String(sessionSecretFlag)
	if secret == "" {
		return errors.New("session secret must not be empty")
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Bool(sessionSecureFlag),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(csrf.Middleware(csrf.Options{
		Secret: secret,
		ErrorFunc: func(c *gin.Context) {
			c.String(http.StatusBadRequest, "CSRF token mismatch")
			c.Abort()
		},
	}))
	r.Use(func(c *gin.Context) {
		c.Set(common.CSRFKey, csrf.GetToken(c))
		c.Next()
	})
	r.Use(reg.Middleware())
	return nil
}
