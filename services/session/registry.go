package session

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"github.com/webtor-io/lazymap"
	"github.com/webtor-io/movie-ui/services/catalog"
)

const (
	sessionTTLFlag         = "session-ttl"
	sessionLoadTimeoutFlag = "session-load-timeout"
)

const loadConcurrency = 50

func RegisterRegistryFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.DurationFlag{
			Name:   sessionTTLFlag,
			Usage:  "idle time after which page session is discarded",
			EnvVar: "SESSION_TTL",
			Value:  30 * time.Minute,
		},
		cli.DurationFlag{
			Name:   sessionLoadTimeoutFlag,
			Usage:  "page session catalog load timeout (0 disables)",
			EnvVar: "SESSION_LOAD_TIMEOUT",
			Value:  10 * time.Second,
		},
	)
}

// ControllerFactory makes a fresh controller for a new page session.
type ControllerFactory func() *catalog.Controller

// Entry is the state of a single page session.
type Entry struct {
	ID         string
	Controller *catalog.Controller
	View       *catalog.PageView
	events     *catalog.Dispatcher
	timeout    time.Duration
}

// Dispatch fires event on the session view.
func (s *Entry) Dispatch(ctx context.Context, e catalog.Event) bool {
	return s.events.Dispatch(ctx, s.View, e)
}

// Refresh loads catalog again if the last load fell back to built-in data.
// It reports whether a reload happened.
func (s *Entry) Refresh(ctx context.Context) bool {
	if !s.Controller.Degraded() {
		return false
	}
	ctx, cancel := loadContext(ctx, s.timeout)
	defer cancel()
	s.Controller.Load(ctx)
	s.Controller.RenderRecommended(s.View)
	log.WithField("session_id", s.ID).
		WithField("degraded", s.Controller.Degraded()).
		Info("page session reloaded")
	return true
}

// loadContext detaches ctx from request cancellation so an aborted request
// does not leave the session with fallback data.
func loadContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx = context.WithoutCancel(ctx)
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// Registry keeps page sessions. Sessions expire after ttl without requests.
type Registry struct {
	sessions *lazymap.LazyMap[*Entry]
	factory  ControllerFactory
	timeout  time.Duration
}

func NewRegistry(c *cli.Context, f ControllerFactory) *Registry {
	return NewRegistryWithTTL(f, c.Duration(sessionTTLFlag), c.Duration(sessionLoadTimeoutFlag))
}

func NewRegistryWithTTL(f ControllerFactory, ttl time.Duration, timeout time.Duration) *Registry {
	return &Registry{
		sessions: lazymap.New[*Entry](&lazymap.Config{
			Concurrency: loadConcurrency,
			Expire:      ttl,
		}),
		factory:  f,
		timeout:  timeout,
	}
}

// Get returns session entry, making and loading a new one if there is none.
// Concurrent calls for the same id share a single load. Every call prolongs
// the session for another ttl.
func (s *Registry) Get(ctx context.Context, id string) (*Entry, error) {
	e, err := s.sessions.Get(id, func() (*Entry, error) {
		return s.load(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	s.sessions.Touch(id)
	return e, nil
}

func (s *Registry) Len() int {
	return s.sessions.Len()
}

func (s *Registry) load(ctx context.Context, id string) (e *Entry, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("failed to load page session: %v", r)
		}
	}()
	ctx, cancel := loadContext(ctx, s.timeout)
	defer cancel()
	c := s.factory()
	d := catalog.NewDispatcher()
	c.Bind(d)
	v := catalog.NewPageView()
	c.Load(ctx)
	c.RenderRecommended(v)
	log.WithField("session_id", id).
		WithField("mode", c.Mode()).
		WithField("degraded", c.Degraded()).
		Info("page session loaded")
	return &Entry{
		ID:         id,
		Controller: c,
		View:       v,
		events:     d,
		timeout:    s.timeout,
	}, nil
}
