package catalog

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/webtor-io/movie-ui/models"
)

// Source is the remote side of the catalog.
type Source interface {
	Movies(ctx context.Context) ([]*models.Movie, error)
	RandomRecommendations(ctx context.Context) ([]*models.Movie, error)
	Recommend(ctx context.Context, id int) (*models.RecommendationsResponse, error)
	Search(ctx context.Context, query string) ([]*models.Movie, error)
}

type OverlayState int

const (
	OverlayClosed OverlayState = iota
	OverlayOpen
)

func (s OverlayState) String() string {
	if s == OverlayOpen {
		return "open"
	}
	return "closed"
}

const RecommendationsErrorMessage = "Unable to load recommendations. Please try again."

// Controller holds catalog state of a single page session and renders it to a View.
//
// Network calls are made without holding the lock, state is replaced
// wholesale when they return, so the last response wins.
type Controller struct {
	cfg *Config
	src Source

	mux         sync.RWMutex
	catalog     []*models.Movie
	recommended []*models.Movie
	overlay     OverlayState
	seen        map[int]*models.Movie
	degraded    bool
}

// New makes controller, src may be nil in local mode.
func New(cfg *Config, src Source) *Controller {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Controller{
		cfg:  cfg,
		src:  src,
		seen: map[int]*models.Movie{},
	}
}

func (s *Controller) remote() bool {
	return s.cfg.Mode == ModeRemote && s.src != nil
}

func (s *Controller) Mode() Mode {
	if s.remote() {
		return ModeRemote
	}
	return ModeLocal
}

func (s *Controller) Catalog() []*models.Movie {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.catalog
}

func (s *Controller) Recommended() []*models.Movie {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.recommended
}

// Degraded reports whether the last load fell back to built-in data.
func (s *Controller) Degraded() bool {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.degraded
}

func (s *Controller) setDegraded(d bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.degraded = d
}

func (s *Controller) Overlay() OverlayState {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.overlay
}

// Movie returns a movie the controller has loaded or rendered.
func (s *Controller) Movie(id int) *models.Movie {
	s.mux.RLock()
	defer s.mux.RUnlock()
	if m, ok := s.seen[id]; ok {
		return m
	}
	return models.FindMovie(s.catalog, id)
}

func (s *Controller) setCatalog(ms []*models.Movie) {
	ms = models.Compact(ms)
	if ms == nil {
		ms = []*models.Movie{}
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	s.catalog = ms
	s.remember(ms)
}

func (s *Controller) setRecommended(ms []*models.Movie) {
	ms = models.Compact(ms)
	if ms == nil {
		ms = []*models.Movie{}
	}
	if len(ms) > RecommendedSize {
		ms = ms[:RecommendedSize]
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	s.recommended = ms
	s.remember(ms)
}

func (s *Controller) track(ms []*models.Movie) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.remember(ms)
}

func (s *Controller) remember(ms []*models.Movie) {
	for _, m := range ms {
		if m != nil {
			s.seen[m.ID] = m
		}
	}
}

// Head returns up to n leading movies of ms.
func Head(ms []*models.Movie, n int) []*models.Movie {
	if len(ms) < n {
		n = len(ms)
	}
	res := make([]*models.Movie, n)
	copy(res, ms[:n])
	return res
}

// Pick returns movies at the given indexes, skipping those out of range.
// Empty idx picks the first RecommendedSize movies.
func Pick(ms []*models.Movie, idx []int) []*models.Movie {
	if len(idx) == 0 {
		return Head(ms, RecommendedSize)
	}
	var res []*models.Movie
	for _, i := range idx {
		if i < 0 || i >= len(ms) {
			continue
		}
		res = append(res, ms[i])
	}
	return res
}

// Load fills catalog and recommended set. It never fails: in case of
// service errors the built-in catalog is used.
func (s *Controller) Load(ctx context.Context) {
	if !s.remote() {
		ms := models.FallbackMovies()
		s.setCatalog(ms)
		s.setRecommended(Pick(ms, s.cfg.RecommendedIndex))
		return
	}
	ms, err := s.src.Movies(ctx)
	if err != nil {
		log.WithError(err).Warn("failed to load movies, using fallback catalog")
		ms = models.FallbackMovies()
		s.setCatalog(ms)
		s.setRecommended(Head(ms, RecommendedSize))
		s.setDegraded(true)
		return
	}
	s.setCatalog(ms)
	s.setDegraded(!s.LoadRecommended(ctx))
}

// LoadRecommended replaces recommended set with random service recommendations,
// falling back to the head of the current catalog. It reports false on fallback.
func (s *Controller) LoadRecommended(ctx context.Context) bool {
	if !s.remote() {
		s.setRecommended(Pick(s.Catalog(), s.cfg.RecommendedIndex))
		return true
	}
	rs, err := s.src.RandomRecommendations(ctx)
	if err != nil {
		log.WithError(err).Warn("failed to load recommendations, using catalog head")
		s.setRecommended(Head(s.Catalog(), RecommendedSize))
		return false
	}
	s.setRecommended(rs)
	return true
}

func (s *Controller) RenderRecommended(v View) {
	v.SetCards(ElementRecommended, NewCards(s.Recommended()))
}

// OpenSearch moves overlay from Closed to Open. It reports false if the overlay was already open.
func (s *Controller) OpenSearch(v View) bool {
	s.mux.Lock()
	if s.overlay == OverlayOpen {
		s.mux.Unlock()
		return false
	}
	s.overlay = OverlayOpen
	s.mux.Unlock()
	v.SetVisible(ElementSearchPage, true)
	v.SetVisible(ElementMainNav, false)
	v.Focus(ElementSearchInput)
	s.RenderRecommended(v)
	return true
}

// GoHome moves overlay from Open to Closed clearing the query. It reports false if the overlay was not open.
func (s *Controller) GoHome(v View) bool {
	s.mux.Lock()
	if s.overlay != OverlayOpen {
		s.mux.Unlock()
		return false
	}
	s.overlay = OverlayClosed
	s.mux.Unlock()
	v.SetVisible(ElementSearchPage, false)
	v.SetVisible(ElementMainNav, true)
	v.SetValue(ElementSearchInput, "")
	v.SetVisible(ElementResultsSection, false)
	v.SetVisible(ElementNoResults, false)
	return true
}

// ShowRecommendations shows movies similar to the one with the given id.
// On failure the user is alerted and the view stays as it was. A response
// without recommendations leaves the view as it was too.
func (s *Controller) ShowRecommendations(ctx context.Context, v View, id int) {
	title, rs, err := s.recommendations(ctx, id)
	if err != nil {
		log.WithError(err).WithField("movie_id", id).Warn("failed to get recommendations")
		v.Alert(RecommendationsErrorMessage)
		return
	}
	if rs == nil {
		log.WithField("movie_id", id).Warn("no recommendations in response")
		return
	}
	s.track(rs)
	v.SetText(ElementModalTitle, `Recommendations for "`+title+`"`)
	v.SetCards(ElementModalCards, NewCards(rs))
	v.SetVisible(ElementModal, true)
}

func (s *Controller) recommendations(ctx context.Context, id int) (string, []*models.Movie, error) {
	m := s.Movie(id)
	if !s.remote() {
		if m == nil {
			return "", nil, ErrMovieNotFound
		}
		return m.Title, s.similar(m), nil
	}
	var title string
	if m != nil {
		title = m.Title
	}
	r, err := s.src.Recommend(ctx, id)
	if err != nil {
		return "", nil, err
	}
	if r == nil {
		return title, nil, nil
	}
	if title == "" && r.Movie != nil {
		title = r.Movie.Title
	}
	return title, r.Recommendations, nil
}

// similar returns catalog movies sharing genre with m.
func (s *Controller) similar(m *models.Movie) []*models.Movie {
	res := []*models.Movie{}
	for _, c := range s.Catalog() {
		if c.ID == m.ID || c.Genre != m.Genre {
			continue
		}
		res = append(res, c)
		if len(res) == RecommendedSize {
			break
		}
	}
	return res
}

func (s *Controller) CloseRecommendations(v View) {
	v.SetVisible(ElementModal, false)
	v.SetCards(ElementModalCards, nil)
}

// Bind subscribes controller to view events.
func (s *Controller) Bind(src EventSource) {
	search := func(ctx context.Context, v View, _ Event) {
		s.Search(ctx, v)
	}
	if s.cfg.SubmitOnEnter {
		src.On(EventSubmit, ElementSearchInput, search)
	}
	if s.cfg.LiveSearch {
		src.On(EventInput, ElementSearchInput, search)
	}
	src.On(EventChange, ElementFilter, search)
	src.On(EventClick, ElementOpenSearch, func(_ context.Context, v View, _ Event) {
		s.OpenSearch(v)
	})
	src.On(EventClick, ElementHome, func(_ context.Context, v View, _ Event) {
		s.GoHome(v)
	})
	src.On(EventClick, ElementCard, func(ctx context.Context, v View, e Event) {
		s.ShowRecommendations(ctx, v, e.MovieID)
	})
	src.On(EventClick, ElementCloseModal, func(_ context.Context, v View, _ Event) {
		s.CloseRecommendations(v)
	})
}
