package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize/english"
	log "github.com/sirupsen/logrus"
	"github.com/webtor-io/movie-ui/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeQuery trims and lowercases a search query.
func NormalizeQuery(q string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(q))
}

// FilterGenre keeps movies passing the genre filter, preserving order.
func FilterGenre(ms []*models.Movie, genre string) []*models.Movie {
	if genre == "" {
		genre = models.GenreAll
	}
	res := make([]*models.Movie, 0, len(ms))
	for _, m := range ms {
		if m != nil && m.Genre.Matches(genre) {
			res = append(res, m)
		}
	}
	return res
}

// Match scans ms for movies whose lowercased title contains query and whose
// genre passes the filter. query must be normalized.
func Match(ms []*models.Movie, query string, genre string) []*models.Movie {
	if genre == "" {
		genre = models.GenreAll
	}
	lower := cases.Lower(language.Und)
	res := make([]*models.Movie, 0)
	for _, m := range ms {
		if m == nil {
			continue
		}
		if !strings.Contains(lower.String(m.Title), query) {
			continue
		}
		if !m.Genre.Matches(genre) {
			continue
		}
		res = append(res, m)
	}
	return res
}

// ResultsMessage formats results count line.
func ResultsMessage(n int, query string) string {
	return fmt.Sprintf(`Found %v for "%v"`, english.Plural(n, "result", ""), query)
}

// Find answers query with genre filter applied, remote first when the
// controller is in remote mode. query must be normalized and non-empty.
func (s *Controller) Find(ctx context.Context, query string, genre string) []*models.Movie {
	if s.remote() {
		ms, err := s.src.Search(ctx, query)
		if err == nil {
			return FilterGenre(ms, genre)
		}
		log.WithError(err).WithField("query", query).Warn("search failed, using local catalog")
	}
	return Match(s.Catalog(), query, genre)
}

// Search runs query typed in the view and renders results.
func (s *Controller) Search(ctx context.Context, v View) {
	query := NormalizeQuery(v.Value(ElementSearchInput))
	genre := v.Value(ElementFilter)
	v.SetCards(ElementResults, nil)
	if query == "" {
		v.SetVisible(ElementResultsSection, false)
		v.SetVisible(ElementNoResults, false)
		return
	}
	ms := s.Find(ctx, query, genre)
	if len(ms) == 0 {
		v.SetVisible(ElementResultsSection, false)
		v.SetVisible(ElementNoResults, true)
		return
	}
	s.track(ms)
	v.SetVisible(ElementNoResults, false)
	v.SetVisible(ElementResultsSection, true)
	v.SetText(ElementResultsCount, ResultsMessage(len(ms), query))
	v.SetCards(ElementResults, NewCards(ms))
}
