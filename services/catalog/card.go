package catalog

import (
	"fmt"

	"github.com/webtor-io/movie-ui/models"
)

// DefaultPoster is shown for movies without a poster and for posters failed to load.
const DefaultPoster = "https://via.placeholder.com/300x450/333/fff?text=No+Image"

type Card struct {
	MovieID  int          `json:"movie_id"`
	Title    string       `json:"title"`
	Poster   string       `json:"poster"`
	Year     string       `json:"year"`
	Genre    models.Genre `json:"genre"`
	Overview string       `json:"overview,omitempty"`
	Match    string       `json:"match,omitempty"`
}

func NewCard(m *models.Movie) *Card {
	c := &Card{
		MovieID:  m.ID,
		Title:    m.Title,
		Poster:   DefaultPoster,
		Year:     m.GetYear(),
		Genre:    m.Genre,
		Overview: m.Overview,
	}
	if m.HasPoster() {
		c.Poster = m.Img
	}
	if m.SimilarityScore != 0 {
		c.Match = fmt.Sprintf("Match: %.1f%%", m.SimilarityScore*100)
	}
	return c
}

func NewCards(ms []*models.Movie) []*Card {
	cards := make([]*Card, 0, len(ms))
	for _, m := range ms {
		if m == nil {
			continue
		}
		cards = append(cards, NewCard(m))
	}
	return cards
}

// Fallback returns the card poster to swap in when the image failed to load.
func (s *Card) Fallback() string {
	return DefaultPoster
}
