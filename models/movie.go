package models

import (
	"strconv"
)

// Movie is a single catalog record as returned by the recommendation service.
// Overview and SimilarityScore are only filled by recommendation endpoints.
type Movie struct {
	ID              int     `json:"id"`
	Title           string  `json:"title"`
	Img             string  `json:"img,omitempty"`
	Genre           Genre   `json:"genre"`
	Year            int     `json:"year,omitempty"`
	Overview        string  `json:"overview,omitempty"`
	SimilarityScore float64 `json:"similarity_score,omitempty"`
}

func (s *Movie) HasPoster() bool {
	return s.Img != ""
}

func (s *Movie) HasYear() bool {
	return s.Year != 0
}

func (s *Movie) GetYear() string {
	if !s.HasYear() {
		return "N/A"
	}
	return strconv.Itoa(s.Year)
}

type MoviesResponse struct {
	Movies []*Movie `json:"movies"`
}

type RecommendationsResponse struct {
	Movie           *Movie   `json:"movie,omitempty"`
	Recommendations []*Movie `json:"recommendations"`
}

// FindMovie returns the first movie with the given id or nil.
func FindMovie(movies []*Movie, id int) *Movie {
	for _, m := range movies {
		if m != nil && m.ID == id {
			return m
		}
	}
	return nil
}

// Compact drops null records keeping order. Nil stays nil.
func Compact(movies []*Movie) []*Movie {
	if movies == nil {
		return nil
	}
	res := make([]*Movie, 0, len(movies))
	for _, m := range movies {
		if m != nil {
			res = append(res, m)
		}
	}
	return res
}
