package models

type Genre string

const (
	GenreAction    Genre = "action"
	GenreDrama     Genre = "drama"
	GenreThriller  Genre = "thriller"
	GenreComedy    Genre = "comedy"
	GenreHorror    Genre = "horror"
	GenreRomance   Genre = "romance"
	GenreSciFi     Genre = "sci-fi"
	GenreAnimation Genre = "animation"
)

// GenreAll is the filter value that disables genre filtering.
const GenreAll = "all"

// Genres is the option set offered by the genre filter.
var Genres = []Genre{
	GenreAction,
	GenreDrama,
	GenreThriller,
	GenreComedy,
	GenreHorror,
	GenreRomance,
	GenreSciFi,
	GenreAnimation,
}

func (s Genre) String() string {
	return string(s)
}

// Matches reports whether movies of genre s pass filter f.
func (s Genre) Matches(f string) bool {
	return f == GenreAll || string(s) == f
}

type GenreColors struct {
	Background string
	Foreground string
}

var defaultGenreColors = GenreColors{Background: "1a1a2e", Foreground: "ffffff"}

var genreColors = map[Genre]GenreColors{
	GenreAction:    {Background: "8b0000", Foreground: "ffd700"},
	GenreDrama:     {Background: "4b0082", Foreground: "ffffff"},
	GenreThriller:  {Background: "8b0000", Foreground: "ffffff"},
	GenreComedy:    {Background: "ff8c00", Foreground: "ffffff"},
	GenreHorror:    {Background: "000000", Foreground: "ff0000"},
	GenreRomance:   {Background: "dc143c", Foreground: "ffffff"},
	GenreSciFi:     {Background: "4169e1", Foreground: "ffffff"},
	GenreAnimation: {Background: "ff69b4", Foreground: "ffffff"},
}

// Colors returns the placeholder poster palette for the genre.
func (s Genre) Colors() GenreColors {
	if c, ok := genreColors[s]; ok {
		return c
	}
	return defaultGenreColors
}
