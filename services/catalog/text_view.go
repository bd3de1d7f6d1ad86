package catalog

import (
	"fmt"
	"io"
)

// TextView prints rendering operations to a writer. Values are preset by the caller.
type TextView struct {
	w      io.Writer
	values map[Element]string
}

func NewTextView(w io.Writer) *TextView {
	return &TextView{
		w:      w,
		values: map[Element]string{},
	}
}

func (s *TextView) SetCards(el Element, cards []*Card) {
	if len(cards) == 0 {
		return
	}
	_, _ = fmt.Fprintf(s.w, "[%v]\n", el)
	for _, c := range cards {
		_, _ = fmt.Fprintf(s.w, "  #%-6d %v (%v) %v", c.MovieID, c.Title, c.Year, c.Genre)
		if c.Match != "" {
			_, _ = fmt.Fprintf(s.w, " %v", c.Match)
		}
		_, _ = fmt.Fprintln(s.w)
	}
}

func (s *TextView) SetText(_ Element, text string) {
	_, _ = fmt.Fprintln(s.w, text)
}

func (s *TextView) SetVisible(el Element, visible bool) {
	if el == ElementNoResults && visible {
		_, _ = fmt.Fprintln(s.w, "No results found")
	}
}

func (s *TextView) Value(el Element) string {
	return s.values[el]
}

func (s *TextView) SetValue(el Element, value string) {
	s.values[el] = value
}

func (s *TextView) Focus(Element) {}

func (s *TextView) Alert(msg string) {
	_, _ = fmt.Fprintf(s.w, "! %v\n", msg)
}
