package catalog

import (
	"sync"

	"github.com/webtor-io/movie-ui/models"
)

// PageView keeps element state in memory for server side rendering.
type PageView struct {
	mux     sync.RWMutex
	cards   map[Element][]*Card
	text    map[Element]string
	visible map[Element]bool
	values  map[Element]string
	focus   Element
	notice  string
}

func NewPageView() *PageView {
	return &PageView{
		cards: map[Element][]*Card{},
		text:  map[Element]string{},
		visible: map[Element]bool{
			ElementMainNav: true,
		},
		values: map[Element]string{
			ElementFilter: models.GenreAll,
		},
	}
}

func (s *PageView) SetCards(el Element, cards []*Card) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.cards[el] = cards
}

func (s *PageView) SetText(el Element, text string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.text[el] = text
}

func (s *PageView) SetVisible(el Element, visible bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.visible[el] = visible
}

func (s *PageView) Value(el Element) string {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.values[el]
}

func (s *PageView) SetValue(el Element, value string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.values[el] = value
}

func (s *PageView) Focus(el Element) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.focus = el
}

func (s *PageView) Alert(msg string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.notice = msg
}

// Flash returns pending notice and clears it.
func (s *PageView) Flash() string {
	s.mux.Lock()
	defer s.mux.Unlock()
	n := s.notice
	s.notice = ""
	return n
}

func (s *PageView) Visible(el Element) bool {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.visible[el]
}

func (s *PageView) Cards(el Element) []*Card {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.cards[el]
}

func (s *PageView) Text(el Element) string {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.text[el]
}

type PageState struct {
	MainNavVisible    bool    `json:"main_nav_visible"`
	SearchPageVisible bool    `json:"search_page_visible"`
	Query             string  `json:"query"`
	Genre             string  `json:"genre"`
	Focus             Element `json:"focus,omitempty"`
	Recommended       []*Card `json:"recommended"`
	ResultsVisible    bool    `json:"results_visible"`
	ResultsCount      string  `json:"results_count,omitempty"`
	Results           []*Card `json:"results"`
	NoResultsVisible  bool    `json:"no_results_visible"`
	ModalVisible      bool    `json:"modal_visible"`
	ModalTitle        string  `json:"modal_title,omitempty"`
	ModalCards        []*Card `json:"modal_cards,omitempty"`
	Notice            string  `json:"notice,omitempty"`
}

// Snapshot copies current view state.
func (s *PageView) Snapshot() *PageState {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return &PageState{
		MainNavVisible:    s.visible[ElementMainNav],
		SearchPageVisible: s.visible[ElementSearchPage],
		Query:             s.values[ElementSearchInput],
		Genre:             s.values[ElementFilter],
		Focus:             s.focus,
		Recommended:       s.cards[ElementRecommended],
		ResultsVisible:    s.visible[ElementResultsSection],
		ResultsCount:      s.text[ElementResultsCount],
		Results:           s.cards[ElementResults],
		NoResultsVisible:  s.visible[ElementNoResults],
		ModalVisible:      s.visible[ElementModal],
		ModalTitle:        s.text[ElementModalTitle],
		ModalCards:        s.cards[ElementModalCards],
		Notice:            s.notice,
	}
}
