package catalog

// Element names an addressable part of the rendering surface.
type Element string

const (
	ElementMainNav        Element = "mainNav"
	ElementSearchPage     Element = "searchPage"
	ElementSearchInput    Element = "searchPageInput"
	ElementFilter         Element = "filterDropdown"
	ElementRecommended    Element = "recommendedContainer"
	ElementResultsSection Element = "searchResultsSection"
	ElementResults        Element = "searchResultsContainer"
	ElementResultsCount   Element = "resultsCount"
	ElementNoResults      Element = "noResultsSection"
	ElementModal          Element = "recommendationsModal"
	ElementModalTitle     Element = "recommendationsTitle"
	ElementModalCards     Element = "recommendationsGrid"
	ElementOpenSearch     Element = "openSearch"
	ElementHome           Element = "homeButton"
	ElementCloseModal     Element = "closeModal"
	ElementCard           Element = "card"
)

// View is the rendering surface the Controller draws on.
type View interface {
	SetCards(el Element, cards []*Card)
	SetText(el Element, text string)
	SetVisible(el Element, visible bool)
	Value(el Element) string
	SetValue(el Element, value string)
	Focus(el Element)
	// Alert shows a blocking notice to the user.
	Alert(msg string)
}
