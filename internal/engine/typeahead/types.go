package typeahead

import "github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/domain"

// Phase is the lifecycle of the panel for the current input.
type Phase int

const (
	// PhaseIdle shows the default panel of recent and popular searches.
	PhaseIdle Phase = iota
	// PhaseQuerying waits for the debounce timer or the lookups.
	PhaseQuerying
	// PhaseResults shows the merged lookup results.
	PhaseResults
)

func (p Phase) String() string {
	switch p {
	case PhaseQuerying:
		return "querying"
	case PhaseResults:
		return "results"
	default:
		return "idle"
	}
}

// Source tells where an item of the panel came from.
type Source int

const (
	SourceRecent Source = iota
	SourcePopular
	SourceSuggestion
	SourceSearch
)

func (s Source) String() string {
	switch s {
	case SourceRecent:
		return "recent"
	case SourcePopular:
		return "popular"
	case SourceSuggestion:
		return "suggestion"
	default:
		return "search"
	}
}

// Key is a navigation key understood by the engine.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyEnter
	KeyEscape
)

// Item is one navigable row of the panel.
type Item struct {
	Source Source
	Hit    domain.SearchHit
}

// Selection is what the user picked. Hit is nil when the raw query was
// submitted with nothing highlighted.
type Selection struct {
	Query string
	Hit   *domain.SearchHit
}

// State is a point-in-time copy of the engine. Highlight is -1 when no
// item is highlighted.
type State struct {
	Input     string
	Phase     Phase
	Open      bool
	Items     []Item
	Highlight int
	Err       error
}
