package studio

// EventKind names the slice of state that changed.
type EventKind int

const (
	EventForm EventKind = iota
	EventSelection
	EventFavorites
	EventStyles
	EventFlow
	EventHistory
)

func (k EventKind) String() string {
	switch k {
	case EventForm:
		return "form"
	case EventSelection:
		return "selection"
	case EventFavorites:
		return "favorites"
	case EventStyles:
		return "styles"
	case EventFlow:
		return "flow"
	case EventHistory:
		return "history"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after a state change has been applied.
type Event struct {
	Kind EventKind
}

// Subscribe registers fn for every subsequent event and returns a function
// that removes it. fn runs on the goroutine that made the change and must not
// block.
func (s *Studio) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Studio) notify(kinds ...EventKind) {
	s.subMu.Lock()
	subs := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, k := range kinds {
		for _, fn := range subs {
			fn(Event{Kind: k})
		}
	}
}
