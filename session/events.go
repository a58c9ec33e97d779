package session

// Event is delivered to listeners after a transition completes.
type Event interface {
	isEvent()
}

// OpenedEvent fires when the session leaves StateClosed.
type OpenedEvent struct{}

// ClosedEvent fires when the session enters StateClosed.
type ClosedEvent struct{}

// QueryChangedEvent fires after results are recomputed for a new query.
type QueryChangedEvent struct {
	Query   string
	Results int
}

// SelectionMovedEvent fires when the highlighted result changes.
type SelectionMovedEvent struct {
	From int
	To   int
}

// CommittedEvent fires when a result is chosen, before navigation.
type CommittedEvent struct {
	Query string
	Path  string
}

func (OpenedEvent) isEvent()         {}
func (ClosedEvent) isEvent()         {}
func (QueryChangedEvent) isEvent()   {}
func (SelectionMovedEvent) isEvent() {}
func (CommittedEvent) isEvent()      {}
