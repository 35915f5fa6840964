package logger

// NewReport creates an empty aggregation.
func NewReport() *Report {
	return &Report{
		Commands: make(map[string]int),
		Kinds:    make(map[string]int),
		NotFound: make(map[string]int),
	}
}

// Report aggregates an event log into counts that answer the usual
// questions: what ran, how often, and what failed to resolve.
type Report struct {
	Events   int `json:"events"`
	Sessions int `json:"sessions"`

	// Commands counts events by command name.
	Commands map[string]int `json:"commands"`

	// Kinds counts events by outcome kind.
	Kinds map[string]int `json:"kinds"`

	// NotFound counts the names that failed PATH resolution.
	NotFound map[string]int `json:"not_found"`

	seen map[string]bool
}

// Update folds one event into the report.
func (r *Report) Update(e *Event) {
	r.Events++

	if r.seen == nil {
		r.seen = make(map[string]bool)
	}
	if !r.seen[e.Session] {
		r.seen[e.Session] = true
		r.Sessions++
	}

	r.Kinds[string(e.Kind)]++
	if len(e.Argv) > 0 {
		r.Commands[e.Argv[0]]++
		if e.Kind == EventNotFound {
			r.NotFound[e.Argv[0]]++
		}
	}
}
