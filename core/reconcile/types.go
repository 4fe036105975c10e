package reconcile

// Item is a source-specific entity. Adapters define the concrete type.
type Item any

// Source names one of the three inputs of a reconciliation pass.
type Source int

const (
	// SourceLoaded is the in-memory state of the running session.
	SourceLoaded Source = iota
	// SourceDiscovered is what the attached devices describe right now.
	SourceDiscovered
	// SourcePersisted is the state remembered from previous sessions.
	SourcePersisted
)

func (s Source) String() string {
	switch s {
	case SourceLoaded:
		return "loaded"
	case SourceDiscovered:
		return "discovered"
	case SourcePersisted:
		return "persisted"
	default:
		return "unknown"
	}
}

// Presence records in which sources a key was found.
type Presence struct {
	Loaded     bool `json:"loaded"`
	Discovered bool `json:"discovered"`
	Persisted  bool `json:"persisted"`
}

// Case returns which of the eight presence combinations p is.
func (p Presence) Case() Case {
	var c Case
	if p.Loaded {
		c |= 4
	}
	if p.Discovered {
		c |= 2
	}
	if p.Persisted {
		c |= 1
	}
	return c
}

// String renders the presence triple as e.g. "L D -".
func (p Presence) String() string {
	mark := func(ok bool, s string) string {
		if ok {
			return s
		}
		return "-"
	}
	return mark(p.Loaded, "L") + " " + mark(p.Discovered, "D") + " " + mark(p.Persisted, "A")
}

// Case is one of the eight presence combinations, encoded as bits L=4 D=2 A=1.
type Case uint8

const (
	CaseNone                      Case = 0 // - - -
	CasePersistedOnly             Case = 1 // - - A
	CaseDiscoveredOnly            Case = 2 // - D -
	CaseDiscoveredPersisted       Case = 3 // - D A
	CaseLoadedOnly                Case = 4 // L - -
	CaseLoadedPersisted           Case = 5 // L - A
	CaseLoadedDiscovered          Case = 6 // L D -
	CaseLoadedDiscoveredPersisted Case = 7 // L D A
)

// Result is the classification of a single key.
type Result struct {
	// Key is the identity shared by all three sources.
	Key string `json:"key"`

	// Presence records which sources contain the key.
	Presence Presence `json:"presence"`
}

// ActionType is the kind of mutation planned for a key.
type ActionType string

const (
	// ActionNone leaves the key untouched.
	ActionNone ActionType = "none"
	// ActionActivate marks a loaded entity active.
	ActionActivate ActionType = "activate"
	// ActionDeactivate marks a loaded entity inactive.
	ActionDeactivate ActionType = "deactivate"
	// ActionMarkUnavailable marks a loaded entity unavailable.
	ActionMarkUnavailable ActionType = "mark_unavailable"
	// ActionRemove drops a loaded entity.
	ActionRemove ActionType = "remove"
	// ActionAdd inserts a new entity.
	ActionAdd ActionType = "add"
)

// Action is a planned mutation for one key.
type Action struct {
	// Type specifies the mutation to perform.
	Type ActionType `json:"type"`

	// Key is the entity identifier.
	Key string `json:"key"`

	// Case is the presence combination that produced this action.
	Case Case `json:"case"`

	// Reason explains the decision.
	Reason string `json:"reason"`

	// Changed marks the action as visible to observers of the whole collection.
	Changed bool `json:"changed"`

	// ActiveChanged marks the action as visible to observers of the active subset.
	ActiveChanged bool `json:"active_changed"`

	// Item carries the entity to add or the values to adopt. Not serialized.
	Item Item `json:"-"`
}

// Plan contains the classification of every key and the resulting actions.
type Plan struct {
	// Results contains per-key classification, sorted by key.
	Results []Result `json:"results"`

	// Actions contains the planned mutations, excluding no-ops.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// TotalKeys is the size of the key union.
	TotalKeys int `json:"total_keys"`

	// Loaded, Discovered and Persisted count the keys found in each source.
	Loaded     int `json:"loaded"`
	Discovered int `json:"discovered"`
	Persisted  int `json:"persisted"`

	// Changed counts actions that alter the collection.
	Changed int `json:"changed"`

	// ActiveChanged counts actions that alter the active subset.
	ActiveChanged int `json:"active_changed"`
}

// AnyChanged reports whether the plan alters the collection.
func (s PlanSummary) AnyChanged() bool { return s.Changed > 0 }

// AnyActiveChanged reports whether the plan alters the active subset.
func (s PlanSummary) AnyActiveChanged() bool { return s.ActiveChanged > 0 }
